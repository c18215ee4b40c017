package orders

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkorolev/cryptomart/internal/domain"
	"github.com/mkorolev/cryptomart/internal/dto"
	orderservice "github.com/mkorolev/cryptomart/internal/service/orderservice"
	"github.com/mkorolev/cryptomart/pkg/auth"
	"github.com/mkorolev/cryptomart/pkg/utils"
)

type Service interface {
	GetOrders(ctx context.Context, userID int) ([]domain.Order, error)
	GetOrderDetail(ctx context.Context, userID, orderID int) (*domain.Order, []domain.OrderItem, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// GetOrders godoc
//
//	@Summary		Get orders list for user
//	@Description	Retrieve the order history for the authorized user, newest first
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.GetOrdersResponseDTO
//	@Success		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orders, err := h.orderService.GetOrders(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if len(orders) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	var response []dto.GetOrdersResponseDTO
	for _, order := range orders {
		response = append(response, dto.GetOrdersResponseDTO{
			ID:        order.ID,
			Status:    order.Status,
			TotalEUR:  order.TotalEUR,
			CreatedAt: order.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetOrder godoc
//
//	@Summary		Get a single order with line items
//	@Description	Retrieve one order owned by the authorized user, including its line items
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Order ID"
//	@Success		200	{object}	dto.OrderDetailResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid order id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, items, err := h.orderService.GetOrderDetail(r.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, orderservice.ErrOrderNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := dto.OrderDetailResponseDTO{
		ID:        order.ID,
		Status:    order.Status,
		TotalEUR:  order.TotalEUR,
		CreatedAt: order.CreatedAt,
		Items:     make([]dto.OrderItemDTO, len(items)),
	}
	for i, item := range items {
		response.Items[i] = dto.OrderItemDTO{
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			UnitPriceEUR: item.UnitPriceEUR,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
