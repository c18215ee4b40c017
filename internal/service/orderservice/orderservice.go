package orderservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mkorolev/cryptomart/internal/domain"
)

type Repo interface {
	FindOrdersByUserID(ctx context.Context, userID int) ([]domain.Order, error)
	FindOrderByID(ctx context.Context, orderID int) (*domain.Order, error)
	FindItemsByOrderID(ctx context.Context, orderID int) ([]domain.OrderItem, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

var ErrOrderNotFound = errors.New("order not found")

func (s *Service) GetOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	orders, err := s.repo.FindOrdersByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// GetOrderDetail returns the order header and line items. Orders owned by
// other users are reported as not found.
func (s *Service) GetOrderDetail(ctx context.Context, userID, orderID int) (*domain.Order, []domain.OrderItem, error) {
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to get order", zap.Error(err))
		return nil, nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, nil, ErrOrderNotFound
	}

	items, err := s.repo.FindItemsByOrderID(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to get order items", zap.Error(err))
		return nil, nil, err
	}
	return order, items, nil
}
