package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type GetOrdersResponseDTO struct {
	ID        int             `json:"id" example:"42"`
	Status    string          `json:"status" example:"shipped"`
	TotalEUR  decimal.Decimal `json:"total_eur" example:"59.90"`
	CreatedAt time.Time       `json:"created_at"`
}

type OrderItemDTO struct {
	ProductName  string          `json:"product_name" example:"USB hardware wallet"`
	Quantity     int             `json:"quantity" example:"1"`
	UnitPriceEUR decimal.Decimal `json:"unit_price_eur" example:"59.90"`
}

type OrderDetailResponseDTO struct {
	ID        int             `json:"id" example:"42"`
	Status    string          `json:"status" example:"shipped"`
	TotalEUR  decimal.Decimal `json:"total_eur" example:"59.90"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []OrderItemDTO  `json:"items"`
}
