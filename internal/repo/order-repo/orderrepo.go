package orderrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mkorolev/cryptomart/internal/domain"
	"github.com/mkorolev/cryptomart/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindOrdersByUserID(ctx context.Context, userID int) ([]domain.Order, error) {
	query := `
        SELECT id, user_id, status, total_eur, created_at
        FROM orders
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.TotalEUR, &order.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *Repository) FindOrderByID(ctx context.Context, orderID int) (*domain.Order, error) {
	query := `
        SELECT id, user_id, status, total_eur, created_at
        FROM orders
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, orderID)

	var order domain.Order
	err := row.Scan(&order.ID, &order.UserID, &order.Status, &order.TotalEUR, &order.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *Repository) FindItemsByOrderID(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	query := `
        SELECT id, order_id, product_name, quantity, unit_price_eur
        FROM order_items
        WHERE order_id = $1
        ORDER BY id ASC
    `
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		zap.L().Error("can't get order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductName, &item.Quantity, &item.UnitPriceEUR)
		if err != nil {
			zap.L().Error("can't scan order item row", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
