package orderservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/mkorolev/cryptomart/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo)
	defer ctrl.Finish()
	return service, repo
}

func TestGetOrders(t *testing.T) {
	service, repo := NewMock(t)

	now := time.Now()
	orders := []domain.Order{
		{ID: 2, UserID: 1, Status: "shipped", TotalEUR: decimal.RequireFromString("59.90"), CreatedAt: now},
		{ID: 1, UserID: 1, Status: "delivered", TotalEUR: decimal.RequireFromString("12.00"), CreatedAt: now.Add(-time.Hour)},
	}

	tests := []struct {
		name          string
		prepareMock   func()
		expected      []domain.Order
		expectedError error
	}{
		{
			name: "Retrieve orders successfully",
			prepareMock: func() {
				repo.EXPECT().FindOrdersByUserID(gomock.Any(), 1).Return(orders, nil)
			},
			expected: orders,
		},
		{
			name: "Repository error",
			prepareMock: func() {
				repo.EXPECT().FindOrdersByUserID(gomock.Any(), 1).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			got, err := service.GetOrders(context.Background(), 1)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestGetOrderDetail(t *testing.T) {
	service, repo := NewMock(t)

	order := &domain.Order{ID: 42, UserID: 1, Status: "shipped", TotalEUR: decimal.RequireFromString("59.90")}
	items := []domain.OrderItem{
		{ID: 1, OrderID: 42, ProductName: "USB hardware wallet", Quantity: 1, UnitPriceEUR: decimal.RequireFromString("59.90")},
	}

	tests := []struct {
		name          string
		userID        int
		orderID       int
		prepareMock   func()
		expectedError error
	}{
		{
			name:    "Retrieve order with items",
			userID:  1,
			orderID: 42,
			prepareMock: func() {
				repo.EXPECT().FindOrderByID(gomock.Any(), 42).Return(order, nil)
				repo.EXPECT().FindItemsByOrderID(gomock.Any(), 42).Return(items, nil)
			},
		},
		{
			name:    "Order does not exist",
			userID:  1,
			orderID: 99,
			prepareMock: func() {
				repo.EXPECT().FindOrderByID(gomock.Any(), 99).Return(nil, nil)
			},
			expectedError: ErrOrderNotFound,
		},
		{
			name:    "Order owned by someone else reads as not found",
			userID:  2,
			orderID: 42,
			prepareMock: func() {
				repo.EXPECT().FindOrderByID(gomock.Any(), 42).Return(order, nil)
			},
			expectedError: ErrOrderNotFound,
		},
		{
			name:    "Error loading items",
			userID:  1,
			orderID: 42,
			prepareMock: func() {
				repo.EXPECT().FindOrderByID(gomock.Any(), 42).Return(order, nil)
				repo.EXPECT().FindItemsByOrderID(gomock.Any(), 42).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			gotOrder, gotItems, err := service.GetOrderDetail(context.Background(), tt.userID, tt.orderID)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, gotOrder)
				assert.Nil(t, gotItems)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, order, gotOrder)
				assert.Equal(t, items, gotItems)
			}
		})
	}
}
