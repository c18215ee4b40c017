package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/mkorolev/cryptomart/docs"
	"github.com/mkorolev/cryptomart/internal/handlers/auth"
	"github.com/mkorolev/cryptomart/internal/handlers/news"
	"github.com/mkorolev/cryptomart/internal/handlers/orders"
	"github.com/mkorolev/cryptomart/internal/handlers/wallet"
	"github.com/mkorolev/cryptomart/internal/service"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:       auth.NewMockService(ctrl),
		WalletService:     wallet.NewMockWalletService(ctrl),
		WithdrawalService: wallet.NewMockWithdrawalService(ctrl),
		OrderService:      orders.NewMockService(ctrl),
		NewsService:       news.NewMockService(ctrl),
	}

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockWalletHandler := NewMockWalletHandler(ctrl)
	mockOrderHandler := NewMockOrderHandler(ctrl)
	mockNewsHandler := NewMockNewsHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().GenerateAddress(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().Withdraw(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().GetWithdrawals(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetOrders(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetOrder(gomock.Any(), gomock.Any()).AnyTimes()
	mockNewsHandler.EXPECT().List(gomock.Any(), gomock.Any()).AnyTimes()
	mockNewsHandler.EXPECT().Create(gomock.Any(), gomock.Any()).AnyTimes()
	mockNewsHandler.EXPECT().Update(gomock.Any(), gomock.Any()).AnyTimes()
	mockNewsHandler.EXPECT().Delete(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:   mockAuthHandler,
		WalletHandler: mockWalletHandler,
		OrderHandler:  mockOrderHandler,
		NewsHandler:   mockNewsHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/user/register", http.StatusOK},
		{"POST", "/api/user/login", http.StatusOK},
		{"POST", "/api/wallet/address", http.StatusUnauthorized},
		{"GET", "/api/wallet/balance", http.StatusUnauthorized},
		{"POST", "/api/wallet/withdraw", http.StatusUnauthorized},
		{"GET", "/api/wallet/withdrawals", http.StatusUnauthorized},
		{"GET", "/api/orders", http.StatusUnauthorized},
		{"GET", "/api/orders/1", http.StatusUnauthorized},
		{"GET", "/api/news", http.StatusOK},
		{"POST", "/api/news", http.StatusUnauthorized},
		{"PUT", "/api/news/1", http.StatusUnauthorized},
		{"DELETE", "/api/news/1", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCrossOriginRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockNewsHandler := NewMockNewsHandler(ctrl)
	mockNewsHandler.EXPECT().List(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:   NewMockAuthHandler(ctrl),
		WalletHandler: NewMockWalletHandler(ctrl),
		OrderHandler:  NewMockOrderHandler(ctrl),
		NewsHandler:   mockNewsHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	t.Run("Any origin allowed on actual request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/news", nil)
		req.Header.Set("Origin", "https://shop.example.com")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight passes without a token", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/wallet/withdraw", nil)
		req.Header.Set("Origin", "https://shop.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST", rec.Header().Get("Access-Control-Allow-Methods"))
	})
}
