package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mkorolev/cryptomart/docs"
	authhandlers "github.com/mkorolev/cryptomart/internal/handlers/auth"
	newshandlers "github.com/mkorolev/cryptomart/internal/handlers/news"
	ordershandlers "github.com/mkorolev/cryptomart/internal/handlers/orders"
	wallethandlers "github.com/mkorolev/cryptomart/internal/handlers/wallet"
	"github.com/mkorolev/cryptomart/internal/service"
	"github.com/mkorolev/cryptomart/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GenerateAddress(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	GetOrders(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
}

type NewsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler   AuthHandler
	WalletHandler WalletHandler
	OrderHandler  OrderHandler
	NewsHandler   NewsHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:   authhandlers.New(s.AuthService),
		WalletHandler: wallethandlers.New(s.WalletService, s.WithdrawalService),
		OrderHandler:  ordershandlers.New(s.OrderService),
		NewsHandler:   newshandlers.New(s.NewsService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}),
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)
	})
	r.Route("/api/wallet", func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Post("/address", h.WalletHandler.GenerateAddress)
		r.Get("/balance", h.WalletHandler.GetBalance)
		r.Post("/withdraw", h.WalletHandler.Withdraw)
		r.Get("/withdrawals", h.WalletHandler.GetWithdrawals)
	})
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Get("/", h.OrderHandler.GetOrders)
		r.Get("/{id}", h.OrderHandler.GetOrder)
	})
	r.Route("/api/news", func(r chi.Router) {
		r.Get("/", h.NewsHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Post("/", h.NewsHandler.Create)
			r.Put("/{id}", h.NewsHandler.Update)
			r.Delete("/{id}", h.NewsHandler.Delete)
		})
	})

	return r
}
