package service

import (
	"github.com/mkorolev/cryptomart/internal/handlers/auth"
	"github.com/mkorolev/cryptomart/internal/handlers/news"
	"github.com/mkorolev/cryptomart/internal/handlers/orders"
	"github.com/mkorolev/cryptomart/internal/handlers/wallet"

	pkgauth "github.com/mkorolev/cryptomart/pkg/auth"
	"github.com/mkorolev/cryptomart/pkg/secretary"

	"github.com/mkorolev/cryptomart/internal/pg"
	"github.com/mkorolev/cryptomart/internal/rates"
	"github.com/mkorolev/cryptomart/internal/repo"
	authservice "github.com/mkorolev/cryptomart/internal/service/authservice"
	newsservice "github.com/mkorolev/cryptomart/internal/service/newsservice"
	orderservice "github.com/mkorolev/cryptomart/internal/service/orderservice"
	walletservice "github.com/mkorolev/cryptomart/internal/service/walletservice"
	withdrawalservice "github.com/mkorolev/cryptomart/internal/service/withdrawalservice"
	"github.com/mkorolev/cryptomart/internal/walletrpc"
)

type Services struct {
	AuthService       auth.Service
	WalletService     wallet.WalletService
	WithdrawalService wallet.WithdrawalService
	OrderService      orders.Service
	NewsService       news.Service
}

func New(repo *repo.Repositories, daemon *walletrpc.Client, rateSource *rates.Client, cipher *secretary.Secretary, txManager pg.TXManager) *Services {
	walletService := walletservice.New(repo.AddressRepo, repo.BalanceRepo, daemon, cipher)
	withdrawalService := withdrawalservice.New(repo.BalanceRepo, repo.Withdrawal, rateSource, daemon, txManager)
	orderService := orderservice.New(repo.OrderRepo)
	newsService := newsservice.New(repo.NewsRepo)
	authService := authservice.New(repo.UserRepo, walletService, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:       authService,
		WalletService:     walletService,
		WithdrawalService: withdrawalService,
		OrderService:      orderService,
		NewsService:       newsService,
	}
}
