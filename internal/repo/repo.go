package repo

import (
	"github.com/mkorolev/cryptomart/internal/pg"
	addressrepo "github.com/mkorolev/cryptomart/internal/repo/address-repo"
	balancerepo "github.com/mkorolev/cryptomart/internal/repo/balance-repo"
	newsrepo "github.com/mkorolev/cryptomart/internal/repo/news-repo"
	orderrepo "github.com/mkorolev/cryptomart/internal/repo/order-repo"
	userrepo "github.com/mkorolev/cryptomart/internal/repo/user-repo"
	withdrawalrepo "github.com/mkorolev/cryptomart/internal/repo/withdrawal-repo"
	"github.com/mkorolev/cryptomart/internal/service/authservice"
	"github.com/mkorolev/cryptomart/internal/service/newsservice"
	"github.com/mkorolev/cryptomart/internal/service/orderservice"
	"github.com/mkorolev/cryptomart/internal/service/walletservice"
)

// BalanceRepo and Withdrawal stay concrete: each serves several consumer
// interfaces (wallet service, withdrawal service, background processor).
type Repositories struct {
	UserRepo    authservice.Repo
	AddressRepo walletservice.AddressRepo
	BalanceRepo *balancerepo.Repository
	Withdrawal  *withdrawalrepo.Repository
	OrderRepo   orderservice.Repo
	NewsRepo    newsservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:    userrepo.New(conn),
		AddressRepo: addressrepo.New(conn),
		BalanceRepo: balancerepo.New(conn, txManager),
		Withdrawal:  withdrawalrepo.New(conn),
		OrderRepo:   orderrepo.New(conn),
		NewsRepo:    newsrepo.New(conn),
	}
}
