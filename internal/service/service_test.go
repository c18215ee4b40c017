package service

import (
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/mkorolev/cryptomart/internal/pg"
	"github.com/mkorolev/cryptomart/internal/rates"
	"github.com/mkorolev/cryptomart/internal/repo"
	balancerepo "github.com/mkorolev/cryptomart/internal/repo/balance-repo"
	withdrawalrepo "github.com/mkorolev/cryptomart/internal/repo/withdrawal-repo"
	"github.com/mkorolev/cryptomart/internal/service/authservice"
	"github.com/mkorolev/cryptomart/internal/service/newsservice"
	"github.com/mkorolev/cryptomart/internal/service/orderservice"
	"github.com/mkorolev/cryptomart/internal/service/walletservice"
	"github.com/mkorolev/cryptomart/internal/walletrpc"
	"github.com/mkorolev/cryptomart/pkg/secretary"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()
	mockTxManager := pg.NewMockTXManager(ctrl)

	repos := &repo.Repositories{
		UserRepo:    authservice.NewMockRepo(ctrl),
		AddressRepo: walletservice.NewMockAddressRepo(ctrl),
		BalanceRepo: balancerepo.New(mockDB, mockTxManager),
		Withdrawal:  withdrawalrepo.New(mockDB),
		OrderRepo:   orderservice.NewMockRepo(ctrl),
		NewsRepo:    newsservice.NewMockRepo(ctrl),
	}

	cipher, err := secretary.New("test-secret-key")
	assert.NoError(t, err)

	daemon := walletrpc.New("http://localhost:18083", "", "")
	rateSource := rates.New("http://localhost:9100")

	services := New(repos, daemon, rateSource, cipher, mockTxManager)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.WalletService)
	assert.NotNil(t, services.WithdrawalService)
	assert.NotNil(t, services.OrderService)
	assert.NotNil(t, services.NewsService)
}
