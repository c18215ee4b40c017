package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/mkorolev/cryptomart/internal/pg"
	addressrepo "github.com/mkorolev/cryptomart/internal/repo/address-repo"
	balancerepo "github.com/mkorolev/cryptomart/internal/repo/balance-repo"
	newsrepo "github.com/mkorolev/cryptomart/internal/repo/news-repo"
	orderrepo "github.com/mkorolev/cryptomart/internal/repo/order-repo"
	userrepo "github.com/mkorolev/cryptomart/internal/repo/user-repo"
	withdrawalrepo "github.com/mkorolev/cryptomart/internal/repo/withdrawal-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	mockTxManager := pg.NewMockTXManager(ctrl)
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.AddressRepo)
	assert.NotNil(t, repo.BalanceRepo)
	assert.NotNil(t, repo.Withdrawal)
	assert.NotNil(t, repo.OrderRepo)
	assert.NotNil(t, repo.NewsRepo)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &addressrepo.Repository{}, repo.AddressRepo)
	assert.IsType(t, &balancerepo.Repository{}, repo.BalanceRepo)
	assert.IsType(t, &withdrawalrepo.Repository{}, repo.Withdrawal)
	assert.IsType(t, &orderrepo.Repository{}, repo.OrderRepo)
	assert.IsType(t, &newsrepo.Repository{}, repo.NewsRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
