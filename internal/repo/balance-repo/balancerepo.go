package balancerepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mkorolev/cryptomart/internal/domain"
	"github.com/mkorolev/cryptomart/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) GetBalance(ctx context.Context, userID int, currency string) (*domain.WalletBalance, error) {
	query := `
        SELECT id, user_id, currency, balance
        FROM wallet_balances
        WHERE user_id = $1 AND currency = $2
    `
	row := r.db.QueryRow(ctx, query, userID, currency)
	var balance domain.WalletBalance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.Currency, &balance.Balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get wallet balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) CreateBalance(ctx context.Context, userID int, currency string) (*domain.WalletBalance, error) {
	query := `
        INSERT INTO wallet_balances (user_id, currency, balance)
        VALUES ($1, $2, 0)
        RETURNING id, user_id, currency, balance
    `
	row := r.db.QueryRow(ctx, query, userID, currency)
	var balance domain.WalletBalance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.Currency, &balance.Balance)
	if err != nil {
		zap.L().Error("failed to create wallet balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

// GetBalanceForUpdate locks the balance row for the rest of the enclosing
// transaction. Must run inside TXManager.Begin.
func (r *Repository) GetBalanceForUpdate(ctx context.Context, userID int, currency string) (*domain.WalletBalance, error) {
	query := `
        SELECT id, user_id, currency, balance
        FROM wallet_balances
        WHERE user_id = $1 AND currency = $2
        FOR UPDATE
    `
	row := r.db.QueryRow(ctx, query, userID, currency)
	var balance domain.WalletBalance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.Currency, &balance.Balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to lock wallet balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) UpdateBalance(ctx context.Context, userID int, currency string, balance decimal.Decimal) error {
	query := `
		UPDATE wallet_balances
		SET balance = $1
		WHERE user_id = $2 AND currency = $3
	`
	if _, err := r.db.Exec(ctx, query, balance, userID, currency); err != nil {
		zap.L().Error("failed to update wallet balance", zap.Error(err))
		return err
	}
	return nil
}

// AddToBalance applies a relative adjustment, used for deposit credits and
// refunds of failed withdrawals.
func (r *Repository) AddToBalance(ctx context.Context, userID int, currency string, delta decimal.Decimal) error {
	query := `
		UPDATE wallet_balances
		SET balance = balance + $1
		WHERE user_id = $2 AND currency = $3
	`
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := r.db.Exec(ctx, query, delta, userID, currency); err != nil {
			zap.L().Error("failed to adjust wallet balance", zap.Error(err))
			return err
		}
		return nil
	})
	return err
}
