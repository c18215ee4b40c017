package addressrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/mkorolev/cryptomart/internal/domain"
	"github.com/mkorolev/cryptomart/internal/pg"
)

// ErrAddressExists is returned when the (user_id, currency) unique
// constraint rejects an insert.
var ErrAddressExists = errors.New("address already exists for user and currency")

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindByUserAndCurrency(ctx context.Context, userID int, currency string) (*domain.UserAddress, error) {
	query := `
        SELECT id, user_id, currency, address, public_key, key_blob_encrypted, simulated, created_at
        FROM user_addresses
        WHERE user_id = $1 AND currency = $2
    `
	row := r.db.QueryRow(ctx, query, userID, currency)
	var addr domain.UserAddress
	err := row.Scan(&addr.ID, &addr.UserID, &addr.Currency, &addr.Address, &addr.PublicKey, &addr.KeyBlobEncrypted, &addr.Simulated, &addr.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get user address", zap.Error(err))
		return nil, err
	}
	return &addr, nil
}

func (r *Repository) Save(ctx context.Context, addr *domain.UserAddress) (*domain.UserAddress, error) {
	query := `
		INSERT INTO user_addresses (user_id, currency, address, public_key, key_blob_encrypted, simulated)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, addr.UserID, addr.Currency, addr.Address, addr.PublicKey, addr.KeyBlobEncrypted, addr.Simulated).
		Scan(&addr.ID, &addr.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrAddressExists
		}
		zap.L().Error("can't save user address", zap.Error(err))
		return nil, err
	}
	return addr, nil
}
