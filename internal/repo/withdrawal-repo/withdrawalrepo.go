package withdrawalrepo

import (
	"context"

	"github.com/google/uuid"
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

const requestColumns = `id, user_id, currency, amount_eur, fee_eur, amount_crypto,
		destination_address, status, COALESCE(tx_hash, ''), simulated, COALESCE(notes, ''), created_at, processed_at`

func (r *Repository) CreateRequest(ctx context.Context, req *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
	query := `
		INSERT INTO withdrawal_requests
			(id, user_id, currency, amount_eur, fee_eur, amount_crypto, destination_address, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		req.ID, req.UserID, req.Currency, req.AmountEUR, req.FeeEUR, req.AmountCrypto, req.DestinationAddress, req.Status,
	).Scan(&req.CreatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal request", zap.Error(err))
		return nil, err
	}
	return req, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error) {
	query := `
        SELECT ` + requestColumns + `
        FROM withdrawal_requests
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

// FindPending returns requests awaiting transfer, oldest first.
func (r *Repository) FindPending(ctx context.Context, limit uint32) ([]domain.WithdrawalRequest, error) {
	query := `
        SELECT ` + requestColumns + `
        FROM withdrawal_requests
        WHERE status = 'pending'
        ORDER BY created_at ASC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("failed to fetch pending withdrawal requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status, txHash string, simulated bool, notes string) error {
	query := `
        UPDATE withdrawal_requests
        SET status = $1, tx_hash = NULLIF($2, ''), simulated = $3, notes = NULLIF($4, ''), processed_at = now()
        WHERE id = $5
    `
	if _, err := r.db.Exec(ctx, query, status, txHash, simulated, notes, id); err != nil {
		zap.L().Error("failed to update withdrawal request", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetFee(ctx context.Context, currency string) (*domain.WithdrawalFee, error) {
	query := `
        SELECT currency, base_fee_eur, percentage_fee
        FROM withdrawal_fees
        WHERE currency = $1
    `
	row := r.db.QueryRow(ctx, query, currency)
	var fee domain.WithdrawalFee
	err := row.Scan(&fee.Currency, &fee.BaseFeeEUR, &fee.PercentageFee)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get withdrawal fee", zap.Error(err))
		return nil, err
	}
	return &fee, nil
}

func scanRequests(rows pgx.Rows) ([]domain.WithdrawalRequest, error) {
	var requests []domain.WithdrawalRequest
	for rows.Next() {
		var req domain.WithdrawalRequest
		err := rows.Scan(&req.ID, &req.UserID, &req.Currency, &req.AmountEUR, &req.FeeEUR, &req.AmountCrypto,
			&req.DestinationAddress, &req.Status, &req.TxHash, &req.Simulated, &req.Notes, &req.CreatedAt, &req.ProcessedAt)
		if err != nil {
			zap.L().Error("failed to scan withdrawal request row", zap.Error(err))
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}
