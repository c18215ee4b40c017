package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const CurrencyXMR = "XMR"

// Withdrawal request lifecycle. A request marked simulated keeps the
// processing status; only real daemon transfers reach completed.
const (
	WithdrawalStatusPending    = "pending"
	WithdrawalStatusProcessing = "processing"
	WithdrawalStatusCompleted  = "completed"
	WithdrawalStatusFailed     = "failed"
)

type User struct {
	ID           int       `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserAddress struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	Currency         string    `json:"currency"`
	Address          string    `json:"address"`
	PublicKey        string    `json:"-"`
	KeyBlobEncrypted string    `json:"-"`
	Simulated        bool      `json:"simulated"`
	CreatedAt        time.Time `json:"created_at"`
}

type WalletBalance struct {
	ID       int             `json:"id"`
	UserID   int             `json:"user_id"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

type WithdrawalRequest struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             int             `json:"user_id"`
	Currency           string          `json:"currency"`
	AmountEUR          decimal.Decimal `json:"amount_eur"`
	FeeEUR             decimal.Decimal `json:"fee_eur"`
	AmountCrypto       decimal.Decimal `json:"amount_crypto"`
	DestinationAddress string          `json:"address"`
	Status             string          `json:"status"`
	TxHash             string          `json:"tx_hash"`
	Simulated          bool            `json:"simulated"`
	Notes              string          `json:"notes"`
	CreatedAt          time.Time       `json:"created_at"`
	ProcessedAt        *time.Time      `json:"processed_at"`
}

type WithdrawalFee struct {
	Currency      string          `json:"currency"`
	BaseFeeEUR    decimal.Decimal `json:"base_fee_eur"`
	PercentageFee decimal.Decimal `json:"percentage_fee"`
}

type Order struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	Status    string          `json:"status"`
	TotalEUR  decimal.Decimal `json:"total_eur"`
	CreatedAt time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID           int             `json:"id"`
	OrderID      int             `json:"order_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPriceEUR decimal.Decimal `json:"unit_price_eur"`
}

type NewsPost struct {
	ID        int       `json:"id"`
	AuthorID  int       `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
