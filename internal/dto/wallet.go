package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddressResponseDTO struct {
	Currency  string `json:"currency" example:"XMR"`
	Address   string `json:"address" example:"4AdUndXHHZ6cfufTMvppY6JwXNouMBzSkbLYfpAV5Usx3skxNgYeYTRj5UzqtReoS44qo9mtmXCqY45DJ852K5Jv2684Rge"`
	Simulated bool   `json:"simulated" example:"false"`
}

type BalanceResponseDTO struct {
	Currency string          `json:"currency" example:"XMR"`
	Balance  decimal.Decimal `json:"balance" example:"1.25"`
}

type WithdrawRequestDTO struct {
	AmountEUR decimal.Decimal `json:"amount_eur" example:"100"`
	Currency  string          `json:"currency" example:"XMR"`
	Address   string          `json:"address" example:"4AdUndXHHZ6cfufTMvppY6JwXNouMBzSkbLYfpAV5Usx3skxNgYeYTRj5UzqtReoS44qo9mtmXCqY45DJ852K5Jv2684Rge"`
}

type WithdrawResponseDTO struct {
	ID           string          `json:"id" example:"7c9a0af6-33c1-4f7e-a5a3-02e35a1d2e6b"`
	Status       string          `json:"status" example:"pending"`
	AmountEUR    decimal.Decimal `json:"amount_eur" example:"100"`
	FeeEUR       decimal.Decimal `json:"fee_eur" example:"3"`
	AmountCrypto decimal.Decimal `json:"amount_crypto" example:"0.636"`
}

type GetWithdrawalsResponseDTO struct {
	ID           string          `json:"id" example:"7c9a0af6-33c1-4f7e-a5a3-02e35a1d2e6b"`
	Currency     string          `json:"currency" example:"XMR"`
	AmountEUR    decimal.Decimal `json:"amount_eur" example:"100"`
	FeeEUR       decimal.Decimal `json:"fee_eur" example:"3"`
	AmountCrypto decimal.Decimal `json:"amount_crypto" example:"0.636"`
	Address      string          `json:"address"`
	Status       string          `json:"status" example:"completed"`
	TxHash       string          `json:"tx_hash,omitempty"`
	Simulated    bool            `json:"simulated" example:"false"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	ProcessedAt  *time.Time      `json:"processed_at,omitempty"`
}
