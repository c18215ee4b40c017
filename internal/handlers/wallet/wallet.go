package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mkorolev/cryptomart/internal/domain"
	"github.com/mkorolev/cryptomart/internal/dto"
	withdrawalservice "github.com/mkorolev/cryptomart/internal/service/withdrawalservice"
	"github.com/mkorolev/cryptomart/pkg/auth"
	"github.com/mkorolev/cryptomart/pkg/utils"
)

type WalletService interface {
	GetOrCreateAddress(ctx context.Context, userID int, currency string) (*domain.UserAddress, error)
	GetBalance(ctx context.Context, userID int, currency string) (*domain.WalletBalance, error)
}

type WithdrawalService interface {
	RequestWithdrawal(ctx context.Context, userID int, amountEUR decimal.Decimal, currency, address string) (*domain.WithdrawalRequest, error)
	GetWithdrawals(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error)
}

type WalletHandler struct {
	walletService     WalletService
	withdrawalService WithdrawalService
}

func New(walletService WalletService, withdrawalService WithdrawalService) *WalletHandler {
	return &WalletHandler{
		walletService:     walletService,
		withdrawalService: withdrawalService,
	}
}

// GenerateAddress godoc
//
//	@Summary		Get or create a deposit address
//	@Description	Return the stored Monero deposit address for the user, creating one through the wallet daemon when absent. A simulated address is issued and flagged when the daemon is unreachable.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AddressResponseDTO	"Deposit address"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/wallet/address [post]
func (h *WalletHandler) GenerateAddress(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	address, err := h.walletService.GetOrCreateAddress(r.Context(), userID, domain.CurrencyXMR)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AddressResponseDTO{
		Currency:  address.Currency,
		Address:   address.Address,
		Simulated: address.Simulated,
	})
}

// GetBalance godoc
//
//	@Summary		Get current wallet balance
//	@Description	Retrieve the current XMR balance for the authenticated user.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/wallet/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.walletService.GetBalance(r.Context(), userID, domain.CurrencyXMR)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Currency: balance.Currency,
		Balance:  balance.Balance,
	})
}

// Withdraw godoc
//
//	@Summary		Request a withdrawal
//	@Description	Convert a fiat amount to XMR at the live rate, deduct the balance and queue a transfer to the destination address.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		202		{object}	dto.WithdrawResponseDTO	"Withdrawal accepted"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		402		{object}	utils.Response			"Insufficient balance"
//	@Failure		422		{object}	utils.Response			"Invalid amount or address"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/wallet/withdraw [post]
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.AmountEUR.IsPositive() {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "amount must be positive")
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = domain.CurrencyXMR
	}

	request, err := h.withdrawalService.RequestWithdrawal(r.Context(), userID, req.AmountEUR, currency, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, withdrawalservice.ErrAmountTooSmall),
			errors.Is(err, withdrawalservice.ErrInvalidAddress),
			errors.Is(err, withdrawalservice.ErrFeeNotConfigured):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.WithdrawResponseDTO{
		ID:           request.ID.String(),
		Status:       request.Status,
		AmountEUR:    request.AmountEUR,
		FeeEUR:       request.FeeEUR,
		AmountCrypto: request.AmountCrypto,
	})
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawals history
//	@Description	Get withdrawal request history for the authenticated user, newest first.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.GetWithdrawalsResponseDTO	"Withdrawals history"
//	@Success		204	{object}	utils.Response					"Withdrawals not found"
//	@Failure		401	{object}	utils.Response					"User not authorized"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/wallet/withdrawals [get]
func (h *WalletHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	withdrawals, err := h.withdrawalService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	if len(withdrawals) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}

	response := make([]dto.GetWithdrawalsResponseDTO, len(withdrawals))
	for i, wd := range withdrawals {
		response[i] = dto.GetWithdrawalsResponseDTO{
			ID:           wd.ID.String(),
			Currency:     wd.Currency,
			AmountEUR:    wd.AmountEUR,
			FeeEUR:       wd.FeeEUR,
			AmountCrypto: wd.AmountCrypto,
			Address:      wd.DestinationAddress,
			Status:       wd.Status,
			TxHash:       wd.TxHash,
			Simulated:    wd.Simulated,
			Notes:        wd.Notes,
			CreatedAt:    wd.CreatedAt,
			ProcessedAt:  wd.ProcessedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
