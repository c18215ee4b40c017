package withdrawalservice

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mkorolev/cryptomart/internal/domain"
	"github.com/mkorolev/cryptomart/internal/pg"
	"github.com/mkorolev/cryptomart/pkg/validate"
)

type BalanceRepo interface {
	GetBalanceForUpdate(ctx context.Context, userID int, currency string) (*domain.WalletBalance, error)
	UpdateBalance(ctx context.Context, userID int, currency string, balance decimal.Decimal) error
}

type WithdrawalRepo interface {
	CreateRequest(ctx context.Context, req *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error)
	GetFee(ctx context.Context, currency string) (*domain.WithdrawalFee, error)
}

type RateSource interface {
	Quote(ctx context.Context, currency, fiat string) (decimal.Decimal, error)
}

// Daemon is the subset of the wallet-rpc client used for destination checks.
type Daemon interface {
	ValidateAddress(ctx context.Context, address string) (bool, error)
}

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAmountTooSmall      = errors.New("amount does not cover the withdrawal fee")
	ErrInvalidAddress      = errors.New("invalid destination address")
	ErrFeeNotConfigured    = errors.New("no withdrawal fee configured for currency")
)

type Service struct {
	balanceRepo    BalanceRepo
	withdrawalRepo WithdrawalRepo
	rates          RateSource
	daemon         Daemon
	txManager      pg.TXManager
}

func New(balanceRepo BalanceRepo, withdrawalRepo WithdrawalRepo, rates RateSource, daemon Daemon, txManager pg.TXManager) *Service {
	return &Service{
		balanceRepo:    balanceRepo,
		withdrawalRepo: withdrawalRepo,
		rates:          rates,
		daemon:         daemon,
		txManager:      txManager,
	}
}

// CalculateFee applies fee = base + amount * percentage, rounded to cents,
// and returns the fee and the net amount left for conversion.
func CalculateFee(fee *domain.WithdrawalFee, amountEUR decimal.Decimal) (feeEUR, netEUR decimal.Decimal) {
	feeEUR = fee.BaseFeeEUR.Add(amountEUR.Mul(fee.PercentageFee)).Round(2)
	netEUR = amountEUR.Sub(feeEUR)
	return feeEUR, netEUR
}

// RequestWithdrawal validates the destination, computes the fee and crypto
// amount, and atomically deducts the balance while recording a pending
// request. The actual transfer is performed by the background processor.
func (s *Service) RequestWithdrawal(ctx context.Context, userID int, amountEUR decimal.Decimal, currency, address string) (*domain.WithdrawalRequest, error) {
	if err := s.checkAddress(ctx, address); err != nil {
		return nil, err
	}

	feeCfg, err := s.withdrawalRepo.GetFee(ctx, currency)
	if err != nil {
		zap.L().Error("failed to get withdrawal fee", zap.Error(err))
		return nil, err
	}
	if feeCfg == nil {
		return nil, ErrFeeNotConfigured
	}

	feeEUR, netEUR := CalculateFee(feeCfg, amountEUR)
	if !netEUR.IsPositive() {
		return nil, ErrAmountTooSmall
	}

	rate, err := s.rates.Quote(ctx, currency, "EUR")
	if err != nil {
		zap.L().Error("failed to fetch price quote", zap.Error(err))
		return nil, err
	}
	amountCrypto := netEUR.DivRound(rate, 12)

	req := &domain.WithdrawalRequest{
		ID:                 uuid.New(),
		UserID:             userID,
		Currency:           currency,
		AmountEUR:          amountEUR,
		FeeEUR:             feeEUR,
		AmountCrypto:       amountCrypto,
		DestinationAddress: address,
		Status:             domain.WithdrawalStatusPending,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		balance, err := s.balanceRepo.GetBalanceForUpdate(ctx, userID, currency)
		if err != nil {
			return err
		}
		if balance == nil || balance.Balance.LessThan(amountCrypto) {
			return ErrInsufficientBalance
		}
		if err := s.balanceRepo.UpdateBalance(ctx, userID, currency, balance.Balance.Sub(amountCrypto)); err != nil {
			return err
		}
		_, err = s.withdrawalRepo.CreateRequest(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("withdrawal request accepted",
		zap.Int("userID", userID),
		zap.String("requestID", req.ID.String()),
		zap.String("amountEUR", amountEUR.String()),
		zap.String("amountCrypto", amountCrypto.String()))
	return req, nil
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawalRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	return requests, nil
}

// checkAddress asks the daemon first; when the daemon cannot answer, the
// local surface check is the best available fallback.
func (s *Service) checkAddress(ctx context.Context, address string) error {
	valid, err := s.daemon.ValidateAddress(ctx, address)
	if err != nil {
		zap.L().Warn("daemon address validation unavailable, using local check", zap.Error(err))
		if !validate.IsMoneroAddress(address) {
			return ErrInvalidAddress
		}
		return nil
	}
	if !valid {
		return ErrInvalidAddress
	}
	return nil
}
