// Package processor drains pending withdrawal requests through the wallet
// daemon in the background.
package processor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mkorolev/cryptomart/internal/domain"
	"github.com/mkorolev/cryptomart/internal/walletrpc"
)

type WithdrawalRepo interface {
	FindPending(ctx context.Context, limit uint32) ([]domain.WithdrawalRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status, txHash string, simulated bool, notes string) error
}

// BalanceRepo refunds the reserved amount when a transfer is rejected.
type BalanceRepo interface {
	AddToBalance(ctx context.Context, userID int, currency string, delta decimal.Decimal) error
}

// Daemon is the subset of the wallet-rpc client used for transfers.
type Daemon interface {
	Transfer(ctx context.Context, params walletrpc.TransferParams) (*walletrpc.TransferResult, error)
}

var inFlight sync.Map

type Service struct {
	withdrawalRepo WithdrawalRepo
	balanceRepo    BalanceRepo
	daemon         Daemon
	limit          uint32
	workerPool     WorkerPoolI
	pollInterval   time.Duration
}

func New(withdrawalRepo WithdrawalRepo, balanceRepo BalanceRepo, daemon Daemon) *Service {
	return &Service{
		withdrawalRepo: withdrawalRepo,
		balanceRepo:    balanceRepo,
		daemon:         daemon,
		limit:          100,
		workerPool:     NewWorkerPool(10),
		pollInterval:   time.Second * 5,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Withdrawal processor started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping withdrawal processor")
			return
		case <-ticker.C:
			s.processPending(ctx)
		}
	}
}

func (s *Service) processPending(ctx context.Context) {
	requests, err := s.withdrawalRepo.FindPending(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch pending withdrawals", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, req := range requests {
		req := req

		if _, loaded := inFlight.LoadOrStore(req.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.Submit(ctx, func() error {
				defer inFlight.Delete(req.ID)
				return s.handleRequest(ctx, req)
			})
			if err != nil {
				inFlight.Delete(req.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing withdrawals", zap.Error(err))
	}
}

func (s *Service) handleRequest(ctx context.Context, req domain.WithdrawalRequest) error {
	if err := s.withdrawalRepo.UpdateStatus(ctx, req.ID, domain.WithdrawalStatusProcessing, "", false, ""); err != nil {
		return fmt.Errorf("can't mark withdrawal %s processing: %w", req.ID, err)
	}

	result, err := s.daemon.Transfer(ctx, walletrpc.TransferParams{
		Destinations: []walletrpc.Destination{{
			Amount:  walletrpc.DecimalToAtomic(req.AmountCrypto),
			Address: req.DestinationAddress,
		}},
		GetTxKey: true,
	})
	if err != nil {
		if errors.Is(err, walletrpc.ErrDaemonUnavailable) {
			return s.simulateTransfer(ctx, req, err)
		}
		return s.failRequest(ctx, req, err)
	}

	if err := s.withdrawalRepo.UpdateStatus(ctx, req.ID, domain.WithdrawalStatusCompleted, result.TxHash, false, ""); err != nil {
		return fmt.Errorf("can't complete withdrawal %s: %w", req.ID, err)
	}
	zap.L().Info("Withdrawal completed",
		zap.String("requestID", req.ID.String()), zap.String("txHash", result.TxHash))
	return nil
}

// simulateTransfer records a fabricated transfer when the daemon is
// unreachable. The request keeps the processing status and the simulated
// flag is persisted so the fabricated hash can never pass for a real one.
func (s *Service) simulateTransfer(ctx context.Context, req domain.WithdrawalRequest, cause error) error {
	zap.L().Warn("Transfer failed, recording simulated transaction",
		zap.String("requestID", req.ID.String()), zap.Error(cause))

	txHash := simulatedTxHash(req.ID)
	notes := "wallet daemon unavailable; transfer simulated"
	if err := s.withdrawalRepo.UpdateStatus(ctx, req.ID, domain.WithdrawalStatusProcessing, txHash, true, notes); err != nil {
		return fmt.Errorf("can't record simulated withdrawal %s: %w", req.ID, err)
	}
	return nil
}

// failRequest handles a transfer the daemon explicitly rejected: the
// request is terminal and the reserved amount goes back to the user.
func (s *Service) failRequest(ctx context.Context, req domain.WithdrawalRequest, cause error) error {
	zap.L().Error("Transfer rejected by daemon, failing withdrawal",
		zap.String("requestID", req.ID.String()), zap.Error(cause))

	if err := s.withdrawalRepo.UpdateStatus(ctx, req.ID, domain.WithdrawalStatusFailed, "", false, cause.Error()); err != nil {
		return fmt.Errorf("can't fail withdrawal %s: %w", req.ID, err)
	}
	if err := s.balanceRepo.AddToBalance(ctx, req.UserID, req.Currency, req.AmountCrypto); err != nil {
		return fmt.Errorf("can't refund withdrawal %s: %w", req.ID, err)
	}
	return nil
}

func simulatedTxHash(id uuid.UUID) string {
	sum := sha256.Sum256(id[:])
	return hex.EncodeToString(sum[:])
}
