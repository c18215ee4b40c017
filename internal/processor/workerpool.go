package processor

import (
	"context"

	"go.uber.org/zap"
)

type WorkerPoolI interface {
	Submit(ctx context.Context, job Job) error
	Close()
}

type Job func() error

type WorkerPool struct {
	pool chan Job
}

func NewWorkerPool(size int) *WorkerPool {
	pool := make(chan Job, size)
	wp := &WorkerPool{pool: pool}

	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	for job := range wp.pool {
		if err := job(); err != nil {
			zap.L().Error("withdrawal job failed", zap.Error(err))
		}
	}
}

func (wp *WorkerPool) Submit(ctx context.Context, job Job) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.pool <- job:
		return nil
	}
}

func (wp *WorkerPool) Close() {
	select {
	case <-wp.pool:
	default:
		close(wp.pool)
	}
}
