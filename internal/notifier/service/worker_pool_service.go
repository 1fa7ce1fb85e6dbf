package service

import (
	"context"
	"log/slog"

	"github.com/panjf2000/ants/v2"

	"github.com/aputours/backend/internal/domain/shared"
)

// WorkerPoolNotificationService runs notifications on a bounded worker pool
// so a slow SMTP server cannot stall the consumer loop unboundedly
type WorkerPoolNotificationService struct {
	baseService NotificationService
	pool        *ants.Pool
	logger      *slog.Logger
}

// WorkerPoolConfig holds the pool sizing
type WorkerPoolConfig struct {
	Size int
}

// NewWorkerPoolNotificationService wraps a base service with an ants pool
func NewWorkerPoolNotificationService(
	baseService NotificationService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolNotificationService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolNotificationService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
	}, nil
}

// Notify submits the event to the worker pool and waits for the outcome so
// the caller can decide whether to commit the offset
func (s *WorkerPoolNotificationService) Notify(ctx context.Context, event *shared.ReceiptIssuedEvent) error {
	logger := s.logger
	if event.CorrelationID != "" {
		logger = s.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Submitting notification to worker pool",
		"receipt_id", event.ReceiptID.String(),
		"receipt_code", event.ReceiptCode,
	)

	resultChan := make(chan error, 1)

	// Copy the event to avoid data races with the fetch loop
	eventCopy := *event

	if err := s.pool.Submit(func() {
		resultChan <- s.baseService.Notify(ctx, &eventCopy)
	}); err != nil {
		logger.Error("Failed to submit notification to worker pool",
			"receipt_id", event.ReceiptID.String(),
			"error", err,
		)
		return err
	}

	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool
func (s *WorkerPoolNotificationService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool
func (s *WorkerPoolNotificationService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool
func (s *WorkerPoolNotificationService) Capacity() int {
	return s.pool.Cap()
}
