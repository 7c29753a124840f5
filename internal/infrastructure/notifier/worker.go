package notifier

import (
	"context"
	"log"
	"time"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
)

type Worker struct {
	enabled         bool
	pollInterval    time.Duration
	batchSize       int
	workerID        string
	maxAttempts     int
	leaseDuration   time.Duration
	retryBackoff    time.Duration
	dispatchUseCase portsin.DispatchNotificationsUseCase
	logger          *log.Logger
}

func NewWorker(
	enabled bool,
	pollInterval time.Duration,
	batchSize int,
	workerID string,
	maxAttempts int,
	leaseDuration time.Duration,
	retryBackoff time.Duration,
	dispatchUseCase portsin.DispatchNotificationsUseCase,
	logger *log.Logger,
) *Worker {
	return &Worker{
		enabled:         enabled,
		pollInterval:    pollInterval,
		batchSize:       batchSize,
		workerID:        workerID,
		maxAttempts:     maxAttempts,
		leaseDuration:   leaseDuration,
		retryBackoff:    retryBackoff,
		dispatchUseCase: dispatchUseCase,
		logger:          logger,
	}
}

func (w *Worker) Enabled() bool {
	return w != nil && w.enabled
}

func (w *Worker) Start(ctx context.Context) {
	if w == nil || !w.enabled || w.dispatchUseCase == nil {
		return
	}

	w.logf(
		"notification dispatcher started worker_id=%s poll_interval=%s batch_size=%d lease_duration=%s",
		w.workerID,
		w.pollInterval,
		w.batchSize,
		w.leaseDuration,
	)

	w.runCycle(ctx)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logf("notification dispatcher stopped")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *Worker) runCycle(ctx context.Context) {
	startedAt := time.Now().UTC()
	output, appErr := w.dispatchUseCase.Execute(ctx, dto.DispatchNotificationsCommand{
		WorkerID:      w.workerID,
		BatchSize:     w.batchSize,
		MaxAttempts:   w.maxAttempts,
		LeaseDuration: w.leaseDuration,
		RetryBackoff:  w.retryBackoff,
		Now:           startedAt,
	})
	if appErr != nil {
		w.logf(
			"notification dispatch cycle failed code=%s message=%s details=%v",
			appErr.Code,
			appErr.Message,
			appErr.Details,
		)
		return
	}

	w.logf(
		"notification dispatch cycle completed worker_id=%s claimed=%d delivered=%d retried=%d failed=%d latency_ms=%d",
		w.workerID,
		output.Claimed,
		output.Delivered,
		output.Retried,
		output.Failed,
		time.Since(startedAt).Milliseconds(),
	)
}

func (w *Worker) logf(format string, args ...any) {
	if w.logger == nil {
		return
	}
	w.logger.Printf(format, args...)
}
