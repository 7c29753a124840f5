package depositreconciler

import (
	"context"
	"log"
	"time"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
)

type Worker struct {
	enabled      bool
	pollInterval time.Duration
	batchSize    int
	useCase      portsin.ReconcileDepositsUseCase
	logger       *log.Logger
}

func NewWorker(
	enabled bool,
	pollInterval time.Duration,
	batchSize int,
	useCase portsin.ReconcileDepositsUseCase,
	logger *log.Logger,
) *Worker {
	return &Worker{
		enabled:      enabled,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		useCase:      useCase,
		logger:       logger,
	}
}

func (w *Worker) Enabled() bool {
	return w != nil && w.enabled
}

func (w *Worker) Start(ctx context.Context) {
	if w == nil || !w.enabled || w.useCase == nil {
		return
	}

	w.logf(
		"deposit reconciler started poll_interval=%s batch_size=%d",
		w.pollInterval,
		w.batchSize,
	)

	w.runCycle(ctx)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logf("deposit reconciler stopped")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *Worker) runCycle(ctx context.Context) {
	startedAt := time.Now().UTC()
	output, appErr := w.useCase.Execute(ctx, dto.ReconcileDepositsCommand{
		BatchSize: w.batchSize,
	})
	if appErr != nil {
		w.logf(
			"deposit reconcile cycle failed code=%s message=%s details=%v",
			appErr.Code,
			appErr.Message,
			appErr.Details,
		)
		return
	}

	w.logf(
		"deposit reconcile cycle completed scanned=%d confirmed=%d pending=%d latency_ms=%d",
		output.Scanned,
		output.Confirmed,
		output.Pending,
		time.Since(startedAt).Milliseconds(),
	)
}

func (w *Worker) logf(format string, args ...any) {
	if w.logger == nil {
		return
	}
	w.logger.Printf(format, args...)
}
