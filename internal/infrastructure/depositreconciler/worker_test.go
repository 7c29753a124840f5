//go:build !integration

package depositreconciler

import (
	"context"
	"sync"
	"testing"
	"time"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

func TestWorkerDisabled(t *testing.T) {
	fakeUseCase := &fakeReconcileUseCase{}
	worker := NewWorker(false, 10*time.Millisecond, 25, fakeUseCase, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	worker.Start(ctx)

	if fakeUseCase.calls() != 0 {
		t.Fatalf("expected no calls for disabled worker, got %d", fakeUseCase.calls())
	}
}

func TestWorkerRunsCycleWithBatchSize(t *testing.T) {
	fakeUseCase := &fakeReconcileUseCase{}
	worker := NewWorker(true, 10*time.Millisecond, 25, fakeUseCase, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	worker.Start(ctx)

	if fakeUseCase.calls() == 0 {
		t.Fatalf("expected at least one cycle call")
	}
	if fakeUseCase.lastCommand().BatchSize != 25 {
		t.Fatalf("expected batch size 25, got %d", fakeUseCase.lastCommand().BatchSize)
	}
}

func TestWorkerKeepsRunningAfterCycleError(t *testing.T) {
	fakeUseCase := &fakeReconcileUseCase{
		err: apperrors.NewInternal("chain_read_failed", "rpc unavailable", nil),
	}
	worker := NewWorker(true, 10*time.Millisecond, 25, fakeUseCase, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(45 * time.Millisecond)
		cancel()
	}()

	worker.Start(ctx)

	if fakeUseCase.calls() < 2 {
		t.Fatalf("expected worker to keep cycling after errors, got %d calls", fakeUseCase.calls())
	}
}

type fakeReconcileUseCase struct {
	mu       sync.Mutex
	commands []dto.ReconcileDepositsCommand
	err      *apperrors.AppError
}

func (f *fakeReconcileUseCase) Execute(_ context.Context, command dto.ReconcileDepositsCommand) (dto.ReconcileDepositsOutput, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, command)
	if f.err != nil {
		return dto.ReconcileDepositsOutput{}, f.err
	}
	return dto.ReconcileDepositsOutput{Scanned: 1, Confirmed: 1}, nil
}

func (f *fakeReconcileUseCase) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.commands)
}

func (f *fakeReconcileUseCase) lastCommand() dto.ReconcileDepositsCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.commands) == 0 {
		return dto.ReconcileDepositsCommand{}
	}
	return f.commands[len(f.commands)-1]
}
