package use_cases

import (
	"context"
	"strings"
	"time"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type dispatchNotificationsUseCase struct {
	outbox  portsout.NotificationOutboxRepository
	gateway portsout.NotificationGateway
}

func NewDispatchNotificationsUseCase(
	outbox portsout.NotificationOutboxRepository,
	gateway portsout.NotificationGateway,
) portsin.DispatchNotificationsUseCase {
	return &dispatchNotificationsUseCase{
		outbox:  outbox,
		gateway: gateway,
	}
}

func (u *dispatchNotificationsUseCase) Execute(
	ctx context.Context,
	command dto.DispatchNotificationsCommand,
) (dto.DispatchNotificationsOutput, *apperrors.AppError) {
	if u.outbox == nil {
		return dto.DispatchNotificationsOutput{}, apperrors.NewInternal(
			"notification_outbox_repository_missing",
			"notification outbox repository is required",
			nil,
		)
	}
	if u.gateway == nil {
		return dto.DispatchNotificationsOutput{}, apperrors.NewInternal(
			"notification_gateway_missing",
			"notification gateway is required",
			nil,
		)
	}
	if command.BatchSize <= 0 {
		return dto.DispatchNotificationsOutput{}, apperrors.NewValidation(
			"dispatch_notifications_batch_size_invalid",
			"dispatch batch size must be greater than zero",
			map[string]any{"batch_size": command.BatchSize},
		)
	}
	workerID := strings.TrimSpace(command.WorkerID)
	if workerID == "" {
		return dto.DispatchNotificationsOutput{}, apperrors.NewValidation(
			"dispatch_notifications_worker_id_invalid",
			"dispatch worker id is required",
			nil,
		)
	}
	if command.MaxAttempts <= 0 || command.LeaseDuration <= 0 || command.RetryBackoff <= 0 {
		return dto.DispatchNotificationsOutput{}, apperrors.NewValidation(
			"dispatch_notifications_command_invalid",
			"max attempts, lease duration and retry backoff must be greater than zero",
			nil,
		)
	}

	now := command.Now.UTC()
	if command.Now.IsZero() {
		now = time.Now().UTC()
	}

	rows, appErr := u.outbox.ClaimPendingForDispatch(
		ctx,
		now,
		command.BatchSize,
		workerID,
		now.Add(command.LeaseDuration),
	)
	if appErr != nil {
		return dto.DispatchNotificationsOutput{}, appErr
	}

	output := dto.DispatchNotificationsOutput{Claimed: len(rows)}
	for _, row := range rows {
		sendErr := u.deliver(ctx, row)
		if sendErr == nil {
			if _, markErr := u.outbox.MarkSent(ctx, row.ID, workerID, now); markErr != nil {
				return output, markErr
			}
			output.Delivered++
			continue
		}

		nextAttempts := row.Attempts + 1
		if nextAttempts >= command.MaxAttempts {
			if _, markErr := u.outbox.MarkFailed(ctx, row.ID, workerID, nextAttempts, sendErr.Message, now); markErr != nil {
				return output, markErr
			}
			output.Failed++
			continue
		}

		backoff := retryBackoff(nextAttempts, command.RetryBackoff)
		if _, markErr := u.outbox.MarkRetry(ctx, row.ID, workerID, nextAttempts, now.Add(backoff), sendErr.Message, now); markErr != nil {
			return output, markErr
		}
		output.Retried++
	}

	return output, nil
}

func (u *dispatchNotificationsUseCase) deliver(ctx context.Context, notification entities.Notification) *apperrors.AppError {
	switch len(notification.PhotoURLs) {
	case 0:
		return u.gateway.SendText(ctx, notification.ChatID, notification.Text)
	case 1:
		return u.gateway.SendPhoto(ctx, notification.ChatID, notification.Text, notification.PhotoURLs[0])
	default:
		return u.gateway.SendMediaGroup(ctx, notification.ChatID, notification.Text, notification.PhotoURLs)
	}
}

func retryBackoff(attempts int, initial time.Duration) time.Duration {
	backoff := initial
	for i := 1; i < attempts; i++ {
		backoff *= 2
		if backoff >= 10*time.Minute {
			return 10 * time.Minute
		}
	}

	return backoff
}
