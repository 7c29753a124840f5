package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type updateSettingsUseCase struct {
	settings portsout.SettingsRepository
	clock    Clock
}

func NewUpdateSettingsUseCase(settings portsout.SettingsRepository, clock Clock) portsin.UpdateSettingsUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &updateSettingsUseCase{settings: settings, clock: clock}
}

func (u *updateSettingsUseCase) Execute(ctx context.Context, command dto.UpdateSettingsCommand) (dto.SettingsResource, *apperrors.AppError) {
	if u.settings == nil {
		return dto.SettingsResource{}, apperrors.NewInternal(
			"settings_repository_missing",
			"settings repository is required",
			nil,
		)
	}

	thresholdMinor := int64(0)
	if command.LowBalanceThreshold != "" {
		parsed, appErr := valueobjects.ParseAmountMinor(command.LowBalanceThreshold)
		if appErr != nil {
			return dto.SettingsResource{}, appErr
		}
		thresholdMinor = parsed
	}

	setting, appErr := u.settings.Upsert(ctx, entities.Setting{
		UserID:              command.UserID,
		LowBalanceThreshold: thresholdMinor,
		SoundAlertsEnabled:  command.SoundAlertsEnabled,
		NotificationsChatID: command.NotificationsChatID,
		UpdatedAt:           u.clock.NowUTC(),
	})
	if appErr != nil {
		return dto.SettingsResource{}, appErr
	}

	return mapSettingsResource(setting), nil
}
