package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type getSettingsUseCase struct {
	settings portsout.SettingsRepository
}

func NewGetSettingsUseCase(settings portsout.SettingsRepository) portsin.GetSettingsUseCase {
	return &getSettingsUseCase{settings: settings}
}

func (u *getSettingsUseCase) Execute(ctx context.Context, query dto.GetSettingsQuery) (dto.SettingsResource, *apperrors.AppError) {
	if u.settings == nil {
		return dto.SettingsResource{}, apperrors.NewInternal(
			"settings_repository_missing",
			"settings repository is required",
			nil,
		)
	}

	setting, appErr := u.settings.Get(ctx, query.UserID)
	if appErr != nil {
		return dto.SettingsResource{}, appErr
	}

	return mapSettingsResource(setting), nil
}
