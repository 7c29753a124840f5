package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type resetPasswordUseCase struct {
	users  portsout.UserRepository
	hasher portsout.PasswordHasher
}

func NewResetPasswordUseCase(
	users portsout.UserRepository,
	hasher portsout.PasswordHasher,
) portsin.ResetPasswordUseCase {
	return &resetPasswordUseCase{
		users:  users,
		hasher: hasher,
	}
}

func (u *resetPasswordUseCase) Execute(ctx context.Context, command dto.ResetPasswordCommand) (dto.UserResource, *apperrors.AppError) {
	if u.users == nil {
		return dto.UserResource{}, apperrors.NewInternal(
			"user_repository_missing",
			"user repository is required",
			nil,
		)
	}

	if len(command.NewPassword) < minPasswordLength {
		return dto.UserResource{}, apperrors.NewValidation(
			"invalid_request",
			"password must be at least 8 characters",
			map[string]any{"field": "new_password"},
		)
	}

	user, appErr := u.users.GetByID(ctx, command.UserID)
	if appErr != nil {
		return dto.UserResource{}, appErr
	}

	if compareErr := u.hasher.Compare(user.PasswordHash, command.OldPassword); compareErr != nil {
		return dto.UserResource{}, apperrors.NewUnauthorized(
			"invalid_credentials",
			"old password does not match",
			nil,
		)
	}

	newHash, appErr := u.hasher.Hash(command.NewPassword)
	if appErr != nil {
		return dto.UserResource{}, appErr
	}

	if appErr := u.users.UpdatePasswordHash(ctx, user.ID, newHash); appErr != nil {
		return dto.UserResource{}, appErr
	}

	return mapUserResource(user), nil
}
