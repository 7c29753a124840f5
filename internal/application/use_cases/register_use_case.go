package use_cases

import (
	"context"
	"strings"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

const minPasswordLength = 8

type registerUseCase struct {
	users  portsout.UserRepository
	hasher portsout.PasswordHasher
	tokens portsout.TokenIssuer
	clock  Clock
}

func NewRegisterUseCase(
	users portsout.UserRepository,
	hasher portsout.PasswordHasher,
	tokens portsout.TokenIssuer,
	clock Clock,
) portsin.RegisterUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &registerUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		clock:  clock,
	}
}

func (u *registerUseCase) Execute(ctx context.Context, command dto.RegisterCommand) (dto.AuthOutput, *apperrors.AppError) {
	if u.users == nil {
		return dto.AuthOutput{}, apperrors.NewInternal(
			"user_repository_missing",
			"user repository is required",
			nil,
		)
	}

	username := strings.TrimSpace(command.Username)
	email := strings.ToLower(strings.TrimSpace(command.Email))
	if username == "" {
		return dto.AuthOutput{}, apperrors.NewValidation(
			"invalid_request",
			"username is required",
			map[string]any{"field": "username"},
		)
	}
	if email == "" || !strings.Contains(email, "@") {
		return dto.AuthOutput{}, apperrors.NewValidation(
			"invalid_request",
			"email is invalid",
			map[string]any{"field": "email"},
		)
	}
	if len(command.Password) < minPasswordLength {
		return dto.AuthOutput{}, apperrors.NewValidation(
			"invalid_request",
			"password must be at least 8 characters",
			map[string]any{"field": "password"},
		)
	}

	role := entities.UserRoleClient
	if command.Role != "" {
		parsed, appErr := entities.ParseUserRole(command.Role)
		if appErr != nil {
			return dto.AuthOutput{}, appErr
		}
		role = parsed
	}

	passwordHash, appErr := u.hasher.Hash(command.Password)
	if appErr != nil {
		return dto.AuthOutput{}, appErr
	}

	user, appErr := u.users.Create(ctx, entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    u.clock.NowUTC(),
	})
	if appErr != nil {
		return dto.AuthOutput{}, appErr
	}

	token, appErr := u.tokens.Issue(user, u.clock.NowUTC())
	if appErr != nil {
		return dto.AuthOutput{}, appErr
	}

	return dto.AuthOutput{
		User:        mapUserResource(user),
		AccessToken: token,
	}, nil
}
