package use_cases

import (
	"context"
	"strings"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type loginUseCase struct {
	users  portsout.UserRepository
	hasher portsout.PasswordHasher
	tokens portsout.TokenIssuer
	clock  Clock
}

func NewLoginUseCase(
	users portsout.UserRepository,
	hasher portsout.PasswordHasher,
	tokens portsout.TokenIssuer,
	clock Clock,
) portsin.LoginUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &loginUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		clock:  clock,
	}
}

func (u *loginUseCase) Execute(ctx context.Context, command dto.LoginCommand) (dto.AuthOutput, *apperrors.AppError) {
	if u.users == nil {
		return dto.AuthOutput{}, apperrors.NewInternal(
			"user_repository_missing",
			"user repository is required",
			nil,
		)
	}

	login := strings.TrimSpace(command.Login)
	if login == "" || command.Password == "" {
		return dto.AuthOutput{}, apperrors.NewValidation(
			"invalid_request",
			"login and password are required",
			nil,
		)
	}

	user, appErr := u.users.GetByLogin(ctx, login)
	if appErr != nil {
		if appErr.Type == apperrors.TypeNotFound {
			return dto.AuthOutput{}, apperrors.NewUnauthorized(
				"invalid_credentials",
				"invalid login or password",
				nil,
			)
		}
		return dto.AuthOutput{}, appErr
	}

	if compareErr := u.hasher.Compare(user.PasswordHash, command.Password); compareErr != nil {
		return dto.AuthOutput{}, apperrors.NewUnauthorized(
			"invalid_credentials",
			"invalid login or password",
			nil,
		)
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
