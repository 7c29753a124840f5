package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type listWithdrawRequestsUseCase struct {
	requests portsout.WithdrawRequestRepository
}

func NewListWithdrawRequestsUseCase(requests portsout.WithdrawRequestRepository) portsin.ListWithdrawRequestsUseCase {
	return &listWithdrawRequestsUseCase{requests: requests}
}

func (u *listWithdrawRequestsUseCase) Execute(ctx context.Context, query dto.ListWithdrawRequestsQuery) ([]dto.WithdrawRequestResource, *apperrors.AppError) {
	if u.requests == nil {
		return nil, apperrors.NewInternal(
			"withdraw_request_repository_missing",
			"withdraw request repository is required",
			nil,
		)
	}
	if query.UserID <= 0 {
		return nil, apperrors.NewValidation(
			"invalid_request",
			"user id is required",
			nil,
		)
	}

	requests, appErr := u.requests.ListByUser(ctx, query.UserID)
	if appErr != nil {
		return nil, appErr
	}

	resources := make([]dto.WithdrawRequestResource, 0, len(requests))
	for _, request := range requests {
		resources = append(resources, mapWithdrawRequestResource(request))
	}

	return resources, nil
}
