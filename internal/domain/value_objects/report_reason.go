package valueobjects

import apperrors "ticketpay/internal/shared_kernel/errors"

type ReportReason string

const (
	ReportReasonAccountNotFound ReportReason = "ACCOUNT_NOT_FOUND"
	ReportReasonInvalidPayment  ReportReason = "INVALID_PAYMENT"
	ReportReasonContactHost     ReportReason = "CONTACT_HOST"
)

func ParseReportReason(raw string) (ReportReason, *apperrors.AppError) {
	switch raw {
	case string(ReportReasonAccountNotFound):
		return ReportReasonAccountNotFound, nil
	case string(ReportReasonInvalidPayment):
		return ReportReasonInvalidPayment, nil
	case string(ReportReasonContactHost):
		return ReportReasonContactHost, nil
	default:
		return "", apperrors.NewValidation(
			"invalid_request",
			"report reason is invalid",
			map[string]any{"reason": raw},
		)
	}
}

// Description is the operator-facing detail attached to report
// notifications for each reason.
func (r ReportReason) Description() string {
	switch r {
	case ReportReasonAccountNotFound:
		return "Customer account info cannot be found"
	case ReportReasonInvalidPayment:
		return "Customer information doesn't match"
	case ReportReasonContactHost:
		return "Cannot fulfill, please contact admin"
	default:
		return string(r)
	}
}

func (r ReportReason) String() string {
	return string(r)
}
