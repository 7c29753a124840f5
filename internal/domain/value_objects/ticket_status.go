package valueobjects

import apperrors "ticketpay/internal/shared_kernel/errors"

type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusValidated  TicketStatus = "validated"
	TicketStatusProcessing TicketStatus = "processing"
	TicketStatusCompleted  TicketStatus = "completed"
	TicketStatusError      TicketStatus = "error"
	TicketStatusDeclined   TicketStatus = "declined"
	TicketStatusCancelled  TicketStatus = "cancelled"
)

func NewTicketStatus() TicketStatus {
	return TicketStatusNew
}

func ParseTicketStatus(raw string) (TicketStatus, *apperrors.AppError) {
	switch raw {
	case string(TicketStatusNew):
		return TicketStatusNew, nil
	case string(TicketStatusValidated):
		return TicketStatusValidated, nil
	case string(TicketStatusProcessing):
		return TicketStatusProcessing, nil
	case string(TicketStatusCompleted):
		return TicketStatusCompleted, nil
	case string(TicketStatusError):
		return TicketStatusError, nil
	case string(TicketStatusDeclined):
		return TicketStatusDeclined, nil
	case string(TicketStatusCancelled):
		return TicketStatusCancelled, nil
	default:
		return "", apperrors.NewInternal(
			"ticket_status_invalid",
			"ticket status is invalid",
			map[string]any{"status": raw},
		)
	}
}

// CanTransitionTo encodes the ticket lifecycle. Forward movement is
// new -> validated -> processing -> completed|error; declined and
// cancelled absorb tickets that never reached processing.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	switch s {
	case TicketStatusNew:
		return next == TicketStatusValidated || next == TicketStatusDeclined || next == TicketStatusCancelled
	case TicketStatusValidated:
		return next == TicketStatusProcessing || next == TicketStatusDeclined || next == TicketStatusCancelled
	case TicketStatusProcessing:
		return next == TicketStatusCompleted || next == TicketStatusError
	default:
		return false
	}
}

func (s TicketStatus) IsTerminal() bool {
	switch s {
	case TicketStatusCompleted, TicketStatusError, TicketStatusDeclined, TicketStatusCancelled:
		return true
	default:
		return false
	}
}

func (s TicketStatus) String() string {
	return string(s)
}
