package entities

import (
	"fmt"
	"time"

	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type Ticket struct {
	ID               int64
	TicketID         string
	Status           valueobjects.TicketStatus
	AmountMinor      int64
	TokenType        valueobjects.TokenType
	FacebookName     string
	Game             string
	GameID           string
	PaymentMethod    string
	PaymentTag       string
	AccountName      string
	ImagePath        string
	CompletionImages []string
	PaymentDetails   map[string]any
	DomainID         int64
	ChatGroupID      string
	FulfillerID      *int64
	ReportReason     *valueobjects.ReportReason
	CreatedAt        time.Time
	CompletedAt      *time.Time
}

type NewTicketInput struct {
	FacebookName  string
	AmountMinor   int64
	Game          string
	GameID        string
	PaymentMethod string
	PaymentTag    string
	AccountName   string
	ImagePath     string
	DomainID      int64
	ChatGroupID   string
	CreatedAt     time.Time
}

func NewTicket(input NewTicketInput) (Ticket, *apperrors.AppError) {
	if input.FacebookName == "" {
		return Ticket{}, apperrors.NewValidation(
			"invalid_request",
			"facebook_name is required",
			map[string]any{"field": "facebook_name"},
		)
	}
	if input.AmountMinor <= 0 {
		return Ticket{}, apperrors.NewValidation(
			"invalid_request",
			"amount must be greater than 0",
			map[string]any{"field": "amount"},
		)
	}
	if input.Game == "" {
		return Ticket{}, apperrors.NewValidation(
			"invalid_request",
			"game is required",
			map[string]any{"field": "game"},
		)
	}

	return Ticket{
		Status:        valueobjects.NewTicketStatus(),
		AmountMinor:   input.AmountMinor,
		TokenType:     valueobjects.TokenTypeUSDC,
		FacebookName:  input.FacebookName,
		Game:          input.Game,
		GameID:        input.GameID,
		PaymentMethod: input.PaymentMethod,
		PaymentTag:    input.PaymentTag,
		AccountName:   input.AccountName,
		ImagePath:     input.ImagePath,
		DomainID:      input.DomainID,
		ChatGroupID:   input.ChatGroupID,
		CreatedAt:     input.CreatedAt.UTC(),
	}, nil
}

// DisplayID falls back to "TICKET-<id>" when no display identifier was
// assigned at intake.
func (t Ticket) DisplayID() string {
	if t.TicketID != "" {
		return t.TicketID
	}

	return fmt.Sprintf("TICKET-%d", t.ID)
}

func (t Ticket) TransitionTo(next valueobjects.TicketStatus) *apperrors.AppError {
	if !t.Status.CanTransitionTo(next) {
		return apperrors.NewConflict(
			"ticket_status_transition_invalid",
			fmt.Sprintf("ticket cannot move from %s to %s", t.Status, next),
			map[string]any{"from": t.Status.String(), "to": next.String()},
		)
	}

	return nil
}
