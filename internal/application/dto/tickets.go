package dto

import "time"

type TicketResource struct {
	ID               int64          `json:"id"`
	TicketID         string         `json:"ticket_id"`
	Status           string         `json:"status"`
	Amount           string         `json:"amount"`
	TokenType        string         `json:"token_type"`
	FacebookName     string         `json:"facebook_name"`
	Game             string         `json:"game"`
	GameID           string         `json:"game_id"`
	PaymentMethod    string         `json:"payment_method,omitempty"`
	PaymentTag       string         `json:"payment_tag,omitempty"`
	AccountName      string         `json:"account_name,omitempty"`
	ImagePath        string         `json:"image_path,omitempty"`
	CompletionImages []string       `json:"completion_images,omitempty"`
	PaymentDetails   map[string]any `json:"payment_details,omitempty"`
	DomainID         int64          `json:"domain_id"`
	ChatGroupID      string         `json:"chat_group_id,omitempty"`
	FulfillerID      *int64         `json:"fulfiller_id,omitempty"`
	ReportReason     *string        `json:"report_reason,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
}

type ListMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type ListTicketsQuery struct {
	Status string
	Page   int
	Limit  int
}

// ListTicketsWithoutLimitQuery returns every ticket in the named
// statuses, newest first, with no pagination window.
type ListTicketsWithoutLimitQuery struct {
	Statuses []string
}

type TicketListOutput struct {
	Data []TicketResource `json:"data"`
	Meta ListMeta         `json:"meta"`
}

type GetTicketQuery struct {
	ID int64
}

type CreateTicketCommand struct {
	FacebookName  string
	Amount        string
	Game          string
	GameID        string
	PaymentMethod string
	PaymentTag    string
	AccountName   string
	ImagePath     string
	DomainID      int64
	ChatGroupID   string
}

type ReviewTicketCommand struct {
	TicketID int64
}

type ClaimTicketCommand struct {
	TicketID    int64
	FulfillerID int64
}

type CompleteTicketCommand struct {
	TicketID    int64
	FulfillerID int64
	ImageURLs   []string
}

type CompleteTicketOutput struct {
	Ticket        TicketResource `json:"ticket"`
	WalletBalance string         `json:"balance"`
}

type ReportTicketCommand struct {
	TicketID      int64
	FulfillerID   int64
	Reason        string
	ScreenshotURL string
}

type ReportTicketOutput struct {
	Ticket        TicketResource `json:"ticket"`
	WalletBalance string         `json:"balance"`
}
