package entities

import "time"

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

type NotificationKind string

const (
	NotificationKindTicketCreated   NotificationKind = "ticket_created"
	NotificationKindTicketCompleted NotificationKind = "ticket_completed"
	NotificationKindTicketReported  NotificationKind = "ticket_reported"
)

// Notification is an outbox row. The dispatcher leases pending rows,
// delivers them to the chat gateway and marks the outcome; rows that
// exhaust their attempts go to failed and stay for inspection.
type Notification struct {
	ID            int64
	ChatID        string
	Kind          NotificationKind
	Text          string
	PhotoURLs     []string
	Status        NotificationStatus
	Attempts      int
	NextAttemptAt time.Time
	LeasedUntil   *time.Time
	LastError     string
	CreatedAt     time.Time
	SentAt        *time.Time
}

type DepositIntent struct {
	ID              int64
	AddressFrom     string
	DepositAddress  string
	DerivationIndex int64
	AmountMinor     int64
	Confirmed       bool
	TransactionHash *string
	CreatedAt       time.Time
	ConfirmedAt     *time.Time
}

type Setting struct {
	UserID              int64
	LowBalanceThreshold int64
	SoundAlertsEnabled  bool
	NotificationsChatID string
	UpdatedAt           time.Time
}
