package dto

import "time"

type ResolveDepositAddressQuery struct {
	Amount      string
	AddressFrom string
}

type DepositAddressResource struct {
	Address         string `json:"address"`
	DerivationIndex int64  `json:"derivation_index"`
	Amount          string `json:"amount"`
}

type ReportDepositCommand struct {
	UserID          int64
	TransactionHash string
}

type ReportDepositOutput struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ReconcileDepositsCommand drives one sweep over unconfirmed deposit
// intents, checking each reported hash against the chain.
type ReconcileDepositsCommand struct {
	BatchSize int
}

type ReconcileDepositsOutput struct {
	Scanned   int `json:"scanned"`
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
}

type ListWithdrawRequestsQuery struct {
	UserID int64
}

type CreateWithdrawRequestCommand struct {
	UserID int64
	Amount string
	To     string
}

type WithdrawRequestResource struct {
	ID         int64      `json:"id"`
	Amount     string     `json:"amount"`
	ToAddress  string     `json:"to"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}
