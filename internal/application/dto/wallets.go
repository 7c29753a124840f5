package dto

import "time"

type WalletResource struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Type      string    `json:"type"`
	TokenType string    `json:"token_type"`
	Balance   string    `json:"balance"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GetWalletQuery struct {
	UserID int64
	Type   string
}

type ListWalletsQuery struct {
	UserID int64
}

type ConnectWalletCommand struct {
	UserID    int64
	Type      string
	TokenType string
	Address   string
}

type CreateWalletCommand struct {
	UserID    int64
	Type      string
	TokenType string
	Address   string
}

type CreateEthereumWalletCommand struct {
	UserID int64
}

type CreateEthereumWalletOutput struct {
	Wallet  WalletResource `json:"wallet"`
	Address string         `json:"address"`
}

// WalletTransferCommand is the client-trust deposit/withdraw body: the
// caller reports a settled on-chain movement and the ledger follows.
type WalletTransferCommand struct {
	UserID          int64
	Amount          string
	TokenType       string
	Description     string
	TransactionHash string
	AddressFrom     string
	AddressTo       string
}

type TransactionResource struct {
	ID              int64     `json:"id"`
	TransactionType string    `json:"transaction_type"`
	Status          string    `json:"status"`
	Amount          string    `json:"amount"`
	TokenType       string    `json:"token_type"`
	TransactionHash *string   `json:"transaction_hash,omitempty"`
	AddressFrom     *string   `json:"address_from,omitempty"`
	AddressTo       *string   `json:"address_to,omitempty"`
	UserIDFrom      *int64    `json:"user_id_from,omitempty"`
	UserIDTo        *int64    `json:"user_id_to,omitempty"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ListTransactionsQuery struct {
	UserID int64
}

type UpdateTransactionCommand struct {
	TransactionID   int64
	Status          string
	TransactionHash string
}

type GroupPendingTransactionsQuery struct {
	UserID int64
}

type PendingGroupResource struct {
	UserIDFrom  int64  `json:"user_id_from"`
	UserIDTo    int64  `json:"user_id_to"`
	AddressFrom string `json:"address_from"`
	AddressTo   string `json:"address_to"`
	TokenType   string `json:"token_type"`
	Amount      string `json:"amount"`
	Count       int    `json:"count"`
}
