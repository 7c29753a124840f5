package out

import (
	"context"

	apperrors "ticketpay/internal/shared_kernel/errors"
)

type TokenTransfer struct {
	TransactionHash string
	TokenContract   string
	AddressFrom     string
	AddressTo       string
	AmountMinor     int64
	Confirmed       bool
}

// TokenTransferReader resolves an ERC-20 transfer by transaction hash.
// The boolean is false while the node has not indexed the hash yet.
type TokenTransferReader interface {
	GetTokenTransfer(ctx context.Context, transactionHash string) (TokenTransfer, bool, *apperrors.AppError)
}
