package policies

import "time"

const (
	// MaxAcceptedTickets caps concurrent work per fulfiller session.
	MaxAcceptedTickets = 10

	// AcceptedTicketMaxAge is how long an accepted ticket may sit before
	// the session raises an aging warning.
	AcceptedTicketMaxAge = time.Hour

	fulfillMarginNumerator   = 103
	fulfillMarginDenominator = 100
)

// FulfillerCreditMinor is the payout credited for a completed ticket:
// the face amount plus a 3% fulfillment margin, in minor units.
func FulfillerCreditMinor(amountMinor int64) int64 {
	return amountMinor * fulfillMarginNumerator / fulfillMarginDenominator
}
