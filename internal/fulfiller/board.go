package fulfiller

import (
	"sort"
	"sync"

	"ticketpay/internal/application/dto"
)

// Sort fields accepted by the board. Direction is ascending unless
// flipped.
const (
	SortByCreatedAt = "created_at"
	SortByAmount    = "amount"
	SortByID        = "id"
)

// Board holds the session's ticket lists. Incoming, accepted and
// reported are pairwise disjoint by ticket id; snapshot application is
// monotonic by poll sequence so a slow response can never clobber a
// newer one.
type Board struct {
	mu sync.Mutex

	incoming []dto.TicketResource
	accepted []dto.TicketResource
	reported []dto.TicketResource

	lastSequence  uint64
	sortField     string
	sortAscending bool
}

func NewBoard() *Board {
	return &Board{
		sortField:     SortByCreatedAt,
		sortAscending: false,
	}
}

// ApplySnapshot replaces the incoming and reported lists wholesale.
// Snapshots older than the last applied sequence are rejected. Tickets
// the session has accepted are dropped from both lists, and incoming
// drops anything in the fresh reported list, keeping the lists
// disjoint.
func (b *Board) ApplySnapshot(sequence uint64, incoming, reported []dto.TicketResource) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sequence <= b.lastSequence {
		return false
	}
	b.lastSequence = sequence

	acceptedIDs := make(map[int64]struct{}, len(b.accepted))
	for _, ticket := range b.accepted {
		acceptedIDs[ticket.ID] = struct{}{}
	}

	freshReported := make([]dto.TicketResource, 0, len(reported))
	reportedIDs := make(map[int64]struct{}, len(reported))
	for _, ticket := range reported {
		if _, exists := acceptedIDs[ticket.ID]; exists {
			continue
		}
		freshReported = append(freshReported, ticket)
		reportedIDs[ticket.ID] = struct{}{}
	}

	freshIncoming := make([]dto.TicketResource, 0, len(incoming))
	for _, ticket := range incoming {
		if _, exists := acceptedIDs[ticket.ID]; exists {
			continue
		}
		if _, exists := reportedIDs[ticket.ID]; exists {
			continue
		}
		freshIncoming = append(freshIncoming, ticket)
	}

	sortTickets(freshIncoming, b.sortField, b.sortAscending)
	b.incoming = freshIncoming
	b.reported = freshReported
	return true
}

// SetAccepted seeds the accepted list, used once at session start.
func (b *Board) SetAccepted(tickets []dto.TicketResource) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.accepted = append([]dto.TicketResource(nil), tickets...)
	b.incoming = b.withoutIDs(b.incoming, idsOf(tickets))
}

// Claim moves a ticket from incoming to accepted. The updated resource
// from the server replaces the stale incoming copy.
func (b *Board) Claim(updated dto.TicketResource) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	found := false
	remaining := make([]dto.TicketResource, 0, len(b.incoming))
	for _, ticket := range b.incoming {
		if ticket.ID == updated.ID {
			found = true
			continue
		}
		remaining = append(remaining, ticket)
	}
	if !found {
		return false
	}

	b.incoming = remaining
	b.accepted = append(b.accepted, updated)
	return true
}

// Complete removes a finished ticket from the accepted list.
func (b *Board) Complete(ticketID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	accepted, removed := removeID(b.accepted, ticketID)
	b.accepted = accepted
	return removed
}

// Report moves a ticket from accepted to reported.
func (b *Board) Report(updated dto.TicketResource) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	accepted, removed := removeID(b.accepted, updated.ID)
	if !removed {
		return false
	}

	b.accepted = accepted
	b.reported = append(b.reported, updated)
	return true
}

// Drop removes a ticket from the incoming list, used after a decline.
func (b *Board) Drop(ticketID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.incoming, _ = removeID(b.incoming, ticketID)
}

func (b *Board) Incoming() []dto.TicketResource {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.TicketResource(nil), b.incoming...)
}

func (b *Board) Accepted() []dto.TicketResource {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.TicketResource(nil), b.accepted...)
}

func (b *Board) Reported() []dto.TicketResource {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.TicketResource(nil), b.reported...)
}

func (b *Board) IncomingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.incoming)
}

func (b *Board) AcceptedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.accepted)
}

func (b *Board) AcceptedIDs() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return idsOf(b.accepted)
}

// SetSort stores the active sort and re-sorts the incoming list.
func (b *Board) SetSort(field string, ascending bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sortField = field
	b.sortAscending = ascending
	sortTickets(b.incoming, field, ascending)
}

func (b *Board) Sort() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortField, b.sortAscending
}

func (b *Board) withoutIDs(tickets []dto.TicketResource, ids []int64) []dto.TicketResource {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	out := make([]dto.TicketResource, 0, len(tickets))
	for _, ticket := range tickets {
		if _, exists := drop[ticket.ID]; exists {
			continue
		}
		out = append(out, ticket)
	}
	return out
}

func removeID(tickets []dto.TicketResource, ticketID int64) ([]dto.TicketResource, bool) {
	removed := false
	out := make([]dto.TicketResource, 0, len(tickets))
	for _, ticket := range tickets {
		if ticket.ID == ticketID {
			removed = true
			continue
		}
		out = append(out, ticket)
	}
	return out, removed
}

func idsOf(tickets []dto.TicketResource) []int64 {
	ids := make([]int64, 0, len(tickets))
	for _, ticket := range tickets {
		ids = append(ids, ticket.ID)
	}
	return ids
}

func sortTickets(tickets []dto.TicketResource, field string, ascending bool) {
	less := func(i, j int) bool {
		switch field {
		case SortByAmount:
			if tickets[i].Amount != tickets[j].Amount {
				return amountLess(tickets[i].Amount, tickets[j].Amount)
			}
		case SortByID:
			return tickets[i].ID < tickets[j].ID
		default:
			if !tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
				return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
			}
		}
		return tickets[i].ID < tickets[j].ID
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		if ascending {
			return less(i, j)
		}
		return less(j, i)
	})
}

// amountLess compares decimal amount strings numerically by padding the
// integer part, avoiding a float round trip.
func amountLess(a, b string) bool {
	normalize := func(s string) (string, string) {
		integer, fraction := s, ""
		for i := 0; i < len(s); i++ {
			if s[i] == '.' {
				integer, fraction = s[:i], s[i+1:]
				break
			}
		}
		for len(fraction) < 6 {
			fraction += "0"
		}
		for len(integer) < 13 {
			integer = "0" + integer
		}
		return integer, fraction
	}

	aInt, aFrac := normalize(a)
	bInt, bFrac := normalize(b)
	if aInt != bInt {
		return aInt < bInt
	}
	return aFrac < bFrac
}
