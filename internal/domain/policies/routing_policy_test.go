//go:build !integration

package policies

import (
	"testing"

	"ticketpay/internal/domain/entities"
)

func TestRoutingPolicyVisibility(t *testing.T) {
	policy := NewRoutingPolicy([]int64{39, 1166})

	partnerTicket := entities.Ticket{ID: 1, DomainID: PartnerDomainID}
	regularTicket := entities.Ticket{ID: 2, DomainID: 1}

	tests := []struct {
		name        string
		fulfillerID int64
		ticket      entities.Ticket
		visible     bool
	}{
		{name: "partner sees partner ticket", fulfillerID: 39, ticket: partnerTicket, visible: true},
		{name: "partner hides regular ticket", fulfillerID: 1166, ticket: regularTicket, visible: false},
		{name: "regular sees regular ticket", fulfillerID: 7, ticket: regularTicket, visible: true},
		{name: "regular hides partner ticket", fulfillerID: 7, ticket: partnerTicket, visible: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Visible(tc.fulfillerID, tc.ticket); got != tc.visible {
				t.Fatalf("expected %v, got %v", tc.visible, got)
			}
		})
	}
}

func TestRoutingPolicyFilterVisiblePreservesOrder(t *testing.T) {
	policy := NewRoutingPolicy([]int64{39})

	tickets := []entities.Ticket{
		{ID: 1, DomainID: 1},
		{ID: 2, DomainID: PartnerDomainID},
		{ID: 3, DomainID: 5},
	}

	visible := policy.FilterVisible(7, tickets)
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible tickets, got %d", len(visible))
	}
	if visible[0].ID != 1 || visible[1].ID != 3 {
		t.Fatalf("unexpected order: %+v", visible)
	}
}

func TestFulfillerCreditMinorAddsMargin(t *testing.T) {
	tests := []struct {
		amount int64
		credit int64
	}{
		{amount: 100_000_000, credit: 103_000_000},
		{amount: 1_000_000, credit: 1_030_000},
		{amount: 0, credit: 0},
	}

	for _, tc := range tests {
		if got := FulfillerCreditMinor(tc.amount); got != tc.credit {
			t.Fatalf("amount %d: expected %d, got %d", tc.amount, tc.credit, got)
		}
	}
}
