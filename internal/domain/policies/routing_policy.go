package policies

import "ticketpay/internal/domain/entities"

// Partner tickets carry this domain id and are routed only to the
// fulfillers on the partner allow-list; everyone else sees the rest.
const PartnerDomainID = 2

type RoutingPolicy struct {
	partnerFulfillerIDs map[int64]struct{}
}

func NewRoutingPolicy(partnerFulfillerIDs []int64) RoutingPolicy {
	set := make(map[int64]struct{}, len(partnerFulfillerIDs))
	for _, id := range partnerFulfillerIDs {
		set[id] = struct{}{}
	}

	return RoutingPolicy{partnerFulfillerIDs: set}
}

func (p RoutingPolicy) IsPartnerFulfiller(fulfillerID int64) bool {
	_, ok := p.partnerFulfillerIDs[fulfillerID]
	return ok
}

func (p RoutingPolicy) Visible(fulfillerID int64, ticket entities.Ticket) bool {
	if p.IsPartnerFulfiller(fulfillerID) {
		return ticket.DomainID == PartnerDomainID
	}

	return ticket.DomainID != PartnerDomainID
}

// FilterVisible keeps the tickets the fulfiller may work on, preserving
// order.
func (p RoutingPolicy) FilterVisible(fulfillerID int64, tickets []entities.Ticket) []entities.Ticket {
	out := make([]entities.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if p.Visible(fulfillerID, ticket) {
			out = append(out, ticket)
		}
	}

	return out
}
