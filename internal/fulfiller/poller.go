package fulfiller

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"ticketpay/internal/application/dto"
	"ticketpay/internal/domain/entities"
	"ticketpay/internal/domain/policies"
)

const defaultPollInterval = 20 * time.Second

// Validated tickets form the incoming list; errored tickets mirror the
// server's reported state and are never claimable work.
var (
	incomingStatuses = []string{"validated"}
	reportedStatuses = []string{"error"}
)

// Poller refreshes the incoming and reported lists on a fixed interval.
// Each cycle replaces both wholesale through the board's sequence
// check, so a response that arrives late can never overwrite a newer
// one. A poll failure leaves the lists untouched and is logged, never
// alerted.
type Poller struct {
	client       BackendClient
	board        *Board
	routing      policies.RoutingPolicy
	fulfillerID  int64
	pollInterval time.Duration
	alerts       AlertSink
	sounds       func() bool
	logger       *log.Logger

	sequence atomic.Uint64

	mu           sync.Mutex
	lastIncoming int
}

func NewPoller(
	client BackendClient,
	board *Board,
	routing policies.RoutingPolicy,
	fulfillerID int64,
	pollInterval time.Duration,
	alerts AlertSink,
	sounds func() bool,
	logger *log.Logger,
) *Poller {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if alerts == nil {
		alerts = NopAlertSink{}
	}
	if sounds == nil {
		sounds = func() bool { return false }
	}

	return &Poller{
		client:       client,
		board:        board,
		routing:      routing,
		fulfillerID:  fulfillerID,
		pollInterval: pollInterval,
		alerts:       alerts,
		sounds:       sounds,
		logger:       logger,
	}
}

func (p *Poller) Run(ctx context.Context) {
	p.logf("ticket poller started interval=%s", p.pollInterval)

	p.runCycle(ctx)

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logf("ticket poller stopped")
			return
		case <-ticker.C:
			p.runCycle(ctx)
		}
	}
}

// PollNow forces an immediate refresh, used after validate and decline
// so the list reflects the review without waiting a full interval.
func (p *Poller) PollNow(ctx context.Context) {
	p.runCycle(ctx)
}

func (p *Poller) runCycle(ctx context.Context) {
	sequence := p.sequence.Add(1)
	startedAt := time.Now()

	incoming, appErr := p.client.ListTicketsWithoutLimit(ctx, incomingStatuses)
	if appErr != nil {
		p.logf("ticket poll failed code=%s message=%s", appErr.Code, appErr.Message)
		return
	}
	reported, appErr := p.client.ListTicketsWithoutLimit(ctx, reportedStatuses)
	if appErr != nil {
		p.logf("reported ticket poll failed code=%s message=%s", appErr.Code, appErr.Message)
		return
	}

	visible := p.filterVisible(incoming)
	if !p.board.ApplySnapshot(sequence, visible, reported) {
		p.logf("ticket poll discarded stale snapshot sequence=%d", sequence)
		return
	}

	count := p.board.IncomingCount()

	p.mu.Lock()
	previous := p.lastIncoming
	p.lastIncoming = count
	p.mu.Unlock()

	if count > previous && p.sounds() {
		p.alerts.PlaySound()
	}

	p.logf("ticket poll completed incoming=%d reported=%d latency_ms=%d", count, len(reported), time.Since(startedAt).Milliseconds())
}

func (p *Poller) filterVisible(tickets []dto.TicketResource) []dto.TicketResource {
	visible := make([]dto.TicketResource, 0, len(tickets))
	for _, ticket := range tickets {
		if p.routing.Visible(p.fulfillerID, entities.Ticket{DomainID: ticket.DomainID}) {
			visible = append(visible, ticket)
		}
	}
	return visible
}

func (p *Poller) logf(format string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Printf(format, args...)
}
