package fulfiller

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"ticketpay/internal/domain/policies"
)

const defaultAgingTick = time.Second

// AgingMonitor watches how long each accepted ticket has been held.
// Crossing the age limit raises one warning, then the first-seen time
// is re-armed just under the limit so the warning repeats about once
// per tick interval past the threshold rather than flooding every tick.
type AgingMonitor struct {
	board  *Board
	alerts AlertSink
	tick   time.Duration
	maxAge time.Duration
	logger *log.Logger
	now    func() time.Time

	mu        sync.Mutex
	firstSeen map[int64]time.Time
}

func NewAgingMonitor(board *Board, alerts AlertSink, tick time.Duration, logger *log.Logger) *AgingMonitor {
	if tick <= 0 {
		tick = defaultAgingTick
	}
	if alerts == nil {
		alerts = NopAlertSink{}
	}

	return &AgingMonitor{
		board:     board,
		alerts:    alerts,
		tick:      tick,
		maxAge:    policies.AcceptedTicketMaxAge,
		logger:    logger,
		now:       time.Now,
		firstSeen: map[int64]time.Time{},
	}
}

func (m *AgingMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(m.now())
		}
	}
}

// Track records when a ticket entered the accepted list.
func (m *AgingMonitor) Track(ticketID int64, acceptedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.firstSeen[ticketID] = acceptedAt
}

// Forget drops tracking after a ticket leaves the accepted list.
func (m *AgingMonitor) Forget(ticketID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.firstSeen, ticketID)
}

// Sweep checks every accepted ticket's age and prunes entries for
// tickets no longer held.
func (m *AgingMonitor) Sweep(now time.Time) {
	acceptedIDs := m.board.AcceptedIDs()
	held := make(map[int64]struct{}, len(acceptedIDs))
	for _, id := range acceptedIDs {
		held[id] = struct{}{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.firstSeen {
		if _, ok := held[id]; !ok {
			delete(m.firstSeen, id)
		}
	}

	for _, id := range acceptedIDs {
		seen, tracked := m.firstSeen[id]
		if !tracked {
			m.firstSeen[id] = now
			continue
		}

		if now.Sub(seen) <= m.maxAge {
			continue
		}

		m.alerts.Notify(fmt.Sprintf("Ticket #%d has been accepted for over an hour", id))
		m.logf("accepted ticket overdue ticket_id=%d age_seconds=%d", id, int64(now.Sub(seen).Seconds()))
		m.firstSeen[id] = now.Add(-(m.maxAge - time.Second))
	}
}

func (m *AgingMonitor) logf(format string, args ...any) {
	if m.logger == nil {
		return
	}
	m.logger.Printf(format, args...)
}
