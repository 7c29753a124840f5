package fulfiller

import (
	"testing"
	"time"

	"ticketpay/internal/application/dto"
)

func TestAgingMonitorWarnsOncePerWindow(t *testing.T) {
	alerts := &recordingAlerts{}
	board := NewBoard()
	monitor := NewAgingMonitor(board, alerts, time.Second, nil)

	acceptedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	board.SetAccepted([]dto.TicketResource{ticketFixture(5, "processing", "10.00")})
	monitor.Track(5, acceptedAt)

	// Under an hour: quiet.
	monitor.Sweep(acceptedAt.Add(59 * time.Minute))
	if len(alerts.Messages()) != 0 {
		t.Fatalf("expected no warning under the limit, got %v", alerts.Messages())
	}

	// Just past an hour: one warning.
	monitor.Sweep(acceptedAt.Add(time.Hour + time.Second))
	messages := alerts.Messages()
	if len(messages) != 1 || messages[0] != "Ticket #5 has been accepted for over an hour" {
		t.Fatalf("expected one overdue warning, got %v", messages)
	}

	// The re-armed window keeps the next sweep quiet, then fires again.
	now := acceptedAt.Add(time.Hour + 2*time.Second)
	monitor.Sweep(now)
	if len(alerts.Messages()) != 1 {
		t.Fatalf("expected re-armed window to stay quiet, got %v", alerts.Messages())
	}

	monitor.Sweep(now.Add(2 * time.Second))
	if len(alerts.Messages()) != 2 {
		t.Fatalf("expected second warning after the window, got %v", alerts.Messages())
	}
}

func TestAgingMonitorPrunesDepartedTickets(t *testing.T) {
	alerts := &recordingAlerts{}
	board := NewBoard()
	monitor := NewAgingMonitor(board, alerts, time.Second, nil)

	acceptedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	board.SetAccepted([]dto.TicketResource{ticketFixture(5, "processing", "10.00")})
	monitor.Track(5, acceptedAt)

	board.Complete(5)
	monitor.Sweep(acceptedAt.Add(2 * time.Hour))

	if len(alerts.Messages()) != 0 {
		t.Fatalf("expected no warning for a departed ticket, got %v", alerts.Messages())
	}
}

func TestAgingMonitorTracksUntrackedAcceptedTickets(t *testing.T) {
	alerts := &recordingAlerts{}
	board := NewBoard()
	monitor := NewAgingMonitor(board, alerts, time.Second, nil)

	board.SetAccepted([]dto.TicketResource{ticketFixture(5, "processing", "10.00")})

	// First sweep only starts the clock, no matter the wall time.
	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	monitor.Sweep(start)
	if len(alerts.Messages()) != 0 {
		t.Fatalf("expected first sweep to be quiet, got %v", alerts.Messages())
	}

	monitor.Sweep(start.Add(time.Hour + time.Second))
	if len(alerts.Messages()) != 1 {
		t.Fatalf("expected warning an hour after first sighting, got %v", alerts.Messages())
	}
}
