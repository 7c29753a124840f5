package fulfiller

import (
	"testing"

	"ticketpay/internal/application/dto"
)

func TestBoardListsStayDisjoint(t *testing.T) {
	board := NewBoard()

	if !board.ApplySnapshot(1, []dto.TicketResource{
		ticketFixture(1, "validated", "10.00"),
		ticketFixture(2, "validated", "20.00"),
		ticketFixture(3, "validated", "30.00"),
	}, nil) {
		t.Fatal("expected first snapshot to apply")
	}

	if !board.Claim(ticketFixture(2, "processing", "20.00")) {
		t.Fatal("expected claim to move ticket 2")
	}
	if !board.Report(ticketFixture(2, "error", "20.00")) {
		t.Fatal("expected report to move ticket 2")
	}

	// The next poll sees the reported ticket with its error status. It
	// must land only in the reported list, never back in incoming.
	if !board.ApplySnapshot(2, []dto.TicketResource{
		ticketFixture(1, "validated", "10.00"),
		ticketFixture(2, "validated", "20.00"),
		ticketFixture(4, "validated", "40.00"),
	}, []dto.TicketResource{
		ticketFixture(2, "error", "20.00"),
	}) {
		t.Fatal("expected second snapshot to apply")
	}

	seen := map[int64]int{}
	for _, ticket := range board.Incoming() {
		seen[ticket.ID]++
	}
	for _, ticket := range board.Accepted() {
		seen[ticket.ID]++
	}
	for _, ticket := range board.Reported() {
		seen[ticket.ID]++
	}

	for id, count := range seen {
		if count != 1 {
			t.Fatalf("ticket %d appears in %d lists", id, count)
		}
	}
	if len(board.Reported()) != 1 || board.Reported()[0].ID != 2 {
		t.Fatalf("expected ticket 2 in reported, got %+v", board.Reported())
	}
}

func TestBoardSnapshotRefreshesReported(t *testing.T) {
	board := NewBoard()

	board.ApplySnapshot(1, nil, []dto.TicketResource{
		ticketFixture(5, "error", "10.00"),
	})
	if reported := board.Reported(); len(reported) != 1 || reported[0].ID != 5 {
		t.Fatalf("expected ticket 5 in reported, got %+v", reported)
	}

	// A resolved ticket disappears from the error fetch and with it
	// from the reported list.
	board.ApplySnapshot(2, nil, []dto.TicketResource{
		ticketFixture(6, "error", "20.00"),
	})
	reported := board.Reported()
	if len(reported) != 1 || reported[0].ID != 6 {
		t.Fatalf("expected wholesale reported replacement, got %+v", reported)
	}
}

func TestBoardSnapshotKeepsAcceptedOutOfBothLists(t *testing.T) {
	board := NewBoard()
	board.SetAccepted([]dto.TicketResource{ticketFixture(3, "processing", "30.00")})

	board.ApplySnapshot(1, []dto.TicketResource{
		ticketFixture(3, "validated", "30.00"),
		ticketFixture(4, "validated", "40.00"),
	}, []dto.TicketResource{
		ticketFixture(3, "error", "30.00"),
	})

	if incoming := board.Incoming(); len(incoming) != 1 || incoming[0].ID != 4 {
		t.Fatalf("expected accepted ticket kept out of incoming, got %+v", incoming)
	}
	if reported := board.Reported(); len(reported) != 0 {
		t.Fatalf("expected accepted ticket kept out of reported, got %+v", reported)
	}
}

func TestBoardRejectsStaleSnapshot(t *testing.T) {
	board := NewBoard()

	if !board.ApplySnapshot(5, []dto.TicketResource{ticketFixture(1, "validated", "10.00")}, nil) {
		t.Fatal("expected snapshot 5 to apply")
	}
	if board.ApplySnapshot(4, []dto.TicketResource{ticketFixture(9, "validated", "90.00")}, nil) {
		t.Fatal("expected snapshot 4 to be rejected")
	}
	if board.ApplySnapshot(5, nil, nil) {
		t.Fatal("expected repeated sequence to be rejected")
	}

	incoming := board.Incoming()
	if len(incoming) != 1 || incoming[0].ID != 1 {
		t.Fatalf("expected stale snapshot to leave list untouched, got %+v", incoming)
	}
}

func TestBoardClaimRequiresIncomingTicket(t *testing.T) {
	board := NewBoard()

	if board.Claim(ticketFixture(7, "processing", "10.00")) {
		t.Fatal("expected claim of unknown ticket to fail")
	}
	if board.Complete(7) {
		t.Fatal("expected complete of unknown ticket to fail")
	}
	if board.Report(ticketFixture(7, "error", "10.00")) {
		t.Fatal("expected report of unknown ticket to fail")
	}
}

func TestBoardSortByAmount(t *testing.T) {
	board := NewBoard()
	board.SetSort(SortByAmount, true)

	board.ApplySnapshot(1, []dto.TicketResource{
		ticketFixture(1, "validated", "100.00"),
		ticketFixture(2, "validated", "9.99"),
		ticketFixture(3, "validated", "25.50"),
	}, nil)

	incoming := board.Incoming()
	want := []int64{2, 3, 1}
	for i, id := range want {
		if incoming[i].ID != id {
			t.Fatalf("position %d: got ticket %d, want %d", i, incoming[i].ID, id)
		}
	}

	board.SetSort(SortByAmount, false)
	incoming = board.Incoming()
	want = []int64{1, 3, 2}
	for i, id := range want {
		if incoming[i].ID != id {
			t.Fatalf("descending position %d: got ticket %d, want %d", i, incoming[i].ID, id)
		}
	}
}

func TestBoardSetAcceptedRemovesFromIncoming(t *testing.T) {
	board := NewBoard()
	board.ApplySnapshot(1, []dto.TicketResource{
		ticketFixture(1, "validated", "10.00"),
		ticketFixture(2, "validated", "20.00"),
	}, nil)

	board.SetAccepted([]dto.TicketResource{ticketFixture(2, "processing", "20.00")})

	if board.IncomingCount() != 1 {
		t.Fatalf("expected 1 incoming ticket, got %d", board.IncomingCount())
	}
	if board.AcceptedCount() != 1 {
		t.Fatalf("expected 1 accepted ticket, got %d", board.AcceptedCount())
	}
}
