//go:build !integration

package valueobjects

import "testing"

func TestParseTicketStatus(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		valid  bool
		status TicketStatus
	}{
		{name: "new", raw: "new", valid: true, status: TicketStatusNew},
		{name: "validated", raw: "validated", valid: true, status: TicketStatusValidated},
		{name: "processing", raw: "processing", valid: true, status: TicketStatusProcessing},
		{name: "completed", raw: "completed", valid: true, status: TicketStatusCompleted},
		{name: "error", raw: "error", valid: true, status: TicketStatusError},
		{name: "declined", raw: "declined", valid: true, status: TicketStatusDeclined},
		{name: "cancelled", raw: "cancelled", valid: true, status: TicketStatusCancelled},
		{name: "invalid", raw: "wat", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, appErr := ParseTicketStatus(tc.raw)
			if tc.valid {
				if appErr != nil {
					t.Fatalf("expected no error, got %+v", appErr)
				}
				if status != tc.status {
					t.Fatalf("expected %s, got %s", tc.status, status)
				}
				return
			}

			if appErr == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestTicketStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    TicketStatus
		to      TicketStatus
		allowed bool
	}{
		{name: "new to validated", from: TicketStatusNew, to: TicketStatusValidated, allowed: true},
		{name: "new to declined", from: TicketStatusNew, to: TicketStatusDeclined, allowed: true},
		{name: "new to processing", from: TicketStatusNew, to: TicketStatusProcessing, allowed: false},
		{name: "validated to processing", from: TicketStatusValidated, to: TicketStatusProcessing, allowed: true},
		{name: "validated to completed", from: TicketStatusValidated, to: TicketStatusCompleted, allowed: false},
		{name: "processing to completed", from: TicketStatusProcessing, to: TicketStatusCompleted, allowed: true},
		{name: "processing to error", from: TicketStatusProcessing, to: TicketStatusError, allowed: true},
		{name: "error is terminal", from: TicketStatusError, to: TicketStatusProcessing, allowed: false},
		{name: "completed is terminal", from: TicketStatusCompleted, to: TicketStatusProcessing, allowed: false},
		{name: "declined is terminal", from: TicketStatusDeclined, to: TicketStatusValidated, allowed: false},
		{name: "cancelled is terminal", from: TicketStatusCancelled, to: TicketStatusValidated, allowed: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
				t.Fatalf("expected %v, got %v", tc.allowed, got)
			}
		})
	}
}
