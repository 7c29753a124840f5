package use_cases

import (
	"fmt"
	"strings"

	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
)

func buildTicketCreatedMessage(ticket entities.Ticket) string {
	var b strings.Builder
	b.WriteString("🎫 New ticket\n\n")
	writeTicketSummary(&b, ticket)

	return b.String()
}

func buildTicketCompletedMessage(ticket entities.Ticket) string {
	var b strings.Builder
	b.WriteString("✅ Ticket completed!\n\n")
	writeTicketSummary(&b, ticket)

	return b.String()
}

func buildTicketReportedMessage(ticket entities.Ticket, reason valueobjects.ReportReason) string {
	var b strings.Builder
	b.WriteString("⚠️ ERROR REPORTED\n\n")
	writeTicketSummary(&b, ticket)
	fmt.Fprintf(&b, "Reason: %s\n", reason.Description())

	return b.String()
}

func writeTicketSummary(b *strings.Builder, ticket entities.Ticket) {
	fmt.Fprintf(b, "Ticket: %s\n", ticket.DisplayID())
	fmt.Fprintf(b, "Name: %s\n", ticket.FacebookName)
	fmt.Fprintf(b, "Game: %s\n", ticket.Game)
	if ticket.GameID != "" {
		fmt.Fprintf(b, "Game ID: %s\n", ticket.GameID)
	}
	fmt.Fprintf(b, "Amount: %s %s\n", valueobjects.FormatAmountMinor(ticket.AmountMinor), ticket.TokenType)
}
