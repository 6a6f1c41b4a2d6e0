package tickets

import (
	"github.com/google/uuid"

	"totem/internal/session"
)

// Placeholder codes carry this prefix so fallback batches stay
// distinguishable from issued tickets in logs and downstream audits.
const PlaceholderPrefix = "MOCK_TICKET"

// Batch is the result of one generation attempt. Either every ticket was
// issued upstream or every ticket is a local placeholder; a batch is never
// mixed.
type Batch struct {
	ID       uuid.UUID        `json:"id"`
	Tickets  []session.Ticket `json:"tickets"`
	Fallback bool             `json:"fallback"`
}

// IssueResponse is the upstream ticket-issuing payload.
type IssueResponse struct {
	TicketCode string `json:"ticket_code"`
}

// ViewedRequest reports which ticket the carousel currently shows.
type ViewedRequest struct {
	Index int `json:"index" binding:"min=0"`
}
