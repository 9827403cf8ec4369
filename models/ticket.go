package models

// TicketStatus represents the current state of a support ticket.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusResolved TicketStatus = "resolved"
)

// Ticket is a support request scoped to the user who filed it.
type Ticket struct {
	ID        string       `json:"id"`
	Subject   string       `json:"subject"`
	Message   string       `json:"message"`
	Status    TicketStatus `json:"status"`
	CreatedAt string       `json:"created_at"`
}
