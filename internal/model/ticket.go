package model

// LocalTicket is the cached subset of a remote ticket kept per user for fast
// status display. Status and category may be stale until the next reconcile.
type LocalTicket struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// Local ticket status vocabulary mirrors the remote tracker's names.
const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"
)
