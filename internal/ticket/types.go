package ticket

// CreateOutput is the result of a successful creation pipeline run.
type CreateOutput struct {
	TicketID     int
	Category     string
	UsedFallback bool // true when extraction was uncertain and the default project/category was used
}

// StatusEntry is one line of the ticket status digest.
type StatusEntry struct {
	ID       int
	Summary  string
	Status   string
	Category string
	Notes    []string
	Err      string // non-empty when fetching this ticket failed
}
