package router

// Action is one of the fixed classification outcomes routing a message to a
// handler in the dialogue controller.
type Action string

const (
	ActionHelp         Action = "help"
	ActionGreeting     Action = "greeting"
	ActionClarify      Action = "clarify"
	ActionKBAnswer     Action = "kb_answer"
	ActionCreateTicket Action = "create_ticket"
	ActionTicketStatus Action = "ticket_status"
	ActionCloseTicket  Action = "close_ticket"
	ActionDeleteTicket Action = "delete_ticket"
	ActionOutOfScope   Action = "out_of_scope"
	ActionSecurity     Action = "security"
)

// Output is the routed action plus an optional free-text fragment extracted
// from the message (e.g. a ticket reference).
type Output struct {
	Action Action
	Info   string
}

// vocabulary is the set of actions a classifier response is validated against.
var vocabulary = map[Action]bool{
	ActionHelp:         true,
	ActionGreeting:     true,
	ActionClarify:      true,
	ActionKBAnswer:     true,
	ActionCreateTicket: true,
	ActionTicketStatus: true,
	ActionCloseTicket:  true,
	ActionDeleteTicket: true,
	ActionOutOfScope:   true,
	ActionSecurity:     true,
}

// Valid reports whether a is in the fixed action vocabulary.
func Valid(a Action) bool {
	return vocabulary[a]
}
