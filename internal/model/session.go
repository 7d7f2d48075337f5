package model

import "time"

// SessionState describes where the conversation stands. It is informational:
// control flow is driven by the routed action plus the action stack, not by a
// strict FSM guard on this field.
type SessionState string

const (
	StateAwaitingProblem       SessionState = "awaiting_problem"
	StateAwaitingClarification SessionState = "awaiting_clarification"
	StateAwaitingKBConfirm     SessionState = "awaiting_kb_confirm"
)

// ActionTag identifies which yes/no question is pending in a session.
type ActionTag string

const (
	ActionAskedKB     ActionTag = "asked_kb"
	ActionAskedTicket ActionTag = "asked_ticket"
)

// HistoryEntry is one conversation turn, kept for audit only.
type HistoryEntry struct {
	Role string `json:"role"` // "user" or "bot"
	Text string `json:"text"`
}

// Session is the per-user conversation record.
type Session struct {
	UserID             string         `json:"user_id"`
	State              SessionState   `json:"state"`
	Problem            string         `json:"problem"`
	ClarificationAsked bool           `json:"clarification_asked"`
	KBSolution         string         `json:"kb_solution"`
	ActionStack        []ActionTag    `json:"action_stack"`
	Tickets            []int          `json:"tickets"`
	History            []HistoryEntry `json:"history"`
	LastActive         time.Time      `json:"last_active"`
}

// NewSession returns the default record for a user on first contact or reset.
func NewSession(userID string) *Session {
	return &Session{
		UserID:      userID,
		State:       StateAwaitingProblem,
		ActionStack: []ActionTag{},
		Tickets:     []int{},
		History:     []HistoryEntry{},
		LastActive:  time.Now(),
	}
}

// PushAction records a pending yes/no question. The stack is clamped at depth
// one: pushing onto a non-empty stack replaces the top rather than growing it.
func (s *Session) PushAction(tag ActionTag) {
	s.ActionStack = []ActionTag{tag}
}

// PopAction removes and returns the pending tag, or "" when none is pending.
func (s *Session) PopAction() ActionTag {
	if len(s.ActionStack) == 0 {
		return ""
	}
	tag := s.ActionStack[len(s.ActionStack)-1]
	s.ActionStack = s.ActionStack[:len(s.ActionStack)-1]
	return tag
}

// PeekAction returns the pending tag without removing it, or "".
func (s *Session) PeekAction() ActionTag {
	if len(s.ActionStack) == 0 {
		return ""
	}
	return s.ActionStack[len(s.ActionStack)-1]
}

// ClearActions drops any pending confirmation.
func (s *Session) ClearActions() {
	s.ActionStack = s.ActionStack[:0]
}

// AddTicket records a ticket id on the session, ignoring duplicates.
func (s *Session) AddTicket(id int) {
	for _, t := range s.Tickets {
		if t == id {
			return
		}
	}
	s.Tickets = append(s.Tickets, id)
}

// RemoveTicket drops a ticket id from the session if present.
func (s *Session) RemoveTicket(id int) {
	for i, t := range s.Tickets {
		if t == id {
			s.Tickets = append(s.Tickets[:i], s.Tickets[i+1:]...)
			return
		}
	}
}

// LogTurn appends a conversation turn to the audit history.
func (s *Session) LogTurn(role, text string) {
	s.History = append(s.History, HistoryEntry{Role: role, Text: text})
}
