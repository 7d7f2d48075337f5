package nlu

import (
	"context"

	"appliance-support-bot/internal/mantis"
)

// RouteContext is the session context handed to the classifier alongside the
// message being classified.
type RouteContext struct {
	LastProblem        string
	ClarificationAsked bool
	State              string
	OpenTicketIDs      []int
}

// RouteResult is the raw classifier output. The Intent Router owns validating
// Action against the fixed vocabulary.
type RouteResult struct {
	Action string `json:"action"`
	Info   string `json:"info,omitempty"`
}

// Classifier determines the user's intent from a free-text message.
type Classifier interface {
	Classify(ctx context.Context, message string, rc RouteContext) (RouteResult, error)
}

// TicketFields is the structured output of the field-extraction service.
type TicketFields struct {
	Summary      string `json:"summary"`
	Description  string `json:"description"`
	ProjectName  string `json:"project_name"`
	CategoryName string `json:"category_name"`
}

// FieldExtractor derives ticket fields from a problem description and the
// live project/category lists. A nil result with nil error means the service
// was not confident enough; callers degrade to the default-project path.
type FieldExtractor interface {
	ExtractTicketFields(ctx context.Context, problem string, projects []mantis.Project, categoriesByProject map[int][]mantis.Category) (*TicketFields, error)
}

// OpenTicket is the per-ticket context given to the identifier resolver.
type OpenTicket struct {
	ID        int
	Summary   string
	Category  string
	CreatedAt string
}

// TicketResolver maps a natural-language command onto one of the user's open
// tickets. ok is false when no confident match exists.
type TicketResolver interface {
	PickTicketID(ctx context.Context, command string, open []OpenTicket) (id int, ok bool, err error)
}

// Troubleshooter produces troubleshooting advice for a problem description.
// An empty result with nil error means the problem needs escalation.
type Troubleshooter interface {
	Troubleshoot(ctx context.Context, problem string, clarificationMode bool) (string, error)
}
