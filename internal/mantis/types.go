package mantis

import "encoding/json"

// Project is a MantisHub project.
type Project struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category is an issue category within a project.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ObjectRef is the Mantis {id, name} reference shape used for status,
// category, project and handler fields.
type ObjectRef struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Note is a free-text note attached to an issue.
type Note struct {
	Text string `json:"text"`
}

// Issue is the canonical issue shape this adapter hands to callers. Both the
// enveloped ({"issue": {...}} / {"issues": [...]}) and flat wire shapes
// normalize into it.
type Issue struct {
	ID          int       `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Status      ObjectRef `json:"status"`
	Category    ObjectRef `json:"category"`
	Project     ObjectRef `json:"project"`
	Notes       []Note    `json:"notes"`
}

// CreateIssueRequest is the body for POST /api/rest/issues.
type CreateIssueRequest struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Project     ObjectRef `json:"project"`
	Category    ObjectRef `json:"category"`
}

// IssuePatch is a partial update applied via PATCH /api/rest/issues/{id}.
type IssuePatch struct {
	Status *ObjectRef `json:"status,omitempty"`
	Note   string     `json:"note,omitempty"`
}

// issueEnvelope tolerates the three shapes Mantis responds with: a single
// nested issue, a nested issue list, or the issue fields at the top level.
type issueEnvelope struct {
	Issue  *Issue  `json:"issue"`
	Issues []Issue `json:"issues"`
}

// unmarshalIssue decodes raw JSON into the canonical Issue regardless of
// which envelope the server used.
func unmarshalIssue(raw []byte) (*Issue, error) {
	var env issueEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if env.Issue != nil {
		return env.Issue, nil
	}
	if len(env.Issues) > 0 {
		return &env.Issues[0], nil
	}

	var flat Issue
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	return &flat, nil
}
