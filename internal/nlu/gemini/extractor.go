package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"appliance-support-bot/internal/mantis"
	"appliance-support-bot/internal/nlu"
	pkgGemini "appliance-support-bot/pkg/gemini"
)

// ExtractTicketFields parses a problem description into ticket fields against
// the live project and category lists. Returns (nil, nil) when the model is
// not confident; callers fall back to the default project/category path.
func (s *Service) ExtractTicketFields(ctx context.Context, problem string, projects []mantis.Project, categoriesByProject map[int][]mantis.Category) (*nlu.TicketFields, error) {
	var projectsText strings.Builder
	for _, p := range projects {
		fmt.Fprintf(&projectsText, "- %s (ID: %d)\n", p.Name, p.ID)
	}

	var categoriesText strings.Builder
	for _, p := range projects {
		fmt.Fprintf(&categoriesText, "%s:\n", p.Name)
		for _, c := range categoriesByProject[p.ID] {
			fmt.Fprintf(&categoriesText, "  - %s\n", c.Name)
		}
	}

	prompt := fmt.Sprintf(PromptExtract, problem, projectsText.String(), categoriesText.String())

	resp, err := s.llm.GenerateContent(ctx, pkgGemini.GenerateRequest{
		Contents: []pkgGemini.Content{
			{Role: "user", Parts: []pkgGemini.Part{{Text: prompt}}},
		},
		GenerationConfig: &pkgGemini.GenerationConfig{Temperature: ExtractTemperature},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: LLM call failed: %w", LogPrefixExtract, err)
	}

	text := stripCodeFence(resp.Text())
	if text == "" || strings.Contains(text, ReplyUncertain) {
		s.l.Infof(ctx, "%s: model uncertain, degrading to default fields", LogPrefixExtract)
		return nil, nil
	}

	var fields nlu.TicketFields
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		s.l.Warnf(ctx, "%s: failed to parse JSON, treating as uncertain: %v", LogPrefixExtract, err)
		return nil, nil
	}

	// The model must have picked one of the live projects; anything else is
	// a hallucination and degrades to the fallback path.
	known := false
	for _, p := range projects {
		if strings.EqualFold(p.Name, fields.ProjectName) {
			known = true
			break
		}
	}
	if !known {
		s.l.Warnf(ctx, "%s: model picked unknown project %q", LogPrefixExtract, fields.ProjectName)
		return nil, nil
	}

	return &fields, nil
}
