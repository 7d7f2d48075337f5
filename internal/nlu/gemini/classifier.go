package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"appliance-support-bot/internal/nlu"
	pkgGemini "appliance-support-bot/pkg/gemini"
)

// Classify determines user intent from a message plus session context.
func (s *Service) Classify(ctx context.Context, message string, rc nlu.RouteContext) (nlu.RouteResult, error) {
	clarified := "No"
	if rc.ClarificationAsked {
		clarified = "Yes"
	}
	prompt := fmt.Sprintf(PromptClassify, rc.LastProblem, clarified, rc.State, rc.OpenTicketIDs, message)

	resp, err := s.llm.GenerateContent(ctx, pkgGemini.GenerateRequest{
		Contents: []pkgGemini.Content{
			{Role: "user", Parts: []pkgGemini.Part{{Text: prompt}}},
		},
		GenerationConfig: &pkgGemini.GenerationConfig{Temperature: ClassifyTemperature},
	})
	if err != nil {
		return nlu.RouteResult{}, fmt.Errorf("%s: LLM call failed: %w", LogPrefixClassify, err)
	}

	text := stripCodeFence(resp.Text())
	if text == "" {
		return nlu.RouteResult{}, fmt.Errorf("%s: empty LLM response", LogPrefixClassify)
	}

	var result nlu.RouteResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		s.l.Warnf(ctx, "%s: failed to parse JSON: %v", LogPrefixClassify, err)
		return nlu.RouteResult{}, fmt.Errorf("%s: unparseable LLM response: %w", LogPrefixClassify, err)
	}

	s.l.Infof(ctx, "%s: classified as %s", LogPrefixClassify, result.Action)
	return result, nil
}
