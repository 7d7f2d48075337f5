package gemini

import (
	"context"
	"fmt"
	"strings"

	pkgGemini "appliance-support-bot/pkg/gemini"
)

// Troubleshoot produces troubleshooting advice for a problem description.
// An empty result means the problem needs professional escalation.
func (s *Service) Troubleshoot(ctx context.Context, problem string, clarificationMode bool) (string, error) {
	note := ""
	if clarificationMode {
		note = PromptTroubleshootClarified
	}
	prompt := fmt.Sprintf(PromptTroubleshoot, problem, note)

	resp, err := s.llm.GenerateContent(ctx, pkgGemini.GenerateRequest{
		Contents: []pkgGemini.Content{
			{Role: "user", Parts: []pkgGemini.Part{{Text: prompt}}},
		},
		GenerationConfig: &pkgGemini.GenerationConfig{Temperature: TroubleshootTemperature},
	})
	if err != nil {
		return "", fmt.Errorf("%s: LLM call failed: %w", LogPrefixTroubleshoot, err)
	}

	text := strings.TrimSpace(resp.Text())
	if strings.Contains(text, ReplyEscalate) {
		return "", nil
	}
	return text, nil
}
