package gemini

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"appliance-support-bot/internal/nlu"
	pkgGemini "appliance-support-bot/pkg/gemini"
)

// PickTicketID resolves a natural-language command to one of the user's open
// tickets. ok is false when no confident match was found.
func (s *Service) PickTicketID(ctx context.Context, command string, open []nlu.OpenTicket) (int, bool, error) {
	var ticketsText strings.Builder
	for _, t := range open {
		fmt.Fprintf(&ticketsText, "ID: %d | Summary: %s | Category: %s | Created: %s\n", t.ID, t.Summary, t.Category, t.CreatedAt)
	}

	prompt := fmt.Sprintf(PromptPickTicket, command, ticketsText.String())

	resp, err := s.llm.GenerateContent(ctx, pkgGemini.GenerateRequest{
		Contents: []pkgGemini.Content{
			{Role: "user", Parts: []pkgGemini.Part{{Text: prompt}}},
		},
		GenerationConfig: &pkgGemini.GenerationConfig{Temperature: PickTicketTemperature},
	})
	if err != nil {
		return 0, false, fmt.Errorf("%s: LLM call failed: %w", LogPrefixPickTicket, err)
	}

	text := stripCodeFence(resp.Text())
	if text == "" || strings.EqualFold(text, ReplyNull) {
		return 0, false, nil
	}

	id, err := strconv.Atoi(text)
	if err != nil {
		s.l.Warnf(ctx, "%s: non-numeric response %q, treating as no match", LogPrefixPickTicket, text)
		return 0, false, nil
	}
	return id, true, nil
}
