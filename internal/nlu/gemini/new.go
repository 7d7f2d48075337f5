package gemini

import (
	"strings"

	"appliance-support-bot/internal/nlu"
	pkgGemini "appliance-support-bot/pkg/gemini"
	pkgLog "appliance-support-bot/pkg/log"
)

// Service implements the NLU interfaces on top of the Gemini API.
type Service struct {
	llm *pkgGemini.Client
	l   pkgLog.Logger
}

var (
	_ nlu.Classifier     = (*Service)(nil)
	_ nlu.FieldExtractor = (*Service)(nil)
	_ nlu.TicketResolver = (*Service)(nil)
	_ nlu.Troubleshooter = (*Service)(nil)
)

// New creates a Gemini-backed NLU service.
func New(llm *pkgGemini.Client, l pkgLog.Logger) *Service {
	return &Service{
		llm: llm,
		l:   l,
	}
}

// stripCodeFence removes the markdown code fences models sometimes wrap JSON in.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
