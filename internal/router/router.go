package router

import (
	"context"
	"strings"

	"appliance-support-bot/internal/nlu"
)

// Route classifies a message into an action. The literal help commands are
// short-circuited without touching the classifier; everything else goes
// through exactly one classifier call, validated against the vocabulary, with
// FallbackAction applied on any failure. No retries are attempted.
//
// The reset literal and pending yes/no replies never reach the router: the
// dialogue controller intercepts them before routing.
func (r *IntentRouter) Route(ctx context.Context, message string, rc nlu.RouteContext) Output {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "help", "!help":
		return Output{Action: ActionHelp}
	}

	result, err := r.classifier.Classify(ctx, message, rc)
	if err != nil {
		r.l.Warnf(ctx, "%s: classifier failed, falling back to %s: %v", LogPrefixRoute, FallbackAction, err)
		return Output{Action: FallbackAction}
	}

	action := Action(strings.ToLower(strings.TrimSpace(result.Action)))
	if !Valid(action) {
		r.l.Warnf(ctx, "%s: action %q outside vocabulary, falling back to %s", LogPrefixRoute, result.Action, FallbackAction)
		return Output{Action: FallbackAction}
	}

	return Output{Action: action, Info: result.Info}
}
