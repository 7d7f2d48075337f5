package router

import (
	"context"

	"appliance-support-bot/internal/nlu"
	pkgLog "appliance-support-bot/pkg/log"
)

// Router is the interface for intent routing.
type Router interface {
	Route(ctx context.Context, message string, rc nlu.RouteContext) Output
}

// IntentRouter classifies user intent via the external classifier and
// validates its output against the fixed action vocabulary.
type IntentRouter struct {
	classifier nlu.Classifier
	l          pkgLog.Logger
}

var _ Router = (*IntentRouter)(nil)

// New creates a new IntentRouter.
func New(classifier nlu.Classifier, l pkgLog.Logger) *IntentRouter {
	return &IntentRouter{
		classifier: classifier,
		l:          l,
	}
}
