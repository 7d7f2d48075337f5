package ticket

import "errors"

// Domain-specific errors for the ticket package.
var (
	ErrNoProjects      = errors.New("no projects available in the tracker")
	ErrNoCategories    = errors.New("no category available in the fallback project")
	ErrUnresolvedMatch = errors.New("could not match extracted project/category against the tracker")
)
