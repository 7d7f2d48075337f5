package router

// Log prefixes
const (
	LogPrefixRoute = "internal.router.Route"
)

// FallbackAction is applied whenever the classifier response is missing,
// unparseable, or outside the vocabulary. It is the single system-wide
// fallback policy; call sites must not substitute their own.
const FallbackAction = ActionClarify
