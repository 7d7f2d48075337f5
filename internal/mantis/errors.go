package mantis

import "errors"

var (
	ErrUnauthorized = errors.New("invalid or missing mantis API token")
	ErrNotFound     = errors.New("mantis resource not found")
)
