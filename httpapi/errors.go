package httpapi

import "errors"

var (
	// ErrBadRequest marks a request with missing or malformed parameters.
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound marks a request for an analysis that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSuggestLimit is returned for a non-positive default suggest limit.
	ErrInvalidSuggestLimit = errors.New("suggest limit must be positive")

	// ErrProviderRequired is returned when NewRouter gets no index provider.
	ErrProviderRequired = errors.New("index provider required")
)
