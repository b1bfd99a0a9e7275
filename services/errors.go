package services

import "errors"

// Sentinel errors shared by the store and the TMDB client. Handlers match
// them with errors.Is and translate them into HTTP status codes.
var (
	// ErrNotFound is returned when no movie has the requested id (404).
	ErrNotFound = errors.New("movie not found")

	// ErrConflict is returned when a movie with the same title is already
	// on the list (409).
	ErrConflict = errors.New("movie already exists")

	// ErrExternalService is returned when TMDB is unreachable or answers
	// with a non-success status (502).
	ErrExternalService = errors.New("external movie service failed")
)
