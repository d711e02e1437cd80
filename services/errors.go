package services

import "errors"

// Error taxonomy shared by the services. The transport layer maps each
// kind to a status code; the underlying cause stays in the logs.
var (
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal error")
)
