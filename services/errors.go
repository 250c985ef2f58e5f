package services

import "errors"

// Error taxonomy for lifecycle operations. Controllers map these to HTTP
// statuses with errors.Is; messages wrapped around them reach the caller.
var (
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrInvalidState  = errors.New("invalid state")
	ErrConflict      = errors.New("conflict")
	ErrInvalidClient = errors.New("invalid client")
)
