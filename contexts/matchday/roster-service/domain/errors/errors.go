package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("roster: invalid request")
	ErrMatchNotFound    = errors.New("roster: match not found")
	ErrSessionNotFound  = errors.New("roster: vote session not found")
	ErrAlreadyScheduled = errors.New("roster: vote session already scheduled")
	ErrInvalidWindow    = errors.New("roster: window must open before it closes")
	ErrDuplicateEmail   = errors.New("roster: allowed voter email already registered")
)
