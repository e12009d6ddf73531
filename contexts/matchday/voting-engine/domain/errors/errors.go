package errors

import "errors"

var (
	ErrNotAuthorized                  = errors.New("email is not on the active allow-list")
	ErrIncompleteOrDuplicateSelection = errors.New("ballot must select six distinct players")
	ErrPlayerNotEligible              = errors.New("ballot references an inactive or unknown player")
	ErrAlreadyVoted                   = errors.New("ballot already submitted for this session")
	ErrSessionNotOpen                 = errors.New("voting session is not open")
	ErrMatchNotFound                  = errors.New("match not found")
	ErrDuplicateVoter                 = errors.New("voter already exists for this email")
	ErrInvalidSubmission              = errors.New("invalid ballot submission input")
)
