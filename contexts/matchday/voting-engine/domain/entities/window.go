package entities

import "time"

// SessionState is the temporal state of a match's voting window.
type SessionState string

const (
	// StateNoSession means the match has no vote session at all.
	StateNoSession SessionState = "no_session"
	// StateUnscheduled means a session exists but at least one boundary is
	// missing. For gating purposes it behaves like no session (never open),
	// but it is reported distinctly so callers can tell "not configured"
	// from "not scheduled yet".
	StateUnscheduled SessionState = "unscheduled"
	StatePending     SessionState = "pending"
	StateOpen        SessionState = "open"
	StateClosed      SessionState = "closed"
)

// WindowState derives the session state from its boundaries and the supplied
// instant. Pure function: the caller provides now. Both boundaries are
// inclusive, so opensAt == closesAt == now is Open.
func WindowState(session *VoteSession, now time.Time) SessionState {
	if session == nil {
		return StateNoSession
	}
	if session.OpensAt == nil || session.ClosesAt == nil {
		return StateUnscheduled
	}
	switch {
	case now.Before(*session.OpensAt):
		return StatePending
	case now.After(*session.ClosesAt):
		return StateClosed
	default:
		return StateOpen
	}
}
