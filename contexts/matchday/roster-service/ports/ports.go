package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Match struct {
	MatchID   string
	Date      time.Time
	Rival     string
	CreatedAt time.Time
}

// VoteSession mirrors the voting-engine session: boundaries stay nil until
// the window is scheduled, and are never rewritten afterwards.
type VoteSession struct {
	SessionID string
	MatchID   string
	OpensAt   *time.Time
	ClosesAt  *time.Time
	CreatedAt time.Time
}

type MatchWithSession struct {
	Match   Match
	Session VoteSession
}

type Player struct {
	PlayerID  string
	Name      string
	Dorsal    *int
	Active    bool
	CreatedAt time.Time
}

type AllowedVoter struct {
	AllowedVoterID string
	PlayerName     string
	Email          string
	Active         bool
	CreatedAt      time.Time
}

// Repository persists the administrative records. CreateMatch writes the
// match and its unscheduled session together; ScheduleSession sets the window
// boundaries exactly once and returns ErrAlreadyScheduled on any later
// attempt; CreateAllowedVoter returns ErrDuplicateEmail on a taken email.
type Repository interface {
	CreateMatch(ctx context.Context, match Match, session VoteSession) (MatchWithSession, error)
	ScheduleSession(ctx context.Context, matchID string, opensAt time.Time, closesAt time.Time) (VoteSession, error)
	ListMatches(ctx context.Context) ([]MatchWithSession, error)
	CreatePlayer(ctx context.Context, player Player) (Player, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	CreateAllowedVoter(ctx context.Context, allowed AllowedVoter) (AllowedVoter, error)
	ListAllowedVoters(ctx context.Context) ([]AllowedVoter, error)
}
