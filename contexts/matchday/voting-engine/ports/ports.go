package ports

import (
	"context"
	"time"

	"postmatch/contexts/matchday/voting-engine/domain/entities"
)

// VoteRepository persists and reads immutable vote records. InsertBallot is
// all-or-nothing: either all six records land or none do, and a uniqueness
// conflict on (session, voter) surfaces as domainerrors.ErrAlreadyVoted.
type VoteRepository interface {
	InsertBallot(ctx context.Context, records []entities.VoteRecord) error
	HasVoted(ctx context.Context, sessionID string, voterID string) (bool, error)
	ListVotesBySession(ctx context.Context, sessionID string) ([]entities.VoteRecord, error)
	ListVotes(ctx context.Context) ([]entities.VoteRecord, error)
}

type SessionRepository interface {
	GetSessionByMatch(ctx context.Context, matchID string) (entities.VoteSession, bool, error)
	ListSessions(ctx context.Context) ([]entities.VoteSession, error)
}

type MatchRepository interface {
	GetMatch(ctx context.Context, matchID string) (entities.Match, error)
	// ListMatches returns matches ordered by date descending.
	ListMatches(ctx context.Context) ([]entities.Match, error)
}

type PlayerRepository interface {
	// ListActivePlayers returns the current roster ordered by name ascending.
	ListActivePlayers(ctx context.Context) ([]entities.Player, error)
	ListPlayers(ctx context.Context) ([]entities.Player, error)
}

// VoterRepository resolves and creates voters against the allow-list.
// CreateVoter returns domainerrors.ErrDuplicateVoter when the email already
// has a voter row; callers converge by re-reading.
type VoterRepository interface {
	GetVoterByEmail(ctx context.Context, email string) (entities.Voter, bool, error)
	GetActiveAllowedVoter(ctx context.Context, email string) (entities.AllowedVoter, bool, error)
	CreateVoter(ctx context.Context, voter entities.Voter) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
