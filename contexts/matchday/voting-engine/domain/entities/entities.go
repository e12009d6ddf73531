package entities

import "time"

// Player is a squad member eligible to appear on ballots while active.
// Deactivating a player removes them from future ballots only; historical
// vote records keep referencing them.
type Player struct {
	PlayerID  string
	Name      string
	Dorsal    *int
	Active    bool
	CreatedAt time.Time
}

// Match is one fixture. Each match owns at most one vote session.
type Match struct {
	MatchID   string
	Date      time.Time
	Rival     string
	CreatedAt time.Time
}

// VoteSession is the time-boxed voting period attached to one match.
// Both boundaries are optional: a session created without them exists but
// never opens until an administrator schedules the window. Boundaries are
// immutable once set.
type VoteSession struct {
	SessionID string
	MatchID   string
	OpensAt   *time.Time
	ClosesAt  *time.Time
	CreatedAt time.Time
}

// Voter is one authenticated identity allowed to vote. Created lazily on the
// first ballot submission; at most one voter exists per email.
type Voter struct {
	VoterID        string
	AuthUserID     string
	Email          string
	AllowedVoterID string
	CreatedAt      time.Time
}

// AllowedVoter is one allow-list entry. Only emails with an active entry may
// become voters.
type AllowedVoter struct {
	AllowedVoterID string
	PlayerName     string
	Email          string
	Active         bool
	CreatedAt      time.Time
}

type VoteCategory string

const (
	CategoryBest  VoteCategory = "best"
	CategoryWorst VoteCategory = "worst"
)

// VoteRecord is one immutable scored fact. A submitted ballot produces exactly
// six records per (session, voter): three best (+3,+2,+1) and three worst
// (-3,-2,-1), each for a distinct player.
type VoteRecord struct {
	VoteID    string
	SessionID string
	VoterID   string
	PlayerID  string
	Category  VoteCategory
	Points    int
	CreatedAt time.Time
}
