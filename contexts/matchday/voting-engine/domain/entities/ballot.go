package entities

import (
	"strings"
	"time"

	domainerrors "postmatch/contexts/matchday/voting-engine/domain/errors"
)

// BallotSlots is one ordered podium of player selections.
type BallotSlots struct {
	First  string
	Second string
	Third  string
}

// Ballot is one voter's full best/worst selection for one session.
type Ballot struct {
	Best  BallotSlots
	Worst BallotSlots
}

// PlayerIDs returns the six selections in scoring order:
// best first..third, then worst first..third.
func (b Ballot) PlayerIDs() [6]string {
	return [6]string{
		strings.TrimSpace(b.Best.First),
		strings.TrimSpace(b.Best.Second),
		strings.TrimSpace(b.Best.Third),
		strings.TrimSpace(b.Worst.First),
		strings.TrimSpace(b.Worst.Second),
		strings.TrimSpace(b.Worst.Third),
	}
}

// Validate checks ballot shape: all six slots filled and pairwise distinct,
// including repeats across the best and worst podiums. This is the only
// shape check; it never touches storage and must run server-side on every
// submission regardless of what the client already verified.
func (b Ballot) Validate() error {
	ids := b.PlayerIDs()
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return domainerrors.ErrIncompleteOrDuplicateSelection
		}
		if _, dup := seen[id]; dup {
			return domainerrors.ErrIncompleteOrDuplicateSelection
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ballotPoints is the fixed slot-to-points mapping.
var ballotPoints = [6]struct {
	category VoteCategory
	points   int
}{
	{CategoryBest, 3},
	{CategoryBest, 2},
	{CategoryBest, 1},
	{CategoryWorst, -3},
	{CategoryWorst, -2},
	{CategoryWorst, -1},
}

// Score maps a validated ballot onto its six vote records. IDs are left blank
// for the caller to assign; CreatedAt is stamped with the supplied instant.
// Callers must Validate first.
func (b Ballot) Score(sessionID string, voterID string, now time.Time) []VoteRecord {
	ids := b.PlayerIDs()
	records := make([]VoteRecord, 0, len(ids))
	for i, playerID := range ids {
		records = append(records, VoteRecord{
			SessionID: strings.TrimSpace(sessionID),
			VoterID:   strings.TrimSpace(voterID),
			PlayerID:  playerID,
			Category:  ballotPoints[i].category,
			Points:    ballotPoints[i].points,
			CreatedAt: now,
		})
	}
	return records
}
