package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"postmatch/contexts/matchday/voting-engine/application"
	"postmatch/contexts/matchday/voting-engine/domain/entities"
	domainerrors "postmatch/contexts/matchday/voting-engine/domain/errors"
	"postmatch/contexts/matchday/voting-engine/ports"
)

// SubmitBallotCommand is the write-model input for one ballot submission.
// Email and AuthUserID come from the identity collaborator; the core never
// performs the authentication handshake itself.
type SubmitBallotCommand struct {
	MatchID    string
	Email      string
	AuthUserID string
	Ballot     entities.Ballot
}

// SubmitBallotResult reports the persisted session, the resolved voter, and
// whether this submission created the voter row.
type SubmitBallotResult struct {
	SessionID    string
	Voter        entities.Voter
	VoterCreated bool
}

// VoterResolution is the tagged outcome of resolve-or-create: Created is true
// only when this call inserted the row. A concurrent duplicate create
// converges on the winner row with Created false.
type VoterResolution struct {
	Voter   entities.Voter
	Created bool
}

// BallotUseCase orchestrates ballot submission: voter resolution against the
// allow-list, window gating, shape validation, roster eligibility, scoring,
// and the atomic six-record insert.
type BallotUseCase struct {
	Votes    ports.VoteRepository
	Sessions ports.SessionRepository
	Matches  ports.MatchRepository
	Players  ports.PlayerRepository
	Voters   ports.VoterRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// ResolveVoter maps an authenticated email to its voter row, creating it on
// first contact when an active allow-list entry exists. The duplicate-create
// race is resolved by a single re-read, never by the caller retrying.
func (uc BallotUseCase) ResolveVoter(ctx context.Context, email string, authUserID string) (VoterResolution, error) {
	logger := application.ResolveLogger(uc.Logger)
	email = normalizeEmail(email)
	if email == "" {
		return VoterResolution{}, domainerrors.ErrInvalidSubmission
	}

	if voter, found, err := uc.Voters.GetVoterByEmail(ctx, email); err != nil {
		return VoterResolution{}, err
	} else if found {
		return VoterResolution{Voter: voter}, nil
	}

	allowed, found, err := uc.Voters.GetActiveAllowedVoter(ctx, email)
	if err != nil {
		return VoterResolution{}, err
	}
	if !found {
		logger.Warn("voter resolution rejected",
			"event", "voting_voter_not_allowed",
			"module", "matchday/voting-engine",
			"layer", "application",
			"email", email,
		)
		return VoterResolution{}, domainerrors.ErrNotAuthorized
	}

	voterID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return VoterResolution{}, err
	}
	voter := entities.Voter{
		VoterID:        voterID,
		AuthUserID:     strings.TrimSpace(authUserID),
		Email:          email,
		AllowedVoterID: allowed.AllowedVoterID,
		CreatedAt:      uc.now(),
	}
	if err := uc.Voters.CreateVoter(ctx, voter); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateVoter) {
			// Lost the first-write race; the winner row is authoritative.
			existing, found, readErr := uc.Voters.GetVoterByEmail(ctx, email)
			if readErr != nil {
				return VoterResolution{}, readErr
			}
			if !found {
				return VoterResolution{}, err
			}
			return VoterResolution{Voter: existing}, nil
		}
		return VoterResolution{}, err
	}

	logger.Info("voter created",
		"event", "voting_voter_created",
		"module", "matchday/voting-engine",
		"layer", "application",
		"voter_id", voter.VoterID,
		"email", email,
	)
	return VoterResolution{Voter: voter, Created: true}, nil
}

// SubmitBallot validates and persists one ballot. The six scored records are
// written as a single atomic insert; a (session, voter) uniqueness conflict
// surfaces as ErrAlreadyVoted and leaves existing records untouched.
func (uc BallotUseCase) SubmitBallot(ctx context.Context, cmd SubmitBallotCommand) (SubmitBallotResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	matchID := strings.TrimSpace(cmd.MatchID)
	if matchID == "" || normalizeEmail(cmd.Email) == "" {
		return SubmitBallotResult{}, domainerrors.ErrInvalidSubmission
	}

	resolution, err := uc.ResolveVoter(ctx, cmd.Email, cmd.AuthUserID)
	if err != nil {
		return SubmitBallotResult{}, err
	}

	if _, err := uc.Matches.GetMatch(ctx, matchID); err != nil {
		return SubmitBallotResult{}, err
	}

	session, found, err := uc.Sessions.GetSessionByMatch(ctx, matchID)
	if err != nil {
		return SubmitBallotResult{}, err
	}
	now := uc.now()
	state := entities.StateNoSession
	if found {
		state = entities.WindowState(&session, now)
	}
	if state != entities.StateOpen {
		logger.Warn("ballot rejected outside open window",
			"event", "voting_ballot_window_closed",
			"module", "matchday/voting-engine",
			"layer", "application",
			"match_id", matchID,
			"window_state", string(state),
		)
		return SubmitBallotResult{}, domainerrors.ErrSessionNotOpen
	}

	if voted, err := uc.Votes.HasVoted(ctx, session.SessionID, resolution.Voter.VoterID); err != nil {
		return SubmitBallotResult{}, err
	} else if voted {
		return SubmitBallotResult{}, domainerrors.ErrAlreadyVoted
	}

	if err := cmd.Ballot.Validate(); err != nil {
		return SubmitBallotResult{}, err
	}
	if err := uc.checkRosterEligibility(ctx, cmd.Ballot); err != nil {
		return SubmitBallotResult{}, err
	}

	records := cmd.Ballot.Score(session.SessionID, resolution.Voter.VoterID, now)
	for i := range records {
		voteID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return SubmitBallotResult{}, err
		}
		records[i].VoteID = voteID
	}
	if err := uc.Votes.InsertBallot(ctx, records); err != nil {
		return SubmitBallotResult{}, err
	}

	logger.Info("ballot submitted",
		"event", "voting_ballot_submitted",
		"module", "matchday/voting-engine",
		"layer", "application",
		"match_id", matchID,
		"session_id", session.SessionID,
		"voter_id", resolution.Voter.VoterID,
		"voter_created", resolution.Created,
	)
	return SubmitBallotResult{
		SessionID:    session.SessionID,
		Voter:        resolution.Voter,
		VoterCreated: resolution.Created,
	}, nil
}

// checkRosterEligibility requires every selection to be a currently active
// player, independently of whatever roster the client rendered.
func (uc BallotUseCase) checkRosterEligibility(ctx context.Context, ballot entities.Ballot) error {
	roster, err := uc.Players.ListActivePlayers(ctx)
	if err != nil {
		return err
	}
	active := make(map[string]struct{}, len(roster))
	for _, player := range roster {
		active[player.PlayerID] = struct{}{}
	}
	for _, id := range ballot.PlayerIDs() {
		if _, ok := active[id]; !ok {
			return domainerrors.ErrPlayerNotEligible
		}
	}
	return nil
}

func (uc BallotUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
