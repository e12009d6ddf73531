package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "postmatch/contexts/matchday/roster-service/domain/errors"
	"postmatch/contexts/matchday/roster-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type CreateMatchInput struct {
	Date  time.Time
	Rival string
}

type ScheduleSessionInput struct {
	OpensAt  time.Time
	ClosesAt time.Time
}

type CreatePlayerInput struct {
	Name   string
	Dorsal *int
	Active bool
}

type CreateAllowedVoterInput struct {
	PlayerName string
	Email      string
	Active     bool
}

// CreateMatch records a fixture and its vote session in one step. The session
// starts without boundaries, the same shape the voting engine reads as an
// unscheduled window.
func (s Service) CreateMatch(ctx context.Context, input CreateMatchInput) (ports.MatchWithSession, error) {
	if input.Date.IsZero() || strings.TrimSpace(input.Rival) == "" {
		return ports.MatchWithSession{}, domainerrors.ErrInvalidRequest
	}
	matchID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.MatchWithSession{}, err
	}
	sessionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.MatchWithSession{}, err
	}
	now := s.now()
	created, err := s.Repo.CreateMatch(ctx,
		ports.Match{
			MatchID:   matchID,
			Date:      input.Date.UTC(),
			Rival:     strings.TrimSpace(input.Rival),
			CreatedAt: now,
		},
		ports.VoteSession{
			SessionID: sessionID,
			MatchID:   matchID,
			CreatedAt: now,
		},
	)
	if err != nil {
		return ports.MatchWithSession{}, err
	}
	resolveLogger(s.Logger).Info("match created",
		"event", "roster_match_created",
		"module", "matchday/roster-service",
		"layer", "application",
		"match_id", created.Match.MatchID,
		"session_id", created.Session.SessionID,
	)
	return created, nil
}

// ScheduleSession sets a session's voting window. Boundaries are immutable:
// once set, every later call fails with ErrAlreadyScheduled.
func (s Service) ScheduleSession(ctx context.Context, matchID string, input ScheduleSessionInput) (ports.VoteSession, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" || input.OpensAt.IsZero() || input.ClosesAt.IsZero() {
		return ports.VoteSession{}, domainerrors.ErrInvalidRequest
	}
	if !input.OpensAt.Before(input.ClosesAt) {
		return ports.VoteSession{}, domainerrors.ErrInvalidWindow
	}
	session, err := s.Repo.ScheduleSession(ctx, matchID, input.OpensAt.UTC(), input.ClosesAt.UTC())
	if err != nil {
		return ports.VoteSession{}, err
	}
	resolveLogger(s.Logger).Info("vote session scheduled",
		"event", "roster_session_scheduled",
		"module", "matchday/roster-service",
		"layer", "application",
		"match_id", matchID,
		"session_id", session.SessionID,
	)
	return session, nil
}

func (s Service) ListMatches(ctx context.Context) ([]ports.MatchWithSession, error) {
	return s.Repo.ListMatches(ctx)
}

func (s Service) CreatePlayer(ctx context.Context, input CreatePlayerInput) (ports.Player, error) {
	if strings.TrimSpace(input.Name) == "" {
		return ports.Player{}, domainerrors.ErrInvalidRequest
	}
	playerID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Player{}, err
	}
	created, err := s.Repo.CreatePlayer(ctx, ports.Player{
		PlayerID:  playerID,
		Name:      strings.TrimSpace(input.Name),
		Dorsal:    input.Dorsal,
		Active:    input.Active,
		CreatedAt: s.now(),
	})
	if err != nil {
		return ports.Player{}, err
	}
	resolveLogger(s.Logger).Info("player created",
		"event", "roster_player_created",
		"module", "matchday/roster-service",
		"layer", "application",
		"player_id", created.PlayerID,
	)
	return created, nil
}

func (s Service) ListPlayers(ctx context.Context) ([]ports.Player, error) {
	return s.Repo.ListPlayers(ctx)
}

func (s Service) CreateAllowedVoter(ctx context.Context, input CreateAllowedVoterInput) (ports.AllowedVoter, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if strings.TrimSpace(input.PlayerName) == "" || email == "" {
		return ports.AllowedVoter{}, domainerrors.ErrInvalidRequest
	}
	allowedID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.AllowedVoter{}, err
	}
	created, err := s.Repo.CreateAllowedVoter(ctx, ports.AllowedVoter{
		AllowedVoterID: allowedID,
		PlayerName:     strings.TrimSpace(input.PlayerName),
		Email:          email,
		Active:         input.Active,
		CreatedAt:      s.now(),
	})
	if err != nil {
		return ports.AllowedVoter{}, err
	}
	resolveLogger(s.Logger).Info("allowed voter created",
		"event", "roster_allowed_voter_created",
		"module", "matchday/roster-service",
		"layer", "application",
		"allowed_voter_id", created.AllowedVoterID,
		"email", email,
	)
	return created, nil
}

func (s Service) ListAllowedVoters(ctx context.Context) ([]ports.AllowedVoter, error) {
	return s.Repo.ListAllowedVoters(ctx)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
