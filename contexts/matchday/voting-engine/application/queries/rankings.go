package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"postmatch/contexts/matchday/voting-engine/domain/entities"
	"postmatch/contexts/matchday/voting-engine/domain/services"
	"postmatch/contexts/matchday/voting-engine/ports"
)

// MatchSummary is one row of the match list: the fixture plus its window
// state at query time.
type MatchSummary struct {
	Match entities.Match
	State entities.SessionState
}

// MatchDetail is the single-match view. Results is nil unless the window is
// closed; an open session never exposes partial tallies.
type MatchDetail struct {
	Match    entities.Match
	State    entities.SessionState
	Players  []entities.Player
	HasVoted bool
	Results  *services.SessionTally
}

// RankingUseCase serves the read side: match views and the global rankings.
// All aggregation is delegated to the pure tally functions over snapshots
// fetched once per call.
type RankingUseCase struct {
	Votes    ports.VoteRepository
	Sessions ports.SessionRepository
	Matches  ports.MatchRepository
	Players  ports.PlayerRepository
	Voters   ports.VoterRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// MatchList returns all matches, date descending, each annotated with its
// window state.
func (uc RankingUseCase) MatchList(ctx context.Context) ([]MatchSummary, error) {
	matches, err := uc.Matches.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := uc.Sessions.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	byMatch := make(map[string]entities.VoteSession, len(sessions))
	for _, session := range sessions {
		byMatch[session.MatchID] = session
	}

	now := uc.now()
	items := make([]MatchSummary, 0, len(matches))
	for _, match := range matches {
		state := entities.StateNoSession
		if session, ok := byMatch[match.MatchID]; ok {
			state = entities.WindowState(&session, now)
		}
		items = append(items, MatchSummary{Match: match, State: state})
	}
	return items, nil
}

// MatchDetail returns one match with its roster, the caller's has-voted flag,
// and the session tally once the window has closed. The email is optional:
// an unresolved or unknown email simply reads as not-voted, it never creates
// a voter row.
func (uc RankingUseCase) MatchDetail(ctx context.Context, matchID string, email string) (MatchDetail, error) {
	match, err := uc.Matches.GetMatch(ctx, strings.TrimSpace(matchID))
	if err != nil {
		return MatchDetail{}, err
	}

	detail := MatchDetail{Match: match, State: entities.StateNoSession}
	session, found, err := uc.Sessions.GetSessionByMatch(ctx, match.MatchID)
	if err != nil {
		return MatchDetail{}, err
	}
	if !found {
		return detail, nil
	}

	now := uc.now()
	detail.State = entities.WindowState(&session, now)

	detail.Players, err = uc.Players.ListActivePlayers(ctx)
	if err != nil {
		return MatchDetail{}, err
	}

	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		if voter, ok, err := uc.Voters.GetVoterByEmail(ctx, email); err != nil {
			return MatchDetail{}, err
		} else if ok {
			detail.HasVoted, err = uc.Votes.HasVoted(ctx, session.SessionID, voter.VoterID)
			if err != nil {
				return MatchDetail{}, err
			}
		}
	}

	if detail.State == entities.StateClosed {
		votes, err := uc.Votes.ListVotesBySession(ctx, session.SessionID)
		if err != nil {
			return MatchDetail{}, err
		}
		names, err := uc.playerNames(ctx)
		if err != nil {
			return MatchDetail{}, err
		}
		tally := services.SessionTopThree(votes, names)
		detail.Results = &tally
	}
	return detail, nil
}

// GlobalRanking sums every vote record of every closed session into the flat
// all-time ranking.
func (uc RankingUseCase) GlobalRanking(ctx context.Context) ([]services.RankingEntry, error) {
	batches, err := uc.closedSessionVotes(ctx)
	if err != nil {
		return nil, err
	}
	all := make([]entities.VoteRecord, 0)
	for _, batch := range batches {
		all = append(all, batch.Votes...)
	}
	names, err := uc.playerNames(ctx)
	if err != nil {
		return nil, err
	}
	return services.GlobalRanking(all, names), nil
}

// GlobalMatrix returns the closed-session totals broken out per match, with
// empty matches dropped and per-column totals included.
func (uc RankingUseCase) GlobalMatrix(ctx context.Context) (services.Matrix, error) {
	batches, err := uc.closedSessionVotes(ctx)
	if err != nil {
		return services.Matrix{}, err
	}
	names, err := uc.playerNames(ctx)
	if err != nil {
		return services.Matrix{}, err
	}
	return services.MatrixRanking(batches, names), nil
}

// closedSessionVotes snapshots the votes of every session whose closing
// instant has passed, paired with its match.
func (uc RankingUseCase) closedSessionVotes(ctx context.Context) ([]services.MatchVotes, error) {
	sessions, err := uc.Sessions.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := uc.Matches.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entities.Match, len(matches))
	for _, match := range matches {
		byID[match.MatchID] = match
	}

	now := uc.now()
	batches := make([]services.MatchVotes, 0, len(sessions))
	for _, session := range sessions {
		session := session
		if entities.WindowState(&session, now) != entities.StateClosed {
			continue
		}
		match, ok := byID[session.MatchID]
		if !ok {
			continue
		}
		votes, err := uc.Votes.ListVotesBySession(ctx, session.SessionID)
		if err != nil {
			return nil, err
		}
		batches = append(batches, services.MatchVotes{Match: match, Votes: votes})
	}
	return batches, nil
}

// playerNames includes inactive players: deactivation never erases a player
// from historical tallies.
func (uc RankingUseCase) playerNames(ctx context.Context) (map[string]string, error) {
	players, err := uc.Players.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(players))
	for _, player := range players {
		names[player.PlayerID] = player.Name
	}
	return names, nil
}

func (uc RankingUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
