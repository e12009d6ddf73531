package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"postmatch/contexts/matchday/voting-engine/domain/entities"
	domainerrors "postmatch/contexts/matchday/voting-engine/domain/errors"
	"postmatch/contexts/matchday/voting-engine/ports"

	"github.com/google/uuid"
)

// Store is the in-memory rendition of every voting-engine port plus Clock and
// IDGenerator. Tests and local runs seed it through the Set* helpers.
type Store struct {
	mu sync.RWMutex

	players  map[string]entities.Player
	matches  map[string]entities.Match
	sessions map[string]entities.VoteSession
	voters   map[string]entities.Voter
	allowed  map[string]entities.AllowedVoter
	votes    map[string]entities.VoteRecord

	now *time.Time
}

func NewStore() *Store {
	return &Store{
		players:  make(map[string]entities.Player),
		matches:  make(map[string]entities.Match),
		sessions: make(map[string]entities.VoteSession),
		voters:   make(map[string]entities.Voter),
		allowed:  make(map[string]entities.AllowedVoter),
		votes:    make(map[string]entities.VoteRecord),
	}
}

func (s *Store) SetPlayer(player entities.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[strings.TrimSpace(player.PlayerID)] = player
}

func (s *Store) SetMatch(match entities.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[strings.TrimSpace(match.MatchID)] = match
}

func (s *Store) SetSession(session entities.VoteSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[strings.TrimSpace(session.SessionID)] = session
}

func (s *Store) SetVoter(voter entities.Voter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[normalizeEmail(voter.Email)] = voter
}

func (s *Store) SetAllowedVoter(allowed entities.AllowedVoter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowed[normalizeEmail(allowed.Email)] = allowed
}

// SetNow pins the clock; the zero call leaves the store on wall time.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pinned := now.UTC()
	s.now = &pinned
}

func (s *Store) InsertBallot(_ context.Context, records []entities.VoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range records {
		for _, existing := range s.votes {
			if existing.SessionID == record.SessionID && existing.VoterID == record.VoterID {
				return domainerrors.ErrAlreadyVoted
			}
		}
	}
	for _, record := range records {
		s.votes[strings.TrimSpace(record.VoteID)] = record
	}
	return nil
}

func (s *Store) HasVoted(_ context.Context, sessionID string, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessionID = strings.TrimSpace(sessionID)
	voterID = strings.TrimSpace(voterID)
	for _, record := range s.votes {
		if record.SessionID == sessionID && record.VoterID == voterID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListVotesBySession(_ context.Context, sessionID string) ([]entities.VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.VoteRecord, 0)
	for _, record := range s.votes {
		if record.SessionID == strings.TrimSpace(sessionID) {
			items = append(items, record)
		}
	}
	sortVotesByCreation(items)
	return items, nil
}

func (s *Store) ListVotes(_ context.Context) ([]entities.VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.VoteRecord, 0, len(s.votes))
	for _, record := range s.votes {
		items = append(items, record)
	}
	sortVotesByCreation(items)
	return items, nil
}

func (s *Store) GetSessionByMatch(_ context.Context, matchID string) (entities.VoteSession, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matchID = strings.TrimSpace(matchID)
	for _, session := range s.sessions {
		if session.MatchID == matchID {
			return session, true, nil
		}
	}
	return entities.VoteSession{}, false, nil
}

func (s *Store) ListSessions(_ context.Context) ([]entities.VoteSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.VoteSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		items = append(items, session)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) GetMatch(_ context.Context, matchID string) (entities.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[strings.TrimSpace(matchID)]
	if !ok {
		return entities.Match{}, domainerrors.ErrMatchNotFound
	}
	return match, nil
}

func (s *Store) ListMatches(_ context.Context) ([]entities.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Match, 0, len(s.matches))
	for _, match := range s.matches {
		items = append(items, match)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Date.Equal(items[j].Date) {
			return items[i].MatchID < items[j].MatchID
		}
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}

func (s *Store) ListActivePlayers(_ context.Context) ([]entities.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Player, 0, len(s.players))
	for _, player := range s.players {
		if player.Active {
			items = append(items, player)
		}
	}
	sortPlayersByName(items)
	return items, nil
}

func (s *Store) ListPlayers(_ context.Context) ([]entities.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Player, 0, len(s.players))
	for _, player := range s.players {
		items = append(items, player)
	}
	sortPlayersByName(items)
	return items, nil
}

func (s *Store) GetVoterByEmail(_ context.Context, email string) (entities.Voter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[normalizeEmail(email)]
	if !ok {
		return entities.Voter{}, false, nil
	}
	return voter, true, nil
}

func (s *Store) GetActiveAllowedVoter(_ context.Context, email string) (entities.AllowedVoter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	allowed, ok := s.allowed[normalizeEmail(email)]
	if !ok || !allowed.Active {
		return entities.AllowedVoter{}, false, nil
	}
	return allowed, true, nil
}

func (s *Store) CreateVoter(_ context.Context, voter entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(voter.Email)
	if _, exists := s.voters[key]; exists {
		return domainerrors.ErrDuplicateVoter
	}
	s.voters[key] = voter
	return nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now != nil {
		return *s.now
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortVotesByCreation(items []entities.VoteRecord) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].VoteID < items[j].VoteID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func sortPlayersByName(items []entities.Player) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name == items[j].Name {
			return items[i].PlayerID < items[j].PlayerID
		}
		return items[i].Name < items[j].Name
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ ports.VoteRepository = (*Store)(nil)
var _ ports.SessionRepository = (*Store)(nil)
var _ ports.MatchRepository = (*Store)(nil)
var _ ports.PlayerRepository = (*Store)(nil)
var _ ports.VoterRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
