package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "postmatch/contexts/matchday/roster-service/domain/errors"
	"postmatch/contexts/matchday/roster-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	matches  map[string]ports.Match
	sessions map[string]ports.VoteSession
	players  map[string]ports.Player
	allowed  map[string]ports.AllowedVoter

	now *time.Time
}

func NewStore() *Store {
	return &Store{
		matches:  make(map[string]ports.Match),
		sessions: make(map[string]ports.VoteSession),
		players:  make(map[string]ports.Player),
		allowed:  make(map[string]ports.AllowedVoter),
	}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pinned := now.UTC()
	s.now = &pinned
}

func (s *Store) CreateMatch(_ context.Context, match ports.Match, session ports.VoteSession) (ports.MatchWithSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[strings.TrimSpace(match.MatchID)] = match
	s.sessions[strings.TrimSpace(session.SessionID)] = session
	return ports.MatchWithSession{Match: match, Session: session}, nil
}

func (s *Store) ScheduleSession(_ context.Context, matchID string, opensAt time.Time, closesAt time.Time) (ports.VoteSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matchID = strings.TrimSpace(matchID)
	if _, ok := s.matches[matchID]; !ok {
		return ports.VoteSession{}, domainerrors.ErrMatchNotFound
	}
	for key, session := range s.sessions {
		if session.MatchID != matchID {
			continue
		}
		if session.OpensAt != nil || session.ClosesAt != nil {
			return ports.VoteSession{}, domainerrors.ErrAlreadyScheduled
		}
		opens := opensAt.UTC()
		closes := closesAt.UTC()
		session.OpensAt = &opens
		session.ClosesAt = &closes
		s.sessions[key] = session
		return session, nil
	}
	return ports.VoteSession{}, domainerrors.ErrSessionNotFound
}

func (s *Store) ListMatches(_ context.Context) ([]ports.MatchWithSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.MatchWithSession, 0, len(s.matches))
	for _, match := range s.matches {
		item := ports.MatchWithSession{Match: match}
		for _, session := range s.sessions {
			if session.MatchID == match.MatchID {
				item.Session = session
				break
			}
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Match.Date.Equal(items[j].Match.Date) {
			return items[i].Match.MatchID < items[j].Match.MatchID
		}
		return items[i].Match.Date.After(items[j].Match.Date)
	})
	return items, nil
}

func (s *Store) CreatePlayer(_ context.Context, player ports.Player) (ports.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[strings.TrimSpace(player.PlayerID)] = player
	return player, nil
}

func (s *Store) ListPlayers(_ context.Context) ([]ports.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.Player, 0, len(s.players))
	for _, player := range s.players {
		items = append(items, player)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name == items[j].Name {
			return items[i].PlayerID < items[j].PlayerID
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (s *Store) CreateAllowedVoter(_ context.Context, allowed ports.AllowedVoter) (ports.AllowedVoter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(strings.TrimSpace(allowed.Email))
	if _, exists := s.allowed[key]; exists {
		return ports.AllowedVoter{}, domainerrors.ErrDuplicateEmail
	}
	s.allowed[key] = allowed
	return allowed, nil
}

func (s *Store) ListAllowedVoters(_ context.Context) ([]ports.AllowedVoter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.AllowedVoter, 0, len(s.allowed))
	for _, allowed := range s.allowed {
		items = append(items, allowed)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Email < items[j].Email
	})
	return items, nil
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

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
