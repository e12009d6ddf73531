package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"postmatch/contexts/matchday/roster-service/adapters/memory"
	domainerrors "postmatch/contexts/matchday/roster-service/domain/errors"
)

var testNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func newService() (Service, *memory.Store) {
	store := memory.NewStore()
	store.SetNow(testNow)
	return Service{Repo: store, Clock: store, IDGen: store}, store
}

func TestCreateMatchMintsUnscheduledSession(t *testing.T) {
	svc, _ := newService()

	created, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		Date:  testNow.AddDate(0, 0, 2),
		Rival: "  Sestao  ",
	})
	if err != nil {
		t.Fatalf("create match failed: %v", err)
	}
	if created.Match.MatchID == "" || created.Session.SessionID == "" {
		t.Fatal("expected generated ids for match and session")
	}
	if created.Session.MatchID != created.Match.MatchID {
		t.Fatalf("session bound to %s, expected %s", created.Session.MatchID, created.Match.MatchID)
	}
	if created.Match.Rival != "Sestao" {
		t.Fatalf("expected trimmed rival, got %q", created.Match.Rival)
	}
	if created.Session.OpensAt != nil || created.Session.ClosesAt != nil {
		t.Fatal("expected the new session to start without a window")
	}
}

func TestCreateMatchRejectsMissingFields(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{Rival: "Sestao"})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid-request for zero date, got %v", err)
	}
	_, err = svc.CreateMatch(context.Background(), CreateMatchInput{Date: testNow, Rival: "   "})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid-request for blank rival, got %v", err)
	}
}

func TestScheduleSessionOnce(t *testing.T) {
	svc, _ := newService()
	created, err := svc.CreateMatch(context.Background(), CreateMatchInput{Date: testNow, Rival: "Sestao"})
	if err != nil {
		t.Fatalf("create match failed: %v", err)
	}

	opens := testNow.Add(time.Hour)
	closes := testNow.Add(49 * time.Hour)
	session, err := svc.ScheduleSession(context.Background(), created.Match.MatchID, ScheduleSessionInput{
		OpensAt:  opens,
		ClosesAt: closes,
	})
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if session.OpensAt == nil || !session.OpensAt.Equal(opens) {
		t.Fatalf("expected opens_at %v, got %v", opens, session.OpensAt)
	}
	if session.ClosesAt == nil || !session.ClosesAt.Equal(closes) {
		t.Fatalf("expected closes_at %v, got %v", closes, session.ClosesAt)
	}

	_, err = svc.ScheduleSession(context.Background(), created.Match.MatchID, ScheduleSessionInput{
		OpensAt:  opens.Add(time.Hour),
		ClosesAt: closes.Add(time.Hour),
	})
	if !errors.Is(err, domainerrors.ErrAlreadyScheduled) {
		t.Fatalf("expected already-scheduled on the second call, got %v", err)
	}
}

func TestScheduleSessionRejectsInvertedWindow(t *testing.T) {
	svc, _ := newService()
	created, err := svc.CreateMatch(context.Background(), CreateMatchInput{Date: testNow, Rival: "Sestao"})
	if err != nil {
		t.Fatalf("create match failed: %v", err)
	}

	cases := []struct {
		name     string
		opensAt  time.Time
		closesAt time.Time
	}{
		{name: "closes before opens", opensAt: testNow.Add(2 * time.Hour), closesAt: testNow.Add(time.Hour)},
		{name: "zero-length window", opensAt: testNow.Add(time.Hour), closesAt: testNow.Add(time.Hour)},
	}
	for _, tc := range cases {
		_, err := svc.ScheduleSession(context.Background(), created.Match.MatchID, ScheduleSessionInput{
			OpensAt:  tc.opensAt,
			ClosesAt: tc.closesAt,
		})
		if !errors.Is(err, domainerrors.ErrInvalidWindow) {
			t.Fatalf("%s: expected invalid-window, got %v", tc.name, err)
		}
	}
}

func TestScheduleSessionUnknownMatch(t *testing.T) {
	svc, _ := newService()
	_, err := svc.ScheduleSession(context.Background(), "missing", ScheduleSessionInput{
		OpensAt:  testNow,
		ClosesAt: testNow.Add(time.Hour),
	})
	if !errors.Is(err, domainerrors.ErrMatchNotFound) {
		t.Fatalf("expected match-not-found, got %v", err)
	}
}

func TestCreatePlayer(t *testing.T) {
	svc, _ := newService()
	dorsal := 9
	player, err := svc.CreatePlayer(context.Background(), CreatePlayerInput{
		Name:   " Iker ",
		Dorsal: &dorsal,
		Active: true,
	})
	if err != nil {
		t.Fatalf("create player failed: %v", err)
	}
	if player.PlayerID == "" || player.Name != "Iker" {
		t.Fatalf("unexpected player: %+v", player)
	}

	_, err = svc.CreatePlayer(context.Background(), CreatePlayerInput{Name: "  "})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid-request for blank name, got %v", err)
	}
}

func TestCreateAllowedVoterNormalizesAndRejectsDuplicates(t *testing.T) {
	svc, _ := newService()

	created, err := svc.CreateAllowedVoter(context.Background(), CreateAllowedVoterInput{
		PlayerName: "Iker",
		Email:      " IKER@Example.com ",
		Active:     true,
	})
	if err != nil {
		t.Fatalf("create allowed voter failed: %v", err)
	}
	if created.Email != "iker@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}

	_, err = svc.CreateAllowedVoter(context.Background(), CreateAllowedVoterInput{
		PlayerName: "Iker",
		Email:      "iker@example.com",
		Active:     true,
	})
	if !errors.Is(err, domainerrors.ErrDuplicateEmail) {
		t.Fatalf("expected duplicate-email, got %v", err)
	}
}
