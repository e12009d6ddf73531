package entities

import (
	"testing"
	"time"
)

func TestWindowStateNoSession(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	if state := WindowState(nil, now); state != StateNoSession {
		t.Fatalf("expected no_session, got %s", state)
	}
}

func TestWindowStateUnscheduled(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	opens := now.Add(-time.Hour)

	cases := []struct {
		name    string
		session VoteSession
	}{
		{name: "both boundaries missing", session: VoteSession{SessionID: "s1"}},
		{name: "closes missing", session: VoteSession{SessionID: "s1", OpensAt: &opens}},
		{name: "opens missing", session: VoteSession{SessionID: "s1", ClosesAt: &opens}},
	}
	for _, tc := range cases {
		session := tc.session
		if state := WindowState(&session, now); state != StateUnscheduled {
			t.Fatalf("%s: expected unscheduled, got %s", tc.name, state)
		}
	}
}

func TestWindowStateTransitions(t *testing.T) {
	opens := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	closes := opens.Add(48 * time.Hour)
	session := VoteSession{SessionID: "s1", OpensAt: &opens, ClosesAt: &closes}

	cases := []struct {
		name string
		now  time.Time
		want SessionState
	}{
		{name: "before window", now: opens.Add(-time.Second), want: StatePending},
		{name: "exactly at open", now: opens, want: StateOpen},
		{name: "inside window", now: opens.Add(time.Hour), want: StateOpen},
		{name: "exactly at close", now: closes, want: StateOpen},
		{name: "after window", now: closes.Add(time.Second), want: StateClosed},
	}
	for _, tc := range cases {
		if state := WindowState(&session, tc.now); state != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, state)
		}
	}
}

func TestWindowStateZeroLengthWindowIsOpen(t *testing.T) {
	instant := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	session := VoteSession{SessionID: "s1", OpensAt: &instant, ClosesAt: &instant}
	if state := WindowState(&session, instant); state != StateOpen {
		t.Fatalf("expected open for opensAt == closesAt == now, got %s", state)
	}
}
