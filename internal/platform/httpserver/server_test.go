package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	rosterservice "postmatch/contexts/matchday/roster-service"
	votingengine "postmatch/contexts/matchday/voting-engine"
	"postmatch/contexts/matchday/voting-engine/domain/entities"
	votinghttp "postmatch/contexts/matchday/voting-engine/transport/http"
)

var testNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, votingengine.Module, rosterservice.Module) {
	t.Helper()
	voting := votingengine.NewInMemoryModule(nil)
	roster := rosterservice.NewInMemoryModule(nil)
	voting.Store.SetNow(testNow)
	roster.Store.SetNow(testNow)
	server := New(voting, roster, "admin@example.com", nil, ":0")
	return server, voting, roster
}

func seedOpenMatch(voting votingengine.Module) {
	for i, name := range []string{"Iker", "Jon", "Mikel", "Unai", "Ander", "Gorka"} {
		voting.Store.SetPlayer(entities.Player{
			PlayerID: "p" + string(rune('1'+i)),
			Name:     name,
			Active:   true,
		})
	}
	voting.Store.SetMatch(entities.Match{MatchID: "m1", Date: testNow.Add(-2 * time.Hour), Rival: "Sestao"})
	opens := testNow.Add(-time.Hour)
	closes := testNow.Add(time.Hour)
	voting.Store.SetSession(entities.VoteSession{
		SessionID: "s1",
		MatchID:   "m1",
		OpensAt:   &opens,
		ClosesAt:  &closes,
	})
	voting.Store.SetAllowedVoter(entities.AllowedVoter{
		AllowedVoterID: "al1",
		PlayerName:     "Iker",
		Email:          "voter@example.com",
		Active:         true,
	})
}

func ballotBody() string {
	return `{
		"best":  {"first": "p1", "second": "p2", "third": "p3"},
		"worst": {"first": "p4", "second": "p5", "third": "p6"}
	}`
}

func TestSubmitBallotEndpoint(t *testing.T) {
	server, voting, _ := newTestServer(t)
	seedOpenMatch(voting)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches/m1/ballots", strings.NewReader(ballotBody()))
	req.Header.Set("X-Voter-Email", "voter@example.com")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp votinghttp.SubmitBallotResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.SessionID != "s1" || !resp.VoterCreated {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSubmitBallotRequiresVoterEmail(t *testing.T) {
	server, voting, _ := newTestServer(t)
	seedOpenMatch(voting)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches/m1/ballots", strings.NewReader(ballotBody()))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without voter email, got %d", rec.Code)
	}
}

func TestSubmitBallotErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		email      string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not on allow-list",
			email:      "stranger@example.com",
			body:       ballotBody(),
			wantStatus: http.StatusForbidden,
			wantCode:   "not_authorized",
		},
		{
			name:  "duplicate selection",
			email: "voter@example.com",
			body: `{
				"best":  {"first": "p1", "second": "p1", "third": "p3"},
				"worst": {"first": "p4", "second": "p5", "third": "p6"}
			}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "incomplete_or_duplicate_selection",
		},
		{
			name:       "malformed json",
			email:      "voter@example.com",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_json",
		},
	}
	for _, tc := range cases {
		server, voting, _ := newTestServer(t)
		seedOpenMatch(voting)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/matches/m1/ballots", strings.NewReader(tc.body))
		req.Header.Set("X-Voter-Email", tc.email)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		if rec.Code != tc.wantStatus {
			t.Fatalf("%s: expected %d, got %d: %s", tc.name, tc.wantStatus, rec.Code, rec.Body.String())
		}
		var errResp votinghttp.ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
			t.Fatalf("%s: decode failed: %v", tc.name, err)
		}
		if errResp.Code != tc.wantCode {
			t.Fatalf("%s: expected code %q, got %q", tc.name, tc.wantCode, errResp.Code)
		}
	}
}

func TestSubmitBallotTwiceConflicts(t *testing.T) {
	server, voting, _ := newTestServer(t)
	seedOpenMatch(voting)

	for attempt, wantStatus := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/matches/m1/ballots", strings.NewReader(ballotBody()))
		req.Header.Set("X-Voter-Email", "voter@example.com")
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)
		if rec.Code != wantStatus {
			t.Fatalf("attempt %d: expected %d, got %d: %s", attempt+1, wantStatus, rec.Code, rec.Body.String())
		}
	}
}

func TestMatchListEndpoint(t *testing.T) {
	server, voting, _ := newTestServer(t)
	seedOpenMatch(voting)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp votinghttp.MatchListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].MatchID != "m1" || resp.Items[0].State != "open" {
		t.Fatalf("unexpected match list: %+v", resp.Items)
	}
}

func TestAdminGate(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/matches", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin header, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/matches", nil)
	req.Header.Set("X-Admin-Email", "intruder@example.com")
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for the wrong admin email, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/matches", nil)
	req.Header.Set("X-Admin-Email", "Admin@Example.com")
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for the configured admin, got %d", rec.Code)
	}
}

func TestAdminScheduleFlow(t *testing.T) {
	server, _, _ := newTestServer(t)

	createBody := `{"date": "2025-05-12T18:00:00Z", "rival": "Sestao"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/matches", strings.NewReader(createBody))
	req.Header.Set("X-Admin-Email", "admin@example.com")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create match: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var match struct {
		MatchID string `json:"match_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&match); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	scheduleBody := `{"opens_at": "2025-05-12T20:00:00Z", "closes_at": "2025-05-14T20:00:00Z"}`
	scheduleURL := "/api/v1/admin/matches/" + match.MatchID + "/schedule"
	req = httptest.NewRequest(http.MethodPost, scheduleURL, strings.NewReader(scheduleBody))
	req.Header.Set("X-Admin-Email", "admin@example.com")
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("schedule: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// The window is set exactly once.
	req = httptest.NewRequest(http.MethodPost, scheduleURL, strings.NewReader(scheduleBody))
	req.Header.Set("X-Admin-Email", "admin@example.com")
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("reschedule: expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}
