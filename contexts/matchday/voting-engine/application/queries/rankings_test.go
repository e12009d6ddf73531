package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"postmatch/contexts/matchday/voting-engine/adapters/memory"
	"postmatch/contexts/matchday/voting-engine/domain/entities"
	domainerrors "postmatch/contexts/matchday/voting-engine/domain/errors"
)

var testNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func newUseCase(store *memory.Store) RankingUseCase {
	return RankingUseCase{
		Votes:    store,
		Sessions: store,
		Matches:  store,
		Players:  store,
		Voters:   store,
		Clock:    store,
	}
}

func seedMatch(store *memory.Store, matchID string, sessionID string, date time.Time, opensAt, closesAt *time.Time) {
	store.SetMatch(entities.Match{MatchID: matchID, Date: date, Rival: "Rival " + matchID, CreatedAt: date})
	store.SetSession(entities.VoteSession{
		SessionID: sessionID,
		MatchID:   matchID,
		OpensAt:   opensAt,
		ClosesAt:  closesAt,
		CreatedAt: date,
	})
}

func seedBallotVotes(store *memory.Store, sessionID string, voterID string, playerIDs [6]string) {
	points := []int{3, 2, 1, -3, -2, -1}
	categories := []entities.VoteCategory{
		entities.CategoryBest, entities.CategoryBest, entities.CategoryBest,
		entities.CategoryWorst, entities.CategoryWorst, entities.CategoryWorst,
	}
	records := make([]entities.VoteRecord, 0, 6)
	for i, playerID := range playerIDs {
		records = append(records, entities.VoteRecord{
			VoteID:    sessionID + "-" + voterID + "-" + playerID,
			SessionID: sessionID,
			VoterID:   voterID,
			PlayerID:  playerID,
			Category:  categories[i],
			Points:    points[i],
			CreatedAt: testNow,
		})
	}
	if err := store.InsertBallot(context.Background(), records); err != nil {
		panic(err)
	}
}

func TestMatchListStates(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(testNow)

	pastOpen := testNow.Add(-3 * time.Hour)
	pastClose := testNow.Add(-2 * time.Hour)
	futureOpen := testNow.Add(time.Hour)
	futureClose := testNow.Add(2 * time.Hour)
	openNow := testNow.Add(-time.Hour)
	closeLater := testNow.Add(time.Hour)

	seedMatch(store, "m-closed", "s-closed", testNow.Add(-72*time.Hour), &pastOpen, &pastClose)
	seedMatch(store, "m-open", "s-open", testNow.Add(-48*time.Hour), &openNow, &closeLater)
	seedMatch(store, "m-pending", "s-pending", testNow.Add(-24*time.Hour), &futureOpen, &futureClose)
	seedMatch(store, "m-unscheduled", "s-unscheduled", testNow.Add(-12*time.Hour), nil, nil)
	store.SetMatch(entities.Match{MatchID: "m-bare", Date: testNow.Add(-6 * time.Hour), Rival: "Bare"})

	items, err := newUseCase(store).MatchList(context.Background())
	if err != nil {
		t.Fatalf("match list failed: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 matches, got %d", len(items))
	}

	// ListMatches orders date descending: newest fixture first.
	wantOrder := []string{"m-bare", "m-unscheduled", "m-pending", "m-open", "m-closed"}
	wantState := []entities.SessionState{
		entities.StateNoSession,
		entities.StateUnscheduled,
		entities.StatePending,
		entities.StateOpen,
		entities.StateClosed,
	}
	for i, item := range items {
		if item.Match.MatchID != wantOrder[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantOrder[i], item.Match.MatchID)
		}
		if item.State != wantState[i] {
			t.Fatalf("%s: expected state %s, got %s", item.Match.MatchID, wantState[i], item.State)
		}
	}
}

func TestMatchDetailHidesResultsWhileOpen(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(testNow)
	opens := testNow.Add(-time.Hour)
	closes := testNow.Add(time.Hour)
	seedMatch(store, "m1", "s1", testNow.Add(-2*time.Hour), &opens, &closes)
	store.SetPlayer(entities.Player{PlayerID: "p1", Name: "Iker", Active: true})
	seedBallotVotes(store, "s1", "v1", [6]string{"p1", "p2", "p3", "p4", "p5", "p6"})

	detail, err := newUseCase(store).MatchDetail(context.Background(), "m1", "")
	if err != nil {
		t.Fatalf("match detail failed: %v", err)
	}
	if detail.State != entities.StateOpen {
		t.Fatalf("expected open state, got %s", detail.State)
	}
	if detail.Results != nil {
		t.Fatal("expected no results while the window is open")
	}
}

func TestMatchDetailClosedIncludesResults(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(testNow)
	opens := testNow.Add(-3 * time.Hour)
	closes := testNow.Add(-time.Hour)
	seedMatch(store, "m1", "s1", testNow.Add(-4*time.Hour), &opens, &closes)
	store.SetPlayer(entities.Player{PlayerID: "p1", Name: "Iker", Active: true})
	store.SetPlayer(entities.Player{PlayerID: "p4", Name: "Jon", Active: false})
	seedBallotVotes(store, "s1", "v1", [6]string{"p1", "p2", "p3", "p4", "p5", "p6"})

	detail, err := newUseCase(store).MatchDetail(context.Background(), "m1", "")
	if err != nil {
		t.Fatalf("match detail failed: %v", err)
	}
	if detail.State != entities.StateClosed {
		t.Fatalf("expected closed state, got %s", detail.State)
	}
	if detail.Results == nil {
		t.Fatal("expected results for a closed session")
	}
	if detail.Results.Best[0].PlayerID != "p1" || detail.Results.Best[0].Total != 3 {
		t.Fatalf("expected p1/3 leading best, got %s/%d",
			detail.Results.Best[0].PlayerID, detail.Results.Best[0].Total)
	}
	if detail.Results.Worst[0].PlayerID != "p4" || detail.Results.Worst[0].Total != -3 {
		t.Fatalf("expected p4/-3 leading worst, got %s/%d",
			detail.Results.Worst[0].PlayerID, detail.Results.Worst[0].Total)
	}
	// Inactive p4 still appears under its roster name in results.
	if detail.Results.Worst[0].Name != "Jon" {
		t.Fatalf("expected inactive player name resolved, got %q", detail.Results.Worst[0].Name)
	}
	// The active-roster view excludes the deactivated player.
	for _, player := range detail.Players {
		if player.PlayerID == "p4" {
			t.Fatal("expected inactive player excluded from the roster")
		}
	}
}

func TestMatchDetailHasVotedResolvesWithoutCreatingVoter(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(testNow)
	opens := testNow.Add(-time.Hour)
	closes := testNow.Add(time.Hour)
	seedMatch(store, "m1", "s1", testNow.Add(-2*time.Hour), &opens, &closes)
	store.SetVoter(entities.Voter{VoterID: "v1", Email: "voter@example.com"})
	seedBallotVotes(store, "s1", "v1", [6]string{"p1", "p2", "p3", "p4", "p5", "p6"})

	uc := newUseCase(store)

	detail, err := uc.MatchDetail(context.Background(), "m1", "VOTER@example.com")
	if err != nil {
		t.Fatalf("match detail failed: %v", err)
	}
	if !detail.HasVoted {
		t.Fatal("expected has-voted for the voter's own email")
	}

	detail, err = uc.MatchDetail(context.Background(), "m1", "other@example.com")
	if err != nil {
		t.Fatalf("match detail failed: %v", err)
	}
	if detail.HasVoted {
		t.Fatal("expected not-voted for an unknown email")
	}
	if _, found, _ := store.GetVoterByEmail(context.Background(), "other@example.com"); found {
		t.Fatal("a read must never create a voter row")
	}
}

func TestMatchDetailUnknownMatch(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(testNow)
	_, err := newUseCase(store).MatchDetail(context.Background(), "missing", "")
	if !errors.Is(err, domainerrors.ErrMatchNotFound) {
		t.Fatalf("expected match-not-found, got %v", err)
	}
}

func TestGlobalRankingOnlyClosedSessions(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(testNow)

	closedOpen := testNow.Add(-3 * time.Hour)
	closedClose := testNow.Add(-time.Hour)
	seedMatch(store, "m-closed", "s-closed", testNow.Add(-24*time.Hour), &closedOpen, &closedClose)
	openOpen := testNow.Add(-time.Hour)
	openClose := testNow.Add(time.Hour)
	seedMatch(store, "m-open", "s-open", testNow.Add(-12*time.Hour), &openOpen, &openClose)

	store.SetPlayer(entities.Player{PlayerID: "p1", Name: "Iker", Active: true})
	seedBallotVotes(store, "s-closed", "v1", [6]string{"p1", "p2", "p3", "p4", "p5", "p6"})
	seedBallotVotes(store, "s-open", "v2", [6]string{"p9", "p2", "p3", "p4", "p5", "p6"})

	ranking, err := newUseCase(store).GlobalRanking(context.Background())
	if err != nil {
		t.Fatalf("global ranking failed: %v", err)
	}
	for _, entry := range ranking {
		if entry.PlayerID == "p9" {
			t.Fatal("open-session votes must not contribute to the global ranking")
		}
	}
	if ranking[0].PlayerID != "p1" || ranking[0].Total != 3 {
		t.Fatalf("expected p1/3 on top, got %s/%d", ranking[0].PlayerID, ranking[0].Total)
	}
}

func TestGlobalMatrixPerMatchBreakdown(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(testNow)

	open1 := testNow.Add(-30 * time.Hour)
	close1 := testNow.Add(-28 * time.Hour)
	seedMatch(store, "m1", "s1", testNow.Add(-48*time.Hour), &open1, &close1)
	open2 := testNow.Add(-6 * time.Hour)
	close2 := testNow.Add(-4 * time.Hour)
	seedMatch(store, "m2", "s2", testNow.Add(-24*time.Hour), &open2, &close2)

	seedBallotVotes(store, "s1", "v1", [6]string{"p1", "p2", "p3", "p4", "p5", "p6"})
	seedBallotVotes(store, "s2", "v1", [6]string{"p1", "p3", "p2", "p6", "p5", "p4"})

	matrix, err := newUseCase(store).GlobalMatrix(context.Background())
	if err != nil {
		t.Fatalf("global matrix failed: %v", err)
	}
	if len(matrix.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(matrix.Columns))
	}
	if matrix.Columns[0].MatchID != "m1" || matrix.Columns[1].MatchID != "m2" {
		t.Fatalf("expected date-ascending columns, got %s then %s",
			matrix.Columns[0].MatchID, matrix.Columns[1].MatchID)
	}
	if matrix.Rows[0].PlayerID != "p1" || matrix.Rows[0].Total != 6 {
		t.Fatalf("expected p1 total 6 on top, got %s/%d", matrix.Rows[0].PlayerID, matrix.Rows[0].Total)
	}
	if matrix.Rows[0].PerMatch[0] != 3 || matrix.Rows[0].PerMatch[1] != 3 {
		t.Fatalf("expected p1 per-match [3 3], got %v", matrix.Rows[0].PerMatch)
	}
}
