// Package services holds the pure tally computations. Every function takes
// its full vote snapshot as an argument and never reaches into storage or a
// clock, so results are exactly reproducible for a given input.
package services

import (
	"sort"
	"time"

	"postmatch/contexts/matchday/voting-engine/domain/entities"
)

const topSize = 3

// RankingEntry is one derived row: a player and their summed points over some
// scope. Never stored; recomputed on demand.
type RankingEntry struct {
	PlayerID string
	Name     string
	Total    int
}

// SessionTally is the closed-session result: top players by signed total,
// best ranked descending and worst ranked ascending.
type SessionTally struct {
	Best  []RankingEntry
	Worst []RankingEntry
}

// MatchVotes pairs one match with the vote records of its session.
type MatchVotes struct {
	Match entities.Match
	Votes []entities.VoteRecord
}

// MatrixColumn is one match column of the global matrix, with the column's
// synthetic total across all player rows.
type MatrixColumn struct {
	MatchID string
	Date    time.Time
	Rival   string
	Total   int
}

// MatrixRow is one player row. PerMatch is aligned index-for-index with the
// matrix columns.
type MatrixRow struct {
	PlayerID string
	Name     string
	PerMatch []int
	Total    int
}

// Matrix is the global ranking broken out per match.
type Matrix struct {
	Columns []MatrixColumn
	Rows    []MatrixRow
}

// SessionTopThree folds one session's records into its top-3 best and worst.
// Each player's best and worst points are summed into a single signed total,
// then the same totals are ranked descending for best and ascending for
// worst. Empty input yields empty rankings.
func SessionTopThree(votes []entities.VoteRecord, names map[string]string) SessionTally {
	entries := sumByPlayer(votes, names)

	best := make([]RankingEntry, len(entries))
	copy(best, entries)
	sortRanking(best, false)

	worst := make([]RankingEntry, len(entries))
	copy(worst, entries)
	sortRanking(worst, true)

	return SessionTally{
		Best:  truncate(best, topSize),
		Worst: truncate(worst, topSize),
	}
}

// GlobalRanking folds an arbitrary record set into a flat ranking: signed sum
// per player, descending by total, ties broken by name ascending.
func GlobalRanking(votes []entities.VoteRecord, names map[string]string) []RankingEntry {
	entries := sumByPlayer(votes, names)
	sortRanking(entries, false)
	return entries
}

// MatrixRanking produces the per-match breakdown of the global ranking.
// Matches without any contributing vote are dropped from the columns; the
// remaining columns are ordered by match date ascending. Row order matches
// GlobalRanking over the same records.
func MatrixRanking(batches []MatchVotes, names map[string]string) Matrix {
	columns := make([]MatchVotes, 0, len(batches))
	for _, batch := range batches {
		if len(batch.Votes) == 0 {
			continue
		}
		columns = append(columns, batch)
	}
	sort.Slice(columns, func(i, j int) bool {
		if columns[i].Match.Date.Equal(columns[j].Match.Date) {
			return columns[i].Match.MatchID < columns[j].Match.MatchID
		}
		return columns[i].Match.Date.Before(columns[j].Match.Date)
	})

	all := make([]entities.VoteRecord, 0)
	perMatch := make([]map[string]int, len(columns))
	for i, batch := range columns {
		totals := make(map[string]int, len(batch.Votes))
		for _, vote := range batch.Votes {
			totals[vote.PlayerID] += vote.Points
		}
		perMatch[i] = totals
		all = append(all, batch.Votes...)
	}

	ranking := GlobalRanking(all, names)

	matrix := Matrix{
		Columns: make([]MatrixColumn, 0, len(columns)),
		Rows:    make([]MatrixRow, 0, len(ranking)),
	}
	for _, batch := range columns {
		matrix.Columns = append(matrix.Columns, MatrixColumn{
			MatchID: batch.Match.MatchID,
			Date:    batch.Match.Date,
			Rival:   batch.Match.Rival,
		})
	}
	for _, entry := range ranking {
		row := MatrixRow{
			PlayerID: entry.PlayerID,
			Name:     entry.Name,
			PerMatch: make([]int, len(columns)),
			Total:    entry.Total,
		}
		for i, totals := range perMatch {
			row.PerMatch[i] = totals[entry.PlayerID]
			matrix.Columns[i].Total += totals[entry.PlayerID]
		}
		matrix.Rows = append(matrix.Rows, row)
	}
	return matrix
}

func sumByPlayer(votes []entities.VoteRecord, names map[string]string) []RankingEntry {
	totals := make(map[string]int, len(votes))
	for _, vote := range votes {
		totals[vote.PlayerID] += vote.Points
	}
	entries := make([]RankingEntry, 0, len(totals))
	for playerID, total := range totals {
		entries = append(entries, RankingEntry{
			PlayerID: playerID,
			Name:     resolveName(names, playerID),
			Total:    total,
		})
	}
	return entries
}

func sortRanking(entries []RankingEntry, ascending bool) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total == entries[j].Total {
			if entries[i].Name == entries[j].Name {
				return entries[i].PlayerID < entries[j].PlayerID
			}
			return entries[i].Name < entries[j].Name
		}
		if ascending {
			return entries[i].Total < entries[j].Total
		}
		return entries[i].Total > entries[j].Total
	})
}

func truncate(entries []RankingEntry, limit int) []RankingEntry {
	if len(entries) <= limit {
		return entries
	}
	return entries[:limit]
}

// resolveName falls back to the player ID so rankings stay deterministic even
// when the roster snapshot is missing a name.
func resolveName(names map[string]string, playerID string) string {
	if name, ok := names[playerID]; ok && name != "" {
		return name
	}
	return playerID
}
