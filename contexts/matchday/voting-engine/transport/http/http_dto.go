package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitBallotRequest struct {
	Best  PodiumSelection `json:"best"`
	Worst PodiumSelection `json:"worst"`
}

type PodiumSelection struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

type SubmitBallotResponse struct {
	SessionID    string `json:"session_id"`
	VoterID      string `json:"voter_id"`
	VoterCreated bool   `json:"voter_created"`
}

type MatchItem struct {
	MatchID string    `json:"match_id"`
	Date    time.Time `json:"date"`
	Rival   string    `json:"rival"`
	State   string    `json:"state"`
}

type MatchListResponse struct {
	Items []MatchItem `json:"items"`
}

type PlayerItem struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Dorsal   *int   `json:"dorsal,omitempty"`
}

type RankingItem struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Total    int    `json:"total"`
}

type SessionResults struct {
	Best  []RankingItem `json:"best"`
	Worst []RankingItem `json:"worst"`
}

type MatchDetailResponse struct {
	Match    MatchItem       `json:"match"`
	Players  []PlayerItem    `json:"players"`
	HasVoted bool            `json:"has_voted"`
	Results  *SessionResults `json:"results,omitempty"`
}

type GlobalRankingResponse struct {
	Items []RankingItem `json:"items"`
}

type MatrixColumnItem struct {
	MatchID string    `json:"match_id"`
	Date    time.Time `json:"date"`
	Rival   string    `json:"rival"`
	Total   int       `json:"total"`
}

type MatrixRowItem struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	PerMatch []int  `json:"per_match"`
	Total    int    `json:"total"`
}

type MatrixResponse struct {
	Columns []MatrixColumnItem `json:"columns"`
	Rows    []MatrixRowItem    `json:"rows"`
}
