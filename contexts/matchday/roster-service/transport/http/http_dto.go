package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateMatchRequest struct {
	Date  time.Time `json:"date"`
	Rival string    `json:"rival"`
}

type ScheduleSessionRequest struct {
	OpensAt  time.Time `json:"opens_at"`
	ClosesAt time.Time `json:"closes_at"`
}

type SessionResponse struct {
	SessionID string     `json:"session_id"`
	MatchID   string     `json:"match_id"`
	OpensAt   *time.Time `json:"opens_at,omitempty"`
	ClosesAt  *time.Time `json:"closes_at,omitempty"`
}

type MatchResponse struct {
	MatchID string          `json:"match_id"`
	Date    time.Time       `json:"date"`
	Rival   string          `json:"rival"`
	Session SessionResponse `json:"session"`
}

type MatchListResponse struct {
	Items []MatchResponse `json:"items"`
}

type CreatePlayerRequest struct {
	Name   string `json:"name"`
	Dorsal *int   `json:"dorsal,omitempty"`
	Active bool   `json:"active"`
}

type PlayerResponse struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Dorsal   *int   `json:"dorsal,omitempty"`
	Active   bool   `json:"active"`
}

type PlayerListResponse struct {
	Items []PlayerResponse `json:"items"`
}

type CreateAllowedVoterRequest struct {
	PlayerName string `json:"player_name"`
	Email      string `json:"email"`
	Active     bool   `json:"active"`
}

type AllowedVoterResponse struct {
	AllowedVoterID string `json:"allowed_voter_id"`
	PlayerName     string `json:"player_name"`
	Email          string `json:"email"`
	Active         bool   `json:"active"`
}

type AllowedVoterListResponse struct {
	Items []AllowedVoterResponse `json:"items"`
}
