package httpadapter

import (
	"context"
	"log/slog"

	"postmatch/contexts/matchday/roster-service/application"
	"postmatch/contexts/matchday/roster-service/ports"
	httptransport "postmatch/contexts/matchday/roster-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateMatchHandler(ctx context.Context, req httptransport.CreateMatchRequest) (httptransport.MatchResponse, error) {
	created, err := h.Service.CreateMatch(ctx, application.CreateMatchInput{
		Date:  req.Date,
		Rival: req.Rival,
	})
	if err != nil {
		return httptransport.MatchResponse{}, err
	}
	return mapMatch(created), nil
}

func (h Handler) ScheduleSessionHandler(
	ctx context.Context,
	matchID string,
	req httptransport.ScheduleSessionRequest,
) (httptransport.SessionResponse, error) {
	session, err := h.Service.ScheduleSession(ctx, matchID, application.ScheduleSessionInput{
		OpensAt:  req.OpensAt,
		ClosesAt: req.ClosesAt,
	})
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return mapSession(session), nil
}

func (h Handler) MatchListHandler(ctx context.Context) (httptransport.MatchListResponse, error) {
	items, err := h.Service.ListMatches(ctx)
	if err != nil {
		return httptransport.MatchListResponse{}, err
	}
	response := httptransport.MatchListResponse{
		Items: make([]httptransport.MatchResponse, 0, len(items)),
	}
	for _, item := range items {
		response.Items = append(response.Items, mapMatch(item))
	}
	return response, nil
}

func (h Handler) CreatePlayerHandler(ctx context.Context, req httptransport.CreatePlayerRequest) (httptransport.PlayerResponse, error) {
	created, err := h.Service.CreatePlayer(ctx, application.CreatePlayerInput{
		Name:   req.Name,
		Dorsal: req.Dorsal,
		Active: req.Active,
	})
	if err != nil {
		return httptransport.PlayerResponse{}, err
	}
	return mapPlayer(created), nil
}

func (h Handler) PlayerListHandler(ctx context.Context) (httptransport.PlayerListResponse, error) {
	items, err := h.Service.ListPlayers(ctx)
	if err != nil {
		return httptransport.PlayerListResponse{}, err
	}
	response := httptransport.PlayerListResponse{
		Items: make([]httptransport.PlayerResponse, 0, len(items)),
	}
	for _, item := range items {
		response.Items = append(response.Items, mapPlayer(item))
	}
	return response, nil
}

func (h Handler) CreateAllowedVoterHandler(
	ctx context.Context,
	req httptransport.CreateAllowedVoterRequest,
) (httptransport.AllowedVoterResponse, error) {
	created, err := h.Service.CreateAllowedVoter(ctx, application.CreateAllowedVoterInput{
		PlayerName: req.PlayerName,
		Email:      req.Email,
		Active:     req.Active,
	})
	if err != nil {
		return httptransport.AllowedVoterResponse{}, err
	}
	return mapAllowedVoter(created), nil
}

func (h Handler) AllowedVoterListHandler(ctx context.Context) (httptransport.AllowedVoterListResponse, error) {
	items, err := h.Service.ListAllowedVoters(ctx)
	if err != nil {
		return httptransport.AllowedVoterListResponse{}, err
	}
	response := httptransport.AllowedVoterListResponse{
		Items: make([]httptransport.AllowedVoterResponse, 0, len(items)),
	}
	for _, item := range items {
		response.Items = append(response.Items, mapAllowedVoter(item))
	}
	return response, nil
}

func mapMatch(item ports.MatchWithSession) httptransport.MatchResponse {
	return httptransport.MatchResponse{
		MatchID: item.Match.MatchID,
		Date:    item.Match.Date,
		Rival:   item.Match.Rival,
		Session: mapSession(item.Session),
	}
}

func mapSession(session ports.VoteSession) httptransport.SessionResponse {
	return httptransport.SessionResponse{
		SessionID: session.SessionID,
		MatchID:   session.MatchID,
		OpensAt:   session.OpensAt,
		ClosesAt:  session.ClosesAt,
	}
}

func mapPlayer(player ports.Player) httptransport.PlayerResponse {
	return httptransport.PlayerResponse{
		PlayerID: player.PlayerID,
		Name:     player.Name,
		Dorsal:   player.Dorsal,
		Active:   player.Active,
	}
}

func mapAllowedVoter(allowed ports.AllowedVoter) httptransport.AllowedVoterResponse {
	return httptransport.AllowedVoterResponse{
		AllowedVoterID: allowed.AllowedVoterID,
		PlayerName:     allowed.PlayerName,
		Email:          allowed.Email,
		Active:         allowed.Active,
	}
}
