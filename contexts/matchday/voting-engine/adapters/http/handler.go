package httpadapter

import (
	"context"
	"log/slog"

	"postmatch/contexts/matchday/voting-engine/application/commands"
	"postmatch/contexts/matchday/voting-engine/application/queries"
	"postmatch/contexts/matchday/voting-engine/domain/entities"
	"postmatch/contexts/matchday/voting-engine/domain/services"
	httptransport "postmatch/contexts/matchday/voting-engine/transport/http"
)

type Handler struct {
	Ballots  commands.BallotUseCase
	Rankings queries.RankingUseCase
	Logger   *slog.Logger
}

func (h Handler) SubmitBallotHandler(
	ctx context.Context,
	matchID string,
	email string,
	authUserID string,
	req httptransport.SubmitBallotRequest,
) (httptransport.SubmitBallotResponse, error) {
	result, err := h.Ballots.SubmitBallot(ctx, commands.SubmitBallotCommand{
		MatchID:    matchID,
		Email:      email,
		AuthUserID: authUserID,
		Ballot: entities.Ballot{
			Best: entities.BallotSlots{
				First:  req.Best.First,
				Second: req.Best.Second,
				Third:  req.Best.Third,
			},
			Worst: entities.BallotSlots{
				First:  req.Worst.First,
				Second: req.Worst.Second,
				Third:  req.Worst.Third,
			},
		},
	})
	if err != nil {
		return httptransport.SubmitBallotResponse{}, err
	}
	return httptransport.SubmitBallotResponse{
		SessionID:    result.SessionID,
		VoterID:      result.Voter.VoterID,
		VoterCreated: result.VoterCreated,
	}, nil
}

func (h Handler) MatchListHandler(ctx context.Context) (httptransport.MatchListResponse, error) {
	items, err := h.Rankings.MatchList(ctx)
	if err != nil {
		return httptransport.MatchListResponse{}, err
	}
	response := httptransport.MatchListResponse{
		Items: make([]httptransport.MatchItem, 0, len(items)),
	}
	for _, item := range items {
		response.Items = append(response.Items, mapMatch(item.Match, item.State))
	}
	return response, nil
}

func (h Handler) MatchDetailHandler(
	ctx context.Context,
	matchID string,
	email string,
) (httptransport.MatchDetailResponse, error) {
	detail, err := h.Rankings.MatchDetail(ctx, matchID, email)
	if err != nil {
		return httptransport.MatchDetailResponse{}, err
	}
	response := httptransport.MatchDetailResponse{
		Match:    mapMatch(detail.Match, detail.State),
		Players:  make([]httptransport.PlayerItem, 0, len(detail.Players)),
		HasVoted: detail.HasVoted,
	}
	for _, player := range detail.Players {
		response.Players = append(response.Players, httptransport.PlayerItem{
			PlayerID: player.PlayerID,
			Name:     player.Name,
			Dorsal:   player.Dorsal,
		})
	}
	if detail.Results != nil {
		response.Results = &httptransport.SessionResults{
			Best:  mapRanking(detail.Results.Best),
			Worst: mapRanking(detail.Results.Worst),
		}
	}
	return response, nil
}

func (h Handler) GlobalRankingHandler(ctx context.Context) (httptransport.GlobalRankingResponse, error) {
	entries, err := h.Rankings.GlobalRanking(ctx)
	if err != nil {
		return httptransport.GlobalRankingResponse{}, err
	}
	return httptransport.GlobalRankingResponse{Items: mapRanking(entries)}, nil
}

func (h Handler) MatrixHandler(ctx context.Context) (httptransport.MatrixResponse, error) {
	matrix, err := h.Rankings.GlobalMatrix(ctx)
	if err != nil {
		return httptransport.MatrixResponse{}, err
	}
	response := httptransport.MatrixResponse{
		Columns: make([]httptransport.MatrixColumnItem, 0, len(matrix.Columns)),
		Rows:    make([]httptransport.MatrixRowItem, 0, len(matrix.Rows)),
	}
	for _, column := range matrix.Columns {
		response.Columns = append(response.Columns, httptransport.MatrixColumnItem{
			MatchID: column.MatchID,
			Date:    column.Date,
			Rival:   column.Rival,
			Total:   column.Total,
		})
	}
	for _, row := range matrix.Rows {
		response.Rows = append(response.Rows, httptransport.MatrixRowItem{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			PerMatch: row.PerMatch,
			Total:    row.Total,
		})
	}
	return response, nil
}

func mapMatch(match entities.Match, state entities.SessionState) httptransport.MatchItem {
	return httptransport.MatchItem{
		MatchID: match.MatchID,
		Date:    match.Date,
		Rival:   match.Rival,
		State:   string(state),
	}
}

func mapRanking(entries []services.RankingEntry) []httptransport.RankingItem {
	items := make([]httptransport.RankingItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, httptransport.RankingItem{
			PlayerID: entry.PlayerID,
			Name:     entry.Name,
			Total:    entry.Total,
		})
	}
	return items
}
