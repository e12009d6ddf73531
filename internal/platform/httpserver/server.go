package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	rosterservice "postmatch/contexts/matchday/roster-service"
	rostererrors "postmatch/contexts/matchday/roster-service/domain/errors"
	rosterhttp "postmatch/contexts/matchday/roster-service/transport/http"
	votingengine "postmatch/contexts/matchday/voting-engine"
	votingerrors "postmatch/contexts/matchday/voting-engine/domain/errors"
	votinghttp "postmatch/contexts/matchday/voting-engine/transport/http"
	"postmatch/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "postmatch/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	adminEmail string
	voting     votingengine.Module
	roster     rosterservice.Module
}

func New(
	voting votingengine.Module,
	roster rosterservice.Module,
	adminEmail string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		voting:     voting,
		roster:     roster,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	s.mux.HandleFunc("GET /api/v1/matches", s.instrument("/api/v1/matches", s.handleMatchList))
	s.mux.HandleFunc("GET /api/v1/matches/{match_id}", s.instrument("/api/v1/matches/{match_id}", s.handleMatchDetail))
	s.mux.HandleFunc("POST /api/v1/matches/{match_id}/ballots", s.instrument("/api/v1/matches/{match_id}/ballots", s.handleSubmitBallot))
	s.mux.HandleFunc("GET /api/v1/rankings/global", s.instrument("/api/v1/rankings/global", s.handleGlobalRanking))
	s.mux.HandleFunc("GET /api/v1/rankings/matrix", s.instrument("/api/v1/rankings/matrix", s.handleMatrix))

	s.mux.HandleFunc("POST /api/v1/admin/matches", s.admin(s.handleAdminCreateMatch))
	s.mux.HandleFunc("GET /api/v1/admin/matches", s.admin(s.handleAdminMatchList))
	s.mux.HandleFunc("POST /api/v1/admin/matches/{match_id}/schedule", s.admin(s.handleAdminScheduleSession))
	s.mux.HandleFunc("POST /api/v1/admin/players", s.admin(s.handleAdminCreatePlayer))
	s.mux.HandleFunc("GET /api/v1/admin/players", s.admin(s.handleAdminPlayerList))
	s.mux.HandleFunc("POST /api/v1/admin/allowed-voters", s.admin(s.handleAdminCreateAllowedVoter))
	s.mux.HandleFunc("GET /api/v1/admin/allowed-voters", s.admin(s.handleAdminAllowedVoterList))
}

// instrument wraps a handler with the HTTP request counters.
func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)
		status := strconv.Itoa(recorder.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, float64(time.Since(start).Milliseconds()))
	}
}

// admin gates roster operations on the configured admin email. An empty
// configured email disables the whole admin surface.
func (s *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Admin-Email")))
		if caller == "" {
			writeRosterError(w, http.StatusUnauthorized, "missing_admin", "X-Admin-Email header is required")
			return
		}
		if s.adminEmail == "" || caller != s.adminEmail {
			writeRosterError(w, http.StatusForbidden, "forbidden", "admin access denied")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleMatchList(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.MatchListHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	metrics.RecordRankingRead("match_list")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMatchDetail(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("match_id")
	email := r.Header.Get("X-Voter-Email")
	resp, err := s.voting.Handler.MatchDetailHandler(r.Context(), matchID, email)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	metrics.RecordRankingRead("match_detail")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitBallot(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.Header.Get("X-Voter-Email"))
	if email == "" {
		metrics.RecordBallotRejected("missing_identity")
		writeVotingError(w, http.StatusUnauthorized, "missing_voter", "X-Voter-Email header is required")
		return
	}

	var req votinghttp.SubmitBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordBallotRejected("invalid_json")
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	matchID := r.PathValue("match_id")
	authUserID := r.Header.Get("X-Auth-User-Id")

	resp, err := s.voting.Handler.SubmitBallotHandler(r.Context(), matchID, email, authUserID, req)
	if err != nil {
		metrics.RecordBallotRejected(ballotRejectionReason(err))
		writeVotingDomainError(w, err)
		return
	}
	metrics.RecordBallotSubmitted()
	if resp.VoterCreated {
		metrics.RecordVoterCreated()
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGlobalRanking(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.GlobalRankingHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	metrics.RecordRankingRead("global")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.MatrixHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	metrics.RecordRankingRead("matrix")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req rosterhttp.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRosterError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.roster.Handler.CreateMatchHandler(r.Context(), req)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAdminMatchList(w http.ResponseWriter, r *http.Request) {
	resp, err := s.roster.Handler.MatchListHandler(r.Context())
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminScheduleSession(w http.ResponseWriter, r *http.Request) {
	var req rosterhttp.ScheduleSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRosterError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.roster.Handler.ScheduleSessionHandler(r.Context(), r.PathValue("match_id"), req)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req rosterhttp.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRosterError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.roster.Handler.CreatePlayerHandler(r.Context(), req)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAdminPlayerList(w http.ResponseWriter, r *http.Request) {
	resp, err := s.roster.Handler.PlayerListHandler(r.Context())
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminCreateAllowedVoter(w http.ResponseWriter, r *http.Request) {
	var req rosterhttp.CreateAllowedVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRosterError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.roster.Handler.CreateAllowedVoterHandler(r.Context(), req)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAdminAllowedVoterList(w http.ResponseWriter, r *http.Request) {
	resp, err := s.roster.Handler.AllowedVoterListHandler(r.Context())
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrNotAuthorized):
		writeVotingError(w, http.StatusForbidden, "not_authorized", err.Error())
	case errors.Is(err, votingerrors.ErrIncompleteOrDuplicateSelection):
		writeVotingError(w, http.StatusUnprocessableEntity, "incomplete_or_duplicate_selection", err.Error())
	case errors.Is(err, votingerrors.ErrPlayerNotEligible):
		writeVotingError(w, http.StatusUnprocessableEntity, "player_not_eligible", err.Error())
	case errors.Is(err, votingerrors.ErrAlreadyVoted):
		writeVotingError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, votingerrors.ErrSessionNotOpen):
		writeVotingError(w, http.StatusConflict, "session_not_open", err.Error())
	case errors.Is(err, votingerrors.ErrMatchNotFound):
		writeVotingError(w, http.StatusNotFound, "match_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrInvalidSubmission):
		writeVotingError(w, http.StatusBadRequest, "invalid_submission", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRosterDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rostererrors.ErrInvalidRequest):
		writeRosterError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, rostererrors.ErrInvalidWindow):
		writeRosterError(w, http.StatusUnprocessableEntity, "invalid_window", err.Error())
	case errors.Is(err, rostererrors.ErrMatchNotFound),
		errors.Is(err, rostererrors.ErrSessionNotFound):
		writeRosterError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, rostererrors.ErrAlreadyScheduled),
		errors.Is(err, rostererrors.ErrDuplicateEmail):
		writeRosterError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeRosterError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func ballotRejectionReason(err error) string {
	switch {
	case errors.Is(err, votingerrors.ErrNotAuthorized):
		return "not_authorized"
	case errors.Is(err, votingerrors.ErrIncompleteOrDuplicateSelection):
		return "incomplete_or_duplicate_selection"
	case errors.Is(err, votingerrors.ErrPlayerNotEligible):
		return "player_not_eligible"
	case errors.Is(err, votingerrors.ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, votingerrors.ErrSessionNotOpen):
		return "session_not_open"
	case errors.Is(err, votingerrors.ErrMatchNotFound):
		return "match_not_found"
	case errors.Is(err, votingerrors.ErrInvalidSubmission):
		return "invalid_submission"
	default:
		return "internal_error"
	}
}

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeRosterError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, rosterhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
