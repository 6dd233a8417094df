// internal/api/leagues/handlers.go
package leagues

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/pickleleague/internal/api/apiutil"
	leaguesvc "github.com/codr1/pickleleague/internal/leagues"
	"github.com/codr1/pickleleague/internal/ratelimit"
)

const (
	leagueRequestTimeout = 5 * time.Second
	idPathKey            = "id"
)

var (
	engine     *leaguesvc.Engine
	limiter    *ratelimit.Limiter
	trustProxy bool
)

type scoreRequest struct {
	PlayerID int64                 `json:"playerId"`
	Games    []leaguesvc.GameScore `json:"games"`
}

type confirmRequest struct {
	PlayerID int64 `json:"playerId"`
}

type leagueResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	GameType      string `json:"gameType"`
	RankingMethod string `json:"rankingMethod"`
	Status        string `json:"status"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}

type standingsResponse struct {
	DivisionID int64                    `json:"divisionId"`
	Standings  []leaguesvc.StandingsRow `json:"standings"`
}

// InitHandlers must be called during server startup before handling requests.
// A nil limiter disables rate limiting of score writes.
func InitHandlers(leagueEngine *leaguesvc.Engine, reportLimiter *ratelimit.Limiter, trustForwardedHeader bool) {
	engine = leagueEngine
	limiter = reportLimiter
	trustProxy = trustForwardedHeader
}

// RegisterRoutes mounts the league API on mux.
func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/leagues/{id}", HandleGetLeague)
	mux.HandleFunc("POST /api/v1/leagues/{id}/schedule", HandleGenerateSchedule)
	mux.HandleFunc("GET /api/v1/leagues/{id}/matches", HandleListLeagueMatches)
	mux.HandleFunc("GET /api/v1/matches/{id}", HandleGetMatch)
	mux.HandleFunc("POST /api/v1/matches/{id}/scores", HandleSubmitScore)
	mux.HandleFunc("POST /api/v1/matches/{id}/confirm", HandleConfirmScore)
	mux.HandleFunc("POST /api/v1/matches/{id}/dispute", HandleDisputeScore)
	mux.HandleFunc("GET /api/v1/matches/{id}/disputes", HandleListDisputes)
	mux.HandleFunc("GET /api/v1/divisions/{id}/standings", HandleStandings)
}

// GET /api/v1/leagues/{id}
func HandleGetLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), leagueRequestTimeout)
	defer cancel()

	league, err := engine.GetLeague(ctx, leagueID)
	if err != nil {
		apiutil.WriteError(w, r, handlerError(err))
		return
	}
	writeJSON(w, r, http.StatusOK, leagueResponse{
		ID:            league.ID,
		Name:          league.Name,
		GameType:      string(league.GameType),
		RankingMethod: string(league.RankingMethod),
		Status:        string(league.Status),
		StartDate:     league.Dates.SeasonStart.Format(time.DateOnly),
		EndDate:       league.Dates.SeasonEnd.Format(time.DateOnly),
	})
}

// POST /api/v1/leagues/{id}/schedule
func HandleGenerateSchedule(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), leagueRequestTimeout)
	defer cancel()

	result, err := engine.GenerateSchedule(ctx, leagueID)
	if err != nil {
		apiutil.WriteError(w, r, handlerError(err))
		return
	}
	writeJSON(w, r, http.StatusCreated, result)
}

// GET /api/v1/leagues/{id}/matches
func HandleListLeagueMatches(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), leagueRequestTimeout)
	defer cancel()

	matches, err := engine.ListLeagueMatches(ctx, leagueID)
	if err != nil {
		apiutil.WriteError(w, r, handlerError(err))
		return
	}
	writeJSON(w, r, http.StatusOK, matches)
}

// GET /api/v1/matches/{id}
func HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), leagueRequestTimeout)
	defer cancel()

	match, err := engine.GetMatch(ctx, matchID)
	if err != nil {
		apiutil.WriteError(w, r, handlerError(err))
		return
	}
	writeJSON(w, r, http.StatusOK, match)
}

// POST /api/v1/matches/{id}/scores
func HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req scoreRequest
	if !decodeScoreRequest(w, r, &req) {
		return
	}
	if !allowReport(w, r, "submit", req.PlayerID) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), leagueRequestTimeout)
	defer cancel()

	match, err := engine.SubmitScore(ctx, matchID, req.PlayerID, req.Games)
	if err != nil {
		apiutil.WriteError(w, r, handlerError(err))
		return
	}
	writeJSON(w, r, http.StatusOK, match)
}

// POST /api/v1/matches/{id}/confirm
func HandleConfirmScore(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req confirmRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return
	}
	if err := apiutil.RequirePositive(req.PlayerID, "playerId"); err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return
	}
	if !allowReport(w, r, "confirm", req.PlayerID) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), leagueRequestTimeout)
	defer cancel()

	match, err := engine.ConfirmScore(ctx, matchID, req.PlayerID)
	if err != nil {
		apiutil.WriteError(w, r, handlerError(err))
		return
	}
	writeJSON(w, r, http.StatusOK, match)
}

// POST /api/v1/matches/{id}/dispute
func HandleDisputeScore(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req scoreRequest
	if !decodeScoreRequest(w, r, &req) {
		return
	}
	if !allowReport(w, r, "dispute", req.PlayerID) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), leagueRequestTimeout)
	defer cancel()

	record, err := engine.DisputeScore(ctx, matchID, req.PlayerID, req.Games)
	if err != nil {
		apiutil.WriteError(w, r, handlerError(err))
		return
	}
	writeJSON(w, r, http.StatusCreated, record)
}

// GET /api/v1/matches/{id}/disputes
func HandleListDisputes(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), leagueRequestTimeout)
	defer cancel()

	records, err := engine.ListDisputes(ctx, matchID)
	if err != nil {
		apiutil.WriteError(w, r, handlerError(err))
		return
	}
	writeJSON(w, r, http.StatusOK, records)
}

// GET /api/v1/divisions/{id}/standings
func HandleStandings(w http.ResponseWriter, r *http.Request) {
	divisionID, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), leagueRequestTimeout)
	defer cancel()

	rows, err := engine.ComputeStandings(ctx, divisionID)
	if err != nil {
		apiutil.WriteError(w, r, handlerError(err))
		return
	}
	writeJSON(w, r, http.StatusOK, standingsResponse{DivisionID: divisionID, Standings: rows})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := apiutil.PathID(r, idPathKey)
	if err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return 0, false
	}
	return id, true
}

func decodeScoreRequest(w http.ResponseWriter, r *http.Request, req *scoreRequest) bool {
	if err := apiutil.DecodeJSON(r, req); err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return false
	}
	if err := apiutil.RequirePositive(req.PlayerID, "playerId"); err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return false
	}
	return true
}

// allowReport applies the score-write rate limit and counts the attempt.
func allowReport(w http.ResponseWriter, r *http.Request, action string, playerID int64) bool {
	if limiter == nil {
		return true
	}
	ip := ratelimit.GetClientIP(r, trustProxy)
	result := limiter.CheckReport(playerID, ip)
	if !result.Allowed {
		ratelimit.LogRateLimitExceeded(action, playerID, ip, result.Reason)
		retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		apiutil.WriteError(w, r, apiutil.HandlerError{
			Status:  http.StatusTooManyRequests,
			Message: "Too many score reports, try again later",
			Details: map[string]any{"retryAfterSeconds": retryAfter},
		})
		return false
	}
	limiter.RecordReport(playerID, ip)
	return true
}

func badRequest(err error) apiutil.HandlerError {
	return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
}

// handlerError maps engine errors onto HTTP responses.
func handlerError(err error) apiutil.HandlerError {
	var integrityErr *leaguesvc.ScoreIntegrityError
	switch {
	case errors.As(err, &integrityErr):
		return apiutil.HandlerError{
			Status:  http.StatusUnprocessableEntity,
			Message: integrityErr.Error(),
			Details: map[string]int{"game": integrityErr.Game},
			Err:     err,
		}
	case errors.Is(err, leaguesvc.ErrInvalidInput):
		return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	case errors.Is(err, leaguesvc.ErrUnauthorized):
		return apiutil.HandlerError{Status: http.StatusForbidden, Message: "Player is not a participant in this match", Err: err}
	case errors.Is(err, leaguesvc.ErrNotFound):
		return apiutil.HandlerError{Status: http.StatusNotFound, Message: err.Error(), Err: err}
	case errors.Is(err, leaguesvc.ErrConflict), errors.Is(err, leaguesvc.ErrPreconditionFailed):
		return apiutil.HandlerError{Status: http.StatusConflict, Message: err.Error(), Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return apiutil.HandlerError{Status: http.StatusServiceUnavailable, Message: "Request timed out", Err: err}
	default:
		return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error", Err: err}
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if err := apiutil.WriteJSON(w, status, payload); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write response")
	}
}
