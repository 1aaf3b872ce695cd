package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gridironlabs/playoff-system/middleware"
	"github.com/gridironlabs/playoff-system/models"
	"github.com/gridironlabs/playoff-system/services"
)

type PlayoffHandler struct {
	orchestrator services.OrchestratorService
	stateService services.StateService
}

func NewPlayoffHandler(orchestrator services.OrchestratorService, stateService services.StateService) *PlayoffHandler {
	return &PlayoffHandler{orchestrator: orchestrator, stateService: stateService}
}

type startPlayoffsInput struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
}

func (h *PlayoffHandler) Start(w http.ResponseWriter, r *http.Request) {
	dynastyID, ok := middleware.DynastyIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "missing dynasty identity")
		return
	}

	var input startPlayoffsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		badRequestResponse(w, r, errors.New("start_date must be formatted YYYY-MM-DD"))
		return
	}

	bracket, err := h.orchestrator.StartPlayoffs(r.Context(), dynastyID, startDate)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayoffHandler) AdvanceDay(w http.ResponseWriter, r *http.Request) {
	dynastyID, ok := middleware.DynastyIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "missing dynasty identity")
		return
	}

	summary, err := h.orchestrator.AdvanceDay(r.Context(), dynastyID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"day": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayoffHandler) State(w http.ResponseWriter, r *http.Request) {
	dynastyID, ok := middleware.DynastyIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "missing dynasty identity")
		return
	}

	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil || season <= 0 {
		badRequestResponse(w, r, errors.New("invalid season"))
		return
	}

	snapshot, err := h.stateService.Snapshot(r.Context(), dynastyID, season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"state": snapshot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Bracket returns one round's generated matchups, 404 until the round has
// been generated.
func (h *PlayoffHandler) Bracket(w http.ResponseWriter, r *http.Request) {
	dynastyID, ok := middleware.DynastyIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "missing dynasty identity")
		return
	}

	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil || season <= 0 {
		badRequestResponse(w, r, errors.New("invalid season"))
		return
	}
	round := models.Round(chi.URLParam(r, "round"))
	if !round.IsValid() {
		badRequestResponse(w, r, errors.New("round must be one of wildcard, divisional, conference, championship"))
		return
	}

	snapshot, err := h.stateService.Snapshot(r.Context(), dynastyID, season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	bracket, ok := snapshot.Brackets[round]
	if !ok {
		notFoundResponse(w, r)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type reportGameInput struct {
	GameID    string `json:"game_id"`
	AwayScore int    `json:"away_score"`
	HomeScore int    `json:"home_score"`
}

// ReportGame records an externally supplied final score for a scheduled
// game, bypassing the simulator.
func (h *PlayoffHandler) ReportGame(w http.ResponseWriter, r *http.Request) {
	dynastyID, ok := middleware.DynastyIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "missing dynasty identity")
		return
	}

	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil || season <= 0 {
		badRequestResponse(w, r, errors.New("invalid season"))
		return
	}

	var input reportGameInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.GameID == "" {
		badRequestResponse(w, r, errors.New("game_id is required"))
		return
	}

	game, err := h.stateService.ReportResult(r.Context(), dynastyID, season, input.GameID,
		models.GameResults{AwayScore: input.AwayScore, HomeScore: input.HomeScore})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Rebuild drops the cached state and reconstructs it from the persisted
// event log, returning the rebuilt snapshot.
func (h *PlayoffHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	dynastyID, ok := middleware.DynastyIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "missing dynasty identity")
		return
	}

	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil || season <= 0 {
		badRequestResponse(w, r, errors.New("invalid season"))
		return
	}

	state, err := h.stateService.Rebuild(r.Context(), dynastyID, season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"state": state.Snapshot()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Validate runs the read-only consistency checks against the persisted
// event log and reports the findings without mutating anything.
func (h *PlayoffHandler) Validate(w http.ResponseWriter, r *http.Request) {
	dynastyID, ok := middleware.DynastyIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "missing dynasty identity")
		return
	}

	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil || season <= 0 {
		badRequestResponse(w, r, errors.New("invalid season"))
		return
	}

	var today time.Time
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		today, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			badRequestResponse(w, r, errors.New("date must be formatted YYYY-MM-DD"))
			return
		}
	}

	findings, err := h.stateService.Validate(r.Context(), dynastyID, season, today)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"findings": findings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
