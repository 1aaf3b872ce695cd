package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gridironlabs/playoff-system/middleware"
	"github.com/gridironlabs/playoff-system/services"
)

type SeedingHandler struct {
	seedingService services.SeedingService
}

func NewSeedingHandler(seedingService services.SeedingService) *SeedingHandler {
	return &SeedingHandler{seedingService: seedingService}
}

type calculateSeedingInput struct {
	Season int `json:"season"`
	Week   int `json:"week"`
}

func (h *SeedingHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	dynastyID, ok := middleware.DynastyIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "missing dynasty identity")
		return
	}

	var input calculateSeedingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Season <= 0 || input.Week <= 0 {
		badRequestResponse(w, r, errors.New("season and week are required"))
		return
	}

	seeding, err := h.seedingService.Calculate(r.Context(), dynastyID, input.Season, input.Week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"seeding": seeding}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeedingHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	seeding, err := h.seedingService.Get(r.Context(), dynastyID, season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"seeding": seeding}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
