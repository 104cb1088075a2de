package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/golstats/match-predictor/internal/models"
	"github.com/golstats/match-predictor/internal/predictor"
)

// ListTeams returns every team the models know
// @Summary List Teams
// @Tags Lookups
// @Produce json
// @Success 200 {object} models.LookupResponse
// @Router /teams [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	h.lookupResponse(w, h.prediction.Teams())
}

// GetTeamPlayers returns the players seen for a team, by role
// @Summary Get Team Players
// @Tags Lookups
// @Produce json
// @Param team path string true "Team name"
// @Success 200 {object} models.TeamPlayers
// @Failure 404 {object} models.ErrorResponse "Unknown team"
// @Router /teams/{team}/players [get]
func (h *Handler) GetTeamPlayers(w http.ResponseWriter, r *http.Request) {
	team := chi.URLParam(r, "team")
	players, err := h.prediction.TeamPlayers(team)
	if err != nil {
		if errors.Is(err, predictor.ErrUnknownCategory) {
			h.errorResponse(w, http.StatusNotFound, "Unknown team: "+team)
			return
		}
		h.logger.Errorw("Failed to list team players", "error", err, "team", team)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to list team players")
		return
	}
	h.jsonResponse(w, http.StatusOK, players)
}

// ListChampions returns the champions seen in a role
// @Summary List Champions
// @Tags Lookups
// @Produce json
// @Param role path string true "Role" Enums(TOP, JUNGLE, MID, ADC, SUPPORT)
// @Success 200 {object} models.LookupResponse
// @Failure 404 {object} models.ErrorResponse "Unknown role"
// @Router /roles/{role}/champions [get]
func (h *Handler) ListChampions(w http.ResponseWriter, r *http.Request) {
	role, ok := h.roleParam(w, r)
	if !ok {
		return
	}
	h.lookupResponse(w, h.prediction.Champions(role))
}

// ListPlayers returns the players seen in a role
// @Summary List Players
// @Tags Lookups
// @Produce json
// @Param role path string true "Role" Enums(TOP, JUNGLE, MID, ADC, SUPPORT)
// @Success 200 {object} models.LookupResponse
// @Failure 404 {object} models.ErrorResponse "Unknown role"
// @Router /roles/{role}/players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	role, ok := h.roleParam(w, r)
	if !ok {
		return
	}
	h.lookupResponse(w, h.prediction.Players(role))
}

// ListRegions returns the regions the models accept
// @Summary List Regions
// @Tags Lookups
// @Produce json
// @Success 200 {object} models.LookupResponse
// @Router /regions [get]
func (h *Handler) ListRegions(w http.ResponseWriter, r *http.Request) {
	h.lookupResponse(w, h.prediction.Regions())
}

// ListPatches returns the patches the models accept, newest first
// @Summary List Patches
// @Tags Lookups
// @Produce json
// @Success 200 {object} models.PatchesResponse
// @Router /patches [get]
func (h *Handler) ListPatches(w http.ResponseWriter, r *http.Request) {
	patches := h.prediction.Patches()
	h.jsonResponse(w, http.StatusOK, models.PatchesResponse{Items: patches, Count: len(patches)})
}

func (h *Handler) roleParam(w http.ResponseWriter, r *http.Request) (models.Role, bool) {
	raw := chi.URLParam(r, "role")
	role, ok := models.ParseRole(raw)
	if !ok {
		h.errorResponse(w, http.StatusNotFound, "Unknown role: "+raw)
	}
	return role, ok
}

func (h *Handler) lookupResponse(w http.ResponseWriter, items []string) {
	if items == nil {
		items = []string{}
	}
	h.jsonResponse(w, http.StatusOK, models.LookupResponse{Items: items, Count: len(items)})
}
