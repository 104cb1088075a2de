package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/golstats/match-predictor/internal/models"
	"github.com/golstats/match-predictor/internal/predictor"
)

// PredictMatch scores a match with every model
// @Summary Predict Match
// @Description Scores a hypothetical match with the voting ensemble and the elastic net
// @Tags Predictions
// @Accept json
// @Produce json
// @Param spec body models.MatchSpecification true "Match specification"
// @Success 200 {object} models.PredictionResponse
// @Failure 400 {object} models.ErrorResponse "Invalid JSON"
// @Failure 422 {object} models.ErrorResponse "Unknown category or incomplete roster"
// @Router /predictions [post]
func (h *Handler) PredictMatch(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.decodeSpec(w, r)
	if !ok {
		return
	}

	resp, err := h.prediction.Predict(r.Context(), spec)
	if err != nil {
		h.predictionError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, resp)
}

// PredictMatchModel scores a match with one model
// @Summary Predict Match With Model
// @Tags Predictions
// @Accept json
// @Produce json
// @Param model path string true "Model name" Enums(voting, elastic)
// @Param spec body models.MatchSpecification true "Match specification"
// @Success 200 {object} models.PredictionResponse
// @Failure 404 {object} models.ErrorResponse "Unknown model"
// @Failure 422 {object} models.ErrorResponse "Unknown category or incomplete roster"
// @Router /predictions/{model} [post]
func (h *Handler) PredictMatchModel(w http.ResponseWriter, r *http.Request) {
	model := strings.ToLower(chi.URLParam(r, "model"))
	if _, ok := models.ModelLabels[model]; !ok {
		h.errorResponse(w, http.StatusNotFound, "Unknown model: "+model)
		return
	}

	spec, ok := h.decodeSpec(w, r)
	if !ok {
		return
	}

	resp, err := h.prediction.PredictModel(r.Context(), spec, model)
	if err != nil {
		h.predictionError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, resp)
}

// decodeSpec reads and validates the request body. It writes the error
// response itself and returns false on failure.
func (h *Handler) decodeSpec(w http.ResponseWriter, r *http.Request) (*models.MatchSpecification, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var spec models.MatchSpecification
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}

	if spec.Patch.IsZero() {
		h.fieldErrorResponse(w, http.StatusUnprocessableEntity, "patch", "patch is required")
		return nil, false
	}
	if err := h.validator.Struct(&spec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Namespace()
			if _, rest, found := strings.Cut(field, "."); found {
				field = rest
			}
			h.fieldErrorResponse(w, http.StatusUnprocessableEntity, field, "failed on "+verrs[0].Tag())
			return nil, false
		}
		h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	return &spec, true
}

func (h *Handler) predictionError(w http.ResponseWriter, err error) {
	var unknown *predictor.UnknownCategoryError
	var roster *predictor.RosterError
	switch {
	case errors.As(err, &unknown):
		h.fieldErrorResponse(w, http.StatusUnprocessableEntity, unknown.Field, unknown.Error())
	case errors.As(err, &roster):
		h.fieldErrorResponse(w, http.StatusUnprocessableEntity, roster.Field, roster.Error())
	case errors.Is(err, predictor.ErrUnknownModel):
		h.errorResponse(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Errorw("Prediction failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to score match")
	}
}
