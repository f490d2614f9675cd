package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/logger"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/service"
)

// SurveyHandler handles survey endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
	log       *logger.Logger
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService, log *logger.Logger) *SurveyHandler {
	return &SurveyHandler{
		surveySvc: surveySvc,
		log:       log,
	}
}

// CreateSurveyRequest is the request body for creating a survey. When
// Survey is set it is imported instead of starting from an empty survey.
type CreateSurveyRequest struct {
	Title  string        `json:"title"`
	Survey *model.Survey `json:"survey,omitempty"`
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSurveyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		doc *model.SurveyDocument
		err error
	)
	if req.Survey != nil {
		if req.Title != "" {
			req.Survey.Title = req.Title
		}
		doc, err = h.surveySvc.Import(r.Context(), req.Survey)
	} else {
		doc, err = h.surveySvc.Create(r.Context(), req.Title)
	}
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.surveySvc.Get(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// List handles GET /v1/surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.surveySvc.List(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": docs})
}

// Delete handles DELETE /v1/surveys/{surveyId}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.surveySvc.Delete(r.Context(), mux.Vars(r)["surveyId"]); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
