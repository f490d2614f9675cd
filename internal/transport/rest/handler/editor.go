package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/engine"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/logger"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/service"
)

// EditorHandler handles editing endpoints
type EditorHandler struct {
	editorSvc *service.EditorService
	log       *logger.Logger
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(editorSvc *service.EditorService, log *logger.Logger) *EditorHandler {
	return &EditorHandler{
		editorSvc: editorSvc,
		log:       log,
	}
}

// Dispatch handles POST /v1/surveys/{surveyId}/actions
// Body: {"type": "MOVE_QUESTION", "payload": {...}}
func (h *EditorHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	action, err := engine.DecodeAction(body)
	if err != nil {
		if errors.Is(err, engine.ErrUnknownAction) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid action: "+err.Error())
		return
	}

	res, err := h.editorSvc.Dispatch(r.Context(), mux.Vars(r)["surveyId"], action)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Undo handles POST /v1/surveys/{surveyId}/undo
func (h *EditorHandler) Undo(w http.ResponseWriter, r *http.Request) {
	res, err := h.editorSvc.Undo(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Redo handles POST /v1/surveys/{surveyId}/redo
func (h *EditorHandler) Redo(w http.ResponseWriter, r *http.Request) {
	res, err := h.editorSvc.Redo(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Validation handles GET /v1/surveys/{surveyId}/validation
func (h *EditorHandler) Validation(w http.ResponseWriter, r *http.Request) {
	report, err := h.editorSvc.Validation(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Pages handles GET /v1/surveys/{surveyId}/blocks/{blockId}/pages
func (h *EditorHandler) Pages(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pages, err := h.editorSvc.Pages(r.Context(), vars["surveyId"], vars["blockId"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"pages": pages})
}
