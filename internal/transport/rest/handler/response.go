package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/logger"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/repository"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/service"
)

// maxBodyBytes bounds request bodies; an imported survey travels in one
const maxBodyBytes = 4 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps service errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrSurveyNotFound), errors.Is(err, service.ErrBlockNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNothingToUndo), errors.Is(err, service.ErrNothingToRedo),
		errors.Is(err, repository.ErrVersionConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrActionNotAllowed):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
