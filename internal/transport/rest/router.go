package rest

import (
	"errors"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/logger"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/service"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/transport/rest/handler"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/transport/rest/middleware"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	SurveyService      *service.SurveyService
	EditorService      *service.EditorService
	WSHub              *ws.Hub
	Log                *logger.Logger
	CORSAllowedOrigins string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	surveyHandler := handler.NewSurveyHandler(c.SurveyService, c.Log)
	editorHandler := handler.NewEditorHandler(c.EditorService, c.Log)
	wsHandler := ws.NewHandler(c.WSHub, surveyExists(c.SurveyService), c.Log)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSAllowedOrigins))
	r.Use(middleware.RequestLogger(c.Log))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")

	v1.HandleFunc("/surveys/{surveyId}/actions", editorHandler.Dispatch).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/undo", editorHandler.Undo).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/redo", editorHandler.Redo).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/validation", editorHandler.Validation).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/blocks/{blockId}/pages", editorHandler.Pages).Methods("GET", "OPTIONS")

	// WebSocket routes
	v1.HandleFunc("/ws/surveys/{surveyId}", wsHandler.SurveyWS).Methods("GET")

	return r
}

func surveyExists(svc *service.SurveyService) ws.SurveyLookup {
	return func(r *http.Request, surveyID string) (bool, error) {
		_, err := svc.Get(r.Context(), surveyID)
		if errors.Is(err, service.ErrSurveyNotFound) {
			return false, nil
		}
		return err == nil, err
	}
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}

	allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
	if allowedMethods == "" {
		allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	}

	allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
	if allowedHeaders == "" {
		allowedHeaders = "Content-Type, Authorization"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
