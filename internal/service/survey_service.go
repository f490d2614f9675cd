package service

import (
	"context"
	"fmt"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/cache"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/engine"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/logger"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/repository"
)

// SurveyService handles survey lifecycle operations
type SurveyService struct {
	surveyRepo  repository.SurveyRepo
	history     cache.HistoryCache
	engine      *engine.Engine
	broadcaster Broadcaster
	log         *logger.Logger
}

// NewSurveyService creates a new survey service
func NewSurveyService(
	surveyRepo repository.SurveyRepo,
	history cache.HistoryCache,
	eng *engine.Engine,
	log *logger.Logger,
) *SurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
		history:    history,
		engine:     eng,
		log:        log,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SurveyService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create stores a new survey with a single default block
func (s *SurveyService) Create(ctx context.Context, title string) (*model.SurveyDocument, error) {
	doc, err := s.surveyRepo.Create(ctx, s.engine.NewSurvey(title))
	if err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}
	s.log.Info("survey created", "surveyId", doc.ID)
	return doc, nil
}

// Import normalizes an externally built survey and stores it
func (s *SurveyService) Import(ctx context.Context, survey *model.Survey) (*model.SurveyDocument, error) {
	if survey == nil {
		return nil, fmt.Errorf("failed to import survey: empty document")
	}
	normalized := s.engine.Reduce(nil, engine.ReplaceSurvey{Survey: survey})
	doc, err := s.surveyRepo.Create(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to import survey: %w", err)
	}
	s.log.Info("survey imported", "surveyId", doc.ID, "blocks", len(normalized.Blocks))
	return doc, nil
}

// Get retrieves a survey document by ID
func (s *SurveyService) Get(ctx context.Context, id string) (*model.SurveyDocument, error) {
	doc, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	if doc == nil {
		return nil, ErrSurveyNotFound
	}
	return doc, nil
}

// List retrieves all surveys, most recently edited first
func (s *SurveyService) List(ctx context.Context) ([]*model.SurveyDocument, error) {
	docs, err := s.surveyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	return docs, nil
}

// Delete removes a survey together with its edit history and closes the
// editor connections watching it
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	if err := s.history.Clear(ctx, id); err != nil {
		s.log.Warn("failed to clear survey history", "surveyId", id, "error", err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSurvey(id, MsgSurveyDeleted, map[string]string{"surveyId": id})
		s.broadcaster.DisconnectSurvey(id)
	}
	s.log.Info("survey deleted", "surveyId", id)
	return nil
}
