package service

import (
	"context"
	"fmt"
	"time"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/cache"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/engine"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/logger"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/metrics"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/repository"
)

// DispatchResult is the survey state after an edit
type DispatchResult struct {
	Survey  *model.Survey `json:"survey"`
	Version int64         `json:"version"`
	Changed bool          `json:"changed"`
	Warning string        `json:"warning,omitempty"`
}

// ValidationReport lists the questions whose logic no longer resolves
type ValidationReport struct {
	InvalidQuestions []string `json:"invalidQuestions"`
	Message          string   `json:"message,omitempty"`
}

// EditorService applies editor actions to stored surveys
type EditorService struct {
	surveyRepo  repository.SurveyRepo
	history     cache.HistoryCache
	engine      *engine.Engine
	broadcaster Broadcaster
	log         *logger.Logger

	locks surveyLocks
}

// NewEditorService creates a new editor service
func NewEditorService(
	surveyRepo repository.SurveyRepo,
	history cache.HistoryCache,
	eng *engine.Engine,
	log *logger.Logger,
) *EditorService {
	return &EditorService{
		surveyRepo: surveyRepo,
		history:    history,
		engine:     eng,
		log:        log,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *EditorService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Dispatch reduces action against the stored survey. Edits that change
// question order are checked for logic that no longer resolves and the
// result is recorded on the survey.
func (s *EditorService) Dispatch(ctx context.Context, surveyID string, action engine.Action) (*DispatchResult, error) {
	actionType := string(action.Type())
	if _, ok := action.(engine.RestoreState); ok {
		metrics.ObserveAction(actionType, metrics.ResultRejected)
		return nil, ErrActionNotAllowed
	}

	unlock := s.locks.lock(surveyID)
	defer unlock()

	doc, err := s.load(ctx, surveyID)
	if err != nil {
		metrics.ObserveAction(actionType, metrics.ResultError)
		return nil, err
	}

	current := &doc.Survey
	start := time.Now()
	next := s.engine.Reduce(current, action)
	metrics.ObserveReduce(actionType, time.Since(start))

	if next == current {
		metrics.ObserveAction(actionType, metrics.ResultNoop)
		return &DispatchResult{Survey: current, Version: doc.Version}, nil
	}

	var warning string
	if engine.ChangesOrder(action) {
		if warning = engine.ValidateLogicAfterMove(next); warning != "" {
			next = s.engine.Reduce(next, engine.SetLogicValidationMessage{Message: warning})
			metrics.ObserveLogicWarning()
		}
	}

	version, err := s.save(ctx, doc, next)
	if err != nil {
		metrics.ObserveAction(actionType, metrics.ResultError)
		return nil, err
	}

	if err := s.history.Push(ctx, surveyID, cache.Undo, current); err != nil {
		s.log.Warn("failed to record undo snapshot", "surveyId", surveyID, "action", actionType, "error", err)
	}
	if err := s.history.Clear(ctx, surveyID, cache.Redo); err != nil {
		s.log.Warn("failed to clear redo history", "surveyId", surveyID, "error", err)
	}

	metrics.ObserveAction(actionType, metrics.ResultApplied)
	s.log.Debug("action applied", "surveyId", surveyID, "action", actionType, "version", version)

	s.publish(surveyID, actionType, next, version, warning)
	return &DispatchResult{Survey: next, Version: version, Changed: true, Warning: warning}, nil
}

// Undo restores the survey state preceding the last edit
func (s *EditorService) Undo(ctx context.Context, surveyID string) (*DispatchResult, error) {
	return s.travel(ctx, surveyID, cache.Undo, cache.Redo, ErrNothingToUndo)
}

// Redo reapplies the last undone edit
func (s *EditorService) Redo(ctx context.Context, surveyID string) (*DispatchResult, error) {
	return s.travel(ctx, surveyID, cache.Redo, cache.Undo, ErrNothingToRedo)
}

// travel moves one snapshot from the from stack into the survey and pushes
// the replaced state onto the to stack
func (s *EditorService) travel(ctx context.Context, surveyID string, from, to cache.Stack, empty error) (*DispatchResult, error) {
	unlock := s.locks.lock(surveyID)
	defer unlock()

	doc, err := s.load(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.history.Pop(ctx, surveyID, from)
	if err != nil {
		metrics.ObserveHistory(string(from), metrics.ResultError)
		return nil, fmt.Errorf("failed to read %s history: %w", from, err)
	}
	if snapshot == nil {
		metrics.ObserveHistory(string(from), metrics.ResultNoop)
		return nil, empty
	}

	current := &doc.Survey
	next := s.engine.Reduce(current, engine.RestoreState{Survey: snapshot})

	version, err := s.save(ctx, doc, next)
	if err != nil {
		if perr := s.history.Push(ctx, surveyID, from, snapshot); perr != nil {
			s.log.Error("failed to return snapshot to history", "surveyId", surveyID, "stack", from, "error", perr)
		}
		metrics.ObserveHistory(string(from), metrics.ResultError)
		return nil, err
	}
	if err := s.history.Push(ctx, surveyID, to, current); err != nil {
		s.log.Warn("failed to record history snapshot", "surveyId", surveyID, "stack", to, "error", err)
	}

	metrics.ObserveHistory(string(from), metrics.ResultApplied)
	s.log.Debug("history restored", "surveyId", surveyID, "stack", from, "version", version)

	s.publish(surveyID, string(engine.ActionRestoreState), next, version, "")
	return &DispatchResult{Survey: next, Version: version, Changed: true}, nil
}

// Pages splits a block into the pages a respondent would see
func (s *EditorService) Pages(ctx context.Context, surveyID, blockID string) ([][]model.Question, error) {
	doc, err := s.load(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	i := doc.Survey.BlockIndex(blockID)
	if i < 0 {
		return nil, ErrBlockNotFound
	}
	return engine.PagesForBlock(doc.Survey.Blocks[i]), nil
}

// Validation reports the questions whose logic references no longer resolve
func (s *EditorService) Validation(ctx context.Context, surveyID string) (*ValidationReport, error) {
	doc, err := s.load(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	invalid := engine.InvalidLogicQuestions(&doc.Survey)
	if invalid == nil {
		invalid = []string{}
	}
	return &ValidationReport{
		InvalidQuestions: invalid,
		Message:          engine.ValidateLogicAfterMove(&doc.Survey),
	}, nil
}

func (s *EditorService) load(ctx context.Context, surveyID string) (*model.SurveyDocument, error) {
	doc, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}
	if doc == nil {
		return nil, ErrSurveyNotFound
	}
	return doc, nil
}

func (s *EditorService) save(ctx context.Context, doc *model.SurveyDocument, next *model.Survey) (int64, error) {
	version, err := s.surveyRepo.Update(ctx, doc.ID, next, doc.Version)
	if err != nil {
		return 0, fmt.Errorf("failed to save survey: %w", err)
	}
	return version, nil
}

func (s *EditorService) publish(surveyID, actionType string, survey *model.Survey, version int64, warning string) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToSurvey(surveyID, MsgSurveyUpdated, map[string]interface{}{
		"surveyId": surveyID,
		"action":   actionType,
		"version":  version,
		"survey":   survey,
	})
	if warning != "" {
		s.broadcaster.BroadcastToSurvey(surveyID, MsgLogicWarning, map[string]string{
			"surveyId": surveyID,
			"message":  warning,
		})
	}
}
