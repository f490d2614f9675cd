package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/cache"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/engine"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/idgen"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/logger"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/repository"
)

func depth(t *testing.T, h cache.HistoryCache, surveyID string, stack cache.Stack) int64 {
	t.Helper()
	n, err := h.Len(context.Background(), surveyID, stack)
	require.NoError(t, err)
	return n
}

type sentMessage struct {
	surveyID string
	msgType  string
	payload  interface{}
}

// recorder is a Broadcaster that keeps everything it is asked to send
type recorder struct {
	mu           sync.Mutex
	sent         []sentMessage
	disconnected []string
}

func (r *recorder) BroadcastToSurvey(surveyID string, msgType string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMessage{surveyID: surveyID, msgType: msgType, payload: payload})
}

func (r *recorder) DisconnectSurvey(surveyID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disconnected = append(r.disconnected, surveyID)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, m := range r.sent {
		out = append(out, m.msgType)
	}
	return out
}

type testEnv struct {
	repo    repository.SurveyRepo
	history cache.HistoryCache
	sent    *recorder
	surveys *SurveyService
	editor  *EditorService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:    repository.NewMemorySurveyRepo(),
		history: cache.NewMemoryHistoryCache(50),
		sent:    &recorder{},
	}
	eng := engine.New(idgen.NewSequence(1))
	log := logger.NewNop()
	env.surveys = NewSurveyService(env.repo, env.history, eng, log)
	env.surveys.SetBroadcaster(env.sent)
	env.editor = NewEditorService(env.repo, env.history, eng, log)
	env.editor.SetBroadcaster(env.sent)
	return env
}

func radio(id string) model.Question {
	return model.Question{
		ID:   id,
		Type: model.QuestionTypeRadio,
		Text: "text of " + id,
		Choices: []model.Choice{
			{ID: id + "_c1", Text: "Yes"},
			{ID: id + "_c2", Text: "No"},
		},
	}
}

// importBranchy stores b1[q1 q2 q3] where q2 skips to Q3
func importBranchy(t *testing.T, env *testEnv) *model.SurveyDocument {
	t.Helper()
	q2 := radio("q2")
	q2.SkipLogic = &model.SkipLogic{Type: model.SkipSimple, SkipTo: "Q3", IsConfirmed: true}
	doc, err := env.surveys.Import(context.Background(), &model.Survey{
		Title: "Branchy",
		Blocks: []model.Block{
			{ID: "b1", Title: "Screener", Questions: []model.Question{radio("q1"), q2, radio("q3")}},
		},
	})
	require.NoError(t, err)
	return doc
}
