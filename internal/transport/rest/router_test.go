package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/cache"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/engine"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/idgen"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/logger"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/repository"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/service"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/transport/ws"
)

type testServer struct {
	handler http.Handler
	hub     *ws.Hub
}

func newTestServer() *testServer {
	log := logger.NewNop()
	repo := repository.NewMemorySurveyRepo()
	history := cache.NewMemoryHistoryCache(10)
	eng := engine.New(idgen.NewSequence(1))
	hub := ws.NewHub(log)

	surveys := service.NewSurveyService(repo, history, eng, log)
	editor := service.NewEditorService(repo, history, eng, log)
	surveys.SetBroadcaster(hub)
	editor.SetBroadcaster(hub)

	return &testServer{
		handler: NewRouter(&Container{
			SurveyService: surveys,
			EditorService: editor,
			WSHub:         hub,
			Log:           log,
		}),
		hub: hub,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) create(t *testing.T, body string) *model.SurveyDocument {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/v1/surveys", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	doc := decode[model.SurveyDocument](t, rec)
	return &doc
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodOptions, "/v1/surveys", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSurveyLifecycle(t *testing.T) {
	s := newTestServer()

	doc := s.create(t, `{"title":"Pulse"}`)
	assert.Equal(t, "Pulse", doc.Survey.Title)
	assert.Equal(t, int64(1), doc.Version)

	rec := s.do(t, http.MethodGet, "/v1/surveys/"+doc.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, doc.Survey, decode[model.SurveyDocument](t, rec).Survey)

	rec = s.do(t, http.MethodGet, "/v1/surveys", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Surveys []model.SurveyDocument `json:"surveys"`
	}](t, rec)
	assert.Len(t, list.Surveys, 1)

	rec = s.do(t, http.MethodDelete, "/v1/surveys/"+doc.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/surveys/"+doc.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreate_ImportsSurvey(t *testing.T) {
	s := newTestServer()

	doc := s.create(t, `{"title":"Imported","survey":{"blocks":[{"id":"b1","title":"Only","questions":[
		{"id":"q1","type":"Radio","text":"Pick"},
		{"id":"q2","type":"TextEntry","text":"Why"}
	]}]}}`)

	assert.Equal(t, "Imported", doc.Survey.Title)
	assert.Equal(t, "BL1", doc.Survey.Blocks[0].BID)
	assert.Equal(t, "Q2", doc.Survey.Blocks[0].Questions[1].QID)
}

func TestCreate_BadBody(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodPost, "/v1/surveys", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDispatchUndoRedo(t *testing.T) {
	s := newTestServer()
	doc := s.create(t, `{"title":"v1"}`)
	base := "/v1/surveys/" + doc.ID

	rec := s.do(t, http.MethodPost, base+"/actions", `{"type":"UPDATE_SURVEY_TITLE","payload":{"title":"v2"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[service.DispatchResult](t, rec)
	assert.True(t, res.Changed)
	assert.Equal(t, int64(2), res.Version)
	assert.Equal(t, "v2", res.Survey.Title)

	rec = s.do(t, http.MethodPost, base+"/undo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1", decode[service.DispatchResult](t, rec).Survey.Title)

	rec = s.do(t, http.MethodPost, base+"/undo", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, base+"/redo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v2", decode[service.DispatchResult](t, rec).Survey.Title)
}

func TestDispatch_Errors(t *testing.T) {
	s := newTestServer()
	doc := s.create(t, `{"title":"Pulse"}`)
	base := "/v1/surveys/" + doc.ID

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown action", base + "/actions", `{"type":"LAUNCH"}`, http.StatusBadRequest},
		{"bad payload", base + "/actions", `{"type":"DELETE_BLOCK","payload":{"blockId":1}}`, http.StatusBadRequest},
		{"not json", base + "/actions", `nope`, http.StatusBadRequest},
		{"restore from client", base + "/actions", `{"type":"RESTORE_STATE","payload":{"survey":{}}}`, http.StatusBadRequest},
		{"missing survey", "/v1/surveys/000000000000000000000000/actions", `{"type":"UPDATE_SURVEY_TITLE","payload":{"title":"x"}}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Contains(t, decode[map[string]string](t, rec), "error")
		})
	}
}

func TestValidationAndPages(t *testing.T) {
	s := newTestServer()
	doc := s.create(t, `{"survey":{"title":"Branchy","blocks":[{"id":"b1","title":"Only","questions":[
		{"id":"q1","type":"TextEntry","text":"One"},
		{"id":"q2","type":"TextEntry","text":"Two","skipLogic":{"type":"simple","skipTo":"Q3","isConfirmed":true}},
		{"id":"q3","type":"TextEntry","text":"Three"}
	]}]}}`)
	base := "/v1/surveys/" + doc.ID

	rec := s.do(t, http.MethodPost, base+"/actions", `{"type":"MOVE_QUESTION","payload":{"questionId":"q3","targetQuestionId":"q2"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logic on Q3 is now invalid. Please review.", decode[service.DispatchResult](t, rec).Warning)

	rec = s.do(t, http.MethodGet, base+"/validation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Q3"}, decode[service.ValidationReport](t, rec).InvalidQuestions)

	rec = s.do(t, http.MethodGet, base+"/blocks/b1/pages", "")
	require.Equal(t, http.StatusOK, rec.Code)
	pages := decode[struct {
		Pages [][]model.Question `json:"pages"`
	}](t, rec)
	require.Len(t, pages.Pages, 1)
	assert.Len(t, pages.Pages[0], 3)

	rec = s.do(t, http.MethodGet, base+"/blocks/nope/pages", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebSocket_PushesUpdates(t *testing.T) {
	s := newTestServer()
	doc := s.create(t, `{"title":"Live"}`)

	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws/surveys/" + doc.ID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.Editors(doc.ID) == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Post(srv.URL+"/v1/surveys/"+doc.ID+"/actions", "application/json",
		bytes.NewBufferString(`{"type":"UPDATE_SURVEY_TITLE","payload":{"title":"Live 2"}}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, ws.MessageType(service.MsgSurveyUpdated), msg.Type)

	var payload struct {
		Version int64        `json:"version"`
		Survey  model.Survey `json:"survey"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, int64(2), payload.Version)
	assert.Equal(t, "Live 2", payload.Survey.Title)
}

func TestWebSocket_UnknownSurvey(t *testing.T) {
	s := newTestServer()
	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws/surveys/000000000000000000000000"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
