package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/nocap-placify/placify"
	placifyhttp "github.com/nocap-placify/placify/pkg/adapters/http"
	"github.com/nocap-placify/placify/pkg/adapters/memory"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/presentation/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mentorValues = map[string]string{
	"mentor": "Dr. Rao",
	"srn":    "pes1ug20cs001",
	"date":   "2024-03-01",
	"notes":  "Practice graphs.",
}

type response struct {
	Session *domain.Session `json:"session"`
	View    view.View       `json:"view"`
	Error   string          `json:"error"`
	Invalid []string        `json:"invalid"`
}

func newServer(t *testing.T, opts ...placify.Option) (*placifyhttp.Server, *memory.Gateway) {
	t.Helper()
	gw := memory.NewGateway()
	eng, err := placify.New(append([]placify.Option{placify.WithGateway(gw)}, opts...)...)
	require.NoError(t, err)
	srv := placifyhttp.NewServer(eng, placifyhttp.WithVersion("test"))
	t.Cleanup(func() {
		srv.Close()
		_ = eng.Close()
	})
	return srv, gw
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func start(t *testing.T, h http.Handler, wizard string) response {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/wizards/"+wizard+"/sessions", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode(t, rr)
}

func TestGetHealth(t *testing.T) {
	srv, _ := newServer(t)
	rr := do(t, srv.Handler(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetHealth_FailingCheck(t *testing.T) {
	gw := memory.NewGateway()
	eng, err := placify.New(placify.WithGateway(gw))
	require.NoError(t, err)
	defer eng.Close()

	h := placifyhttp.NewHandler(eng, placifyhttp.WithHealthCheck("redis", func(context.Context) error {
		return errors.New("connection refused")
	}))
	rr := do(t, h, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "redis: connection refused")
}

func TestGetInfo(t *testing.T) {
	srv, _ := newServer(t)
	rr := do(t, srv.Handler(), http.MethodGet, "/info", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "placify-http", resp["app"])
	assert.Equal(t, "test", resp["version"])
	assert.Equal(t, "1.0.0", resp["api_version"])
}

func TestOpenAPI_DocumentsEveryRoute(t *testing.T) {
	spec, err := placifyhttp.GetSwagger()
	require.NoError(t, err)
	require.NoError(t, spec.Validate(context.Background()))

	srv, _ := newServer(t)
	undocumented := []string{"/openapi.yaml", "/swagger"}
	err = chi.Walk(srv.Router(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.TrimSuffix(route, "/")
		for _, skip := range undocumented {
			if route == skip {
				return nil
			}
		}
		item := spec.Paths.Find(route)
		if assert.NotNil(t, item, "path %s is not documented", route) {
			assert.NotNil(t, item.GetOperation(method), "%s %s is not documented", method, route)
		}
		return nil
	})
	require.NoError(t, err)

	rr := do(t, srv.Handler(), http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"openapi":"3.0.3"`)
}

func TestOpenAPI_GeneratedSpecMatchesDocument(t *testing.T) {
	doc, err := openapi3.NewLoader().LoadFromFile("openapi.yaml")
	require.NoError(t, err)
	embedded, err := placifyhttp.GetSwagger()
	require.NoError(t, err)

	assert.Equal(t, doc.Info.Version, embedded.Info.Version)
	assert.ElementsMatch(t, doc.Paths.InMatchingOrder(), embedded.Paths.InMatchingOrder(),
		"openapi.gen.go is stale, run go generate")
	for path, item := range doc.Paths.Map() {
		got := embedded.Paths.Value(path)
		require.NotNil(t, got, path)
		for method := range item.Operations() {
			assert.NotNil(t, got.GetOperation(method), "%s %s", method, path)
		}
	}
}

func TestServer_ImplementsGeneratedRoutes(t *testing.T) {
	srv, _ := newServer(t)
	h := placifyhttp.Handler(srv)

	rr := do(t, h, http.MethodGet, "/wizards/"+domain.WizardMentorSession, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodGet, "/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	var body placifyhttp.Error
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "session not found")
}

func TestWizards(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()

	rr := do(t, h, http.MethodGet, "/wizards", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []domain.Definition
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	rr = do(t, h, http.MethodGet, "/wizards/"+domain.WizardMentorSession, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var def domain.Definition
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &def))
	assert.Equal(t, domain.TargetMentorSessions, def.Target)

	rr = do(t, h, http.MethodGet, "/wizards/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWizardGraph(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()

	rr := do(t, h, http.MethodGet, "/wizards/"+domain.WizardMentorSession+"/graph", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "graph LR"))

	s := start(t, h, domain.WizardMentorSession)
	rr = do(t, h, http.MethodGet, "/wizards/"+domain.WizardMentorSession+"/graph?session="+s.Session.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "current")

	rr = do(t, h, http.MethodGet, "/wizards/"+domain.WizardStudentRegistration+"/graph?session="+s.Session.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSessionFlow_Success(t *testing.T) {
	srv, gw := newServer(t)
	h := srv.Handler()

	s := start(t, h, domain.WizardMentorSession)
	id := s.Session.ID
	assert.Equal(t, view.ActionNext, s.View.Action)
	assert.False(t, s.View.CanRetreat)

	rr := do(t, h, http.MethodPut, "/sessions/"+id+"/fields", placifyhttp.SetFieldsRequest{
		Values: map[string]string{"mentor": mentorValues["mentor"], "srn": mentorValues["srn"]},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "PES1UG20CS001", decode(t, rr).Session.Values["srn"])

	rr = do(t, h, http.MethodPost, "/sessions/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodPut, "/sessions/"+id+"/fields", placifyhttp.SetFieldsRequest{
		Values: map[string]string{"date": mentorValues["date"], "notes": mentorValues["notes"]},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/sessions/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode(t, rr)
	assert.Equal(t, view.ActionSubmit, resp.View.Action)
	assert.NotEmpty(t, resp.View.Review)

	rr = do(t, h, http.MethodPost, "/sessions/"+id+"/advance", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodPost, "/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp = decode(t, rr)
	assert.True(t, resp.Session.Submitted)
	assert.False(t, resp.View.Interactive)
	assert.Contains(t, resp.View.Message, view.SuccessMessage)

	subs := gw.Submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, "Practice graphs.", subs[0].Values["advice"])

	rr = do(t, h, http.MethodPost, "/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAdvance_Refused(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()
	s := start(t, h, domain.WizardMentorSession)

	rr := do(t, h, http.MethodPut, "/sessions/"+s.Session.ID+"/fields", placifyhttp.SetFieldsRequest{
		Values: map[string]string{"mentor": "Dr. Rao", "srn": "not-an-srn"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodPost, "/sessions/"+s.Session.ID+"/advance", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, []string{"srn"}, resp.Invalid)
	assert.Equal(t, 0, resp.Session.CurrentStep)
	assert.True(t, resp.Session.Errors["srn"])
}

func TestSetFields_BadRequests(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()
	s := start(t, h, domain.WizardMentorSession)
	path := "/sessions/" + s.Session.ID + "/fields"

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader("{"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPut, path, placifyhttp.SetFieldsRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPut, path, placifyhttp.SetFieldsRequest{Values: map[string]string{"shoe_size": "9"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPut, path, placifyhttp.SetFieldsRequest{Values: map[string]string{"notes": "early"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPut, "/sessions/missing/fields", placifyhttp.SetFieldsRequest{Values: map[string]string{"srn": "x"}})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSubmit_FailureKeepsValues(t *testing.T) {
	srv, gw := newServer(t)
	h := srv.Handler()
	gw.FailWith(&domain.SubmissionError{Reason: domain.ReasonNetwork, Err: errors.New("connection reset")})

	s := start(t, h, domain.WizardMentorSession)
	id := s.Session.ID
	do(t, h, http.MethodPut, "/sessions/"+id+"/fields", placifyhttp.SetFieldsRequest{Values: map[string]string{"mentor": "Dr. Rao", "srn": "PES1UG20CS001"}})
	do(t, h, http.MethodPost, "/sessions/"+id+"/advance", nil)
	do(t, h, http.MethodPut, "/sessions/"+id+"/fields", placifyhttp.SetFieldsRequest{Values: map[string]string{"date": "2024-03-01", "notes": "n"}})
	do(t, h, http.MethodPost, "/sessions/"+id+"/advance", nil)

	rr := do(t, h, http.MethodPost, "/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusBadGateway, rr.Code, rr.Body.String())
	resp := decode(t, rr)
	require.NotNil(t, resp.Session.Failure)
	assert.Equal(t, domain.ReasonNetwork, resp.Session.Failure.Reason)
	assert.False(t, resp.Session.Submitted)
	assert.Equal(t, "Dr. Rao", resp.Session.Values["mentor"])
	assert.True(t, resp.View.Interactive)
}

func TestRetreatAndAbandon(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()
	s := start(t, h, domain.WizardMentorSession)
	id := s.Session.ID

	rr := do(t, h, http.MethodPost, "/sessions/"+id+"/retreat", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decode(t, rr).Session.CurrentStep)

	rr = do(t, h, http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORS_Preflight(t *testing.T) {
	srv, _ := newServer(t)
	rr := do(t, srv.Handler(), http.MethodOptions, "/wizards", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsRoute(t *testing.T) {
	gw := memory.NewGateway()
	eng, err := placify.New(placify.WithGateway(gw))
	require.NoError(t, err)
	defer eng.Close()

	without := placifyhttp.NewHandler(eng)
	assert.Equal(t, http.StatusNotFound, do(t, without, http.MethodGet, "/metrics", nil).Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("placify_up 1\n"))
	})
	with := placifyhttp.NewHandler(eng, placifyhttp.WithMetricsHandler(metrics))
	rr := do(t, with, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "placify_up 1\n", rr.Body.String())
}

func readEvent(t *testing.T, r *bufio.Reader) view.View {
	t.Helper()
	var data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" && data != "" {
			break
		}
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(line, "data: ")
		}
	}
	var v view.View
	require.NoError(t, json.Unmarshal([]byte(data), &v))
	return v
}

func TestSubscribeEvents(t *testing.T) {
	srv, _ := newServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	s := start(t, srv.Handler(), domain.WizardMentorSession)
	id := s.Session.ID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/sessions/"+id+"/events", nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	first := readEvent(t, reader)
	assert.Equal(t, 1, first.Progress.Current)

	require.Eventually(t, func() bool { return srv.Streams.Count(id) == 1 }, time.Second, 10*time.Millisecond)

	rr := do(t, srv.Handler(), http.MethodPut, "/sessions/"+id+"/fields", placifyhttp.SetFieldsRequest{
		Values: map[string]string{"mentor": "Dr. Rao", "srn": "PES1UG20CS001"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	next := readEvent(t, reader)
	require.NotEmpty(t, next.Fields)
	assert.Equal(t, "Dr. Rao", next.Fields[0].Value)
}

func TestSubscribeEvents_UnknownSession(t *testing.T) {
	srv, _ := newServer(t)
	rr := do(t, srv.Handler(), http.MethodGet, "/sessions/missing/events", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, placifyhttp.StatusFor(domain.ErrSessionNotFound))
	assert.Equal(t, http.StatusConflict, placifyhttp.StatusFor(domain.ErrSubmissionInFlight))
	assert.Equal(t, http.StatusBadRequest, placifyhttp.StatusFor(domain.ErrUnknownField))
	assert.Equal(t, http.StatusInternalServerError, placifyhttp.StatusFor(errors.New("boom")))
}
