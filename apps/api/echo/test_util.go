package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tkabila/shajara/core"
	"github.com/tkabila/shajara/core/journal"
	"github.com/tkabila/shajara/core/session"
	testutil "github.com/tkabila/shajara/tests"
)

func setupServer(t *testing.T) (Server, *session.Service, *journal.Service) {
	t.Helper()

	journalSvc, _ := testutil.NewJournalService(t)
	conf := testutil.NewConfig()
	logger := testutil.NewLogger()
	sessionSvc := session.NewService(journalSvc, new(testutil.MemIdentityStore), logger, conf)

	validate, translator := core.NewValidator()
	journal.RegisterValidators(validate, translator)

	srv := NewServer(&Options{
		Addr:           ":0",
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logger,
		SessionSvc:     sessionSvc,
		JournalSvc:     journalSvc,
		Validate:       validate,
		Translator:     translator,
	})
	return srv, sessionSvc, journalSvc
}

func doRequest(t *testing.T, srv http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("doRequest() failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decodeBody() failed: %v\nbody: %s", err, rec.Body.String())
	}
}

func loginAs(t *testing.T, srv http.Handler, email, password string) {
	t.Helper()
	rec := doRequest(t, srv, http.MethodPost, "/v1/session/login", LoginRequest{Email: email, Password: password})
	if rec.Code != http.StatusOK {
		t.Fatalf("loginAs(%s) failed: %d %s", email, rec.Code, rec.Body.String())
	}
}
