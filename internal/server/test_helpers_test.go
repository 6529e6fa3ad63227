package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MarcoPoloResearchLab/marinemap/internal/auth"
	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	testSigningSecret = "test-session-secret"
	testCookieName    = "app_session"
)

type sequenceIDs struct {
	ids   []string
	index int
}

func (s *sequenceIDs) NewID() (string, error) {
	if s.index >= len(s.ids) {
		return "", errors.New("exhausted ids")
	}
	id := s.ids[s.index]
	s.index++
	return id, nil
}

func testClock() time.Time {
	return time.Date(2024, time.March, 10, 8, 30, 0, 0, time.UTC)
}

func newTestService(t *testing.T, ids []string, listeners ...events.ChangeListener) *events.Service {
	t.Helper()
	service, err := events.NewService(events.ServiceConfig{
		Clock:      testClock,
		IDProvider: &sequenceIDs{ids: ids},
		Logger:     zap.NewNop(),
		Listeners:  listeners,
	})
	if err != nil {
		t.Fatalf("failed to construct events service: %v", err)
	}
	if err := service.Load(context.Background(), events.SampleEvents()); err != nil {
		t.Fatalf("failed to load sample events: %v", err)
	}
	return service
}

func newTestHandler(t *testing.T, deps Dependencies) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler, err := NewHTTPHandler(deps)
	if err != nil {
		t.Fatalf("failed to construct http handler: %v", err)
	}
	return handler
}

func performJSON(handler http.Handler, method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	if err := json.Unmarshal(recorder.Body.Bytes(), &value); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
	return value
}

func newTestSessionValidator(t *testing.T) *auth.SessionValidator {
	t.Helper()
	validator, err := auth.NewSessionValidator(auth.SessionValidatorConfig{
		SigningSecret: []byte(testSigningSecret),
		CookieName:    testCookieName,
	})
	if err != nil {
		t.Fatalf("failed to construct session validator: %v", err)
	}
	return validator
}

func sessionCookie(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	now := time.Now()
	claims := auth.SessionClaims{
		UserID:          userID,
		UserDisplayName: "Harbor Crew",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "tauth",
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningSecret))
	if err != nil {
		t.Fatalf("failed to sign session token: %v", err)
	}
	return &http.Cookie{Name: testCookieName, Value: token}
}
