package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"survey-builder-service/internal/auth"
)

func TestRoutesRequireTokenWhenConfigured(t *testing.T) {
	authenticator := auth.NewAuthenticator("secret")
	router := NewRouter(newTestService(), authenticator)

	scoped, err := authenticator.IssueToken("s1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"no token", "/sessions/s1", "", http.StatusUnauthorized},
		{"bad token", "/sessions/s1", "garbage", http.StatusUnauthorized},
		{"other session", "/sessions/s2", scoped, http.StatusForbidden},
		{"scoped token", "/sessions/s1", scoped, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestWebSocketTokenFromQuery(t *testing.T) {
	authenticator := auth.NewAuthenticator("secret")
	router := NewRouter(newTestService(), authenticator)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws?sessionId=s1", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := authenticator.IssueToken("s1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws?sessionId=s2&token="+token, nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another session, got %d", rec.Code)
	}
}

func TestHealthzStaysOpen(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(newTestService(), auth.NewAuthenticator("secret")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz open, got %d", rec.Code)
	}
}
