package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"survey-builder-service/internal/auth"
)

// requireToken rejects requests without a bearer token for the session that
// sessionID extracts. The websocket handshake may pass the token as ?token=
// since browsers cannot set headers on it.
func requireToken(authenticator *auth.Authenticator, sessionID func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing token")
				return
			}
			if _, err := authenticator.Authorize(token, sessionID(r)); err != nil {
				status := http.StatusUnauthorized
				if errors.Is(err, auth.ErrWrongSession) {
					status = http.StatusForbidden
				}
				writeError(w, status, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

func sessionFromPath(r *http.Request) string { return chi.URLParam(r, "id") }

func sessionFromQuery(r *http.Request) string { return r.URL.Query().Get("sessionId") }
