package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongSession = errors.New("token is not valid for this session")
)

// EditorClaims grant access to one editing session, or to every session when
// SessionID is empty.
type EditorClaims struct {
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator issues and checks HS256 editor tokens.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

// NewAuthenticator returns nil for an empty secret, which leaves the API open.
func NewAuthenticator(secret string) *Authenticator {
	if secret == "" {
		return nil
	}
	return &Authenticator{secret: []byte(secret), now: time.Now}
}

// IssueToken signs a token for sessionID ("" for all sessions). A zero ttl
// issues a token without expiry.
func (a *Authenticator) IssueToken(sessionID string, ttl time.Duration) (string, error) {
	now := a.now()
	claims := &EditorClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Authorize validates tokenString and checks it covers sessionID.
func (a *Authenticator) Authorize(tokenString, sessionID string) (*EditorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &EditorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*EditorClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.SessionID != "" && claims.SessionID != sessionID {
		return nil, ErrWrongSession
	}
	return claims, nil
}
