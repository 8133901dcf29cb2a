package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/courtbook/courtbook/internal/api/authz"
)

const (
	sessionCookieName = "courtbook_session"
	sessionTTL        = 8 * time.Hour
	sessionTokenBytes = 32
)

type sessionRecord struct {
	user      authz.AuthUser
	expiresAt time.Time
}

// Sessions is an in-memory session token store. It is constructed once at
// startup and injected wherever authentication is needed; sessions do not
// survive a restart.
type Sessions struct {
	mu           sync.RWMutex
	byToken      map[string]sessionRecord
	secureCookie bool
}

func NewSessions(secureCookie bool) *Sessions {
	return &Sessions{
		byToken:      make(map[string]sessionRecord),
		secureCookie: secureCookie,
	}
}

// Create mints a session token for the user and sets the session cookie.
func (s *Sessions) Create(w http.ResponseWriter, user authz.AuthUser) (string, error) {
	if w == nil {
		return "", errors.New("session requires response writer")
	}

	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(sessionTTL)
	s.mu.Lock()
	s.byToken[token] = sessionRecord{user: user, expiresAt: expiresAt}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(sessionTTL.Seconds()),
	})

	return token, nil
}

// Clear drops the request's session and expires the cookie.
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) {
	if r != nil {
		if token := tokenFromRequest(r); token != "" {
			s.mu.Lock()
			delete(s.byToken, token)
			s.mu.Unlock()
		}
	}

	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// UserFromRequest resolves the session cookie or bearer token to a user.
// A missing or expired session returns nil without error.
func (s *Sessions) UserFromRequest(r *http.Request) *authz.AuthUser {
	token := tokenFromRequest(r)
	if token == "" {
		return nil
	}

	s.mu.RLock()
	record, ok := s.byToken[token]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	if time.Now().After(record.expiresAt) {
		s.mu.Lock()
		delete(s.byToken, token)
		s.mu.Unlock()
		return nil
	}

	user := record.user
	return &user
}

// StartCleanup purges expired sessions every interval until ctx is done.
func (s *Sessions) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.purgeExpired()
			}
		}
	}()
}

func (s *Sessions) purgeExpired() {
	now := time.Now()
	s.mu.Lock()
	for token, record := range s.byToken {
		if now.After(record.expiresAt) {
			delete(s.byToken, token)
		}
	}
	s.mu.Unlock()
}

func tokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer ")
		}
	}
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
