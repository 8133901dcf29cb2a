package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/courtbook/courtbook/internal/store"
	"github.com/courtbook/courtbook/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *store.Queries, *Sessions) {
	t.Helper()
	database := testutil.NewTestDB(t)
	sessions := NewSessions(false)
	return NewHandler(database.Queries, sessions), database.Queries, sessions
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestHandleRegister(t *testing.T) {
	h, queries, sessions := newTestHandler(t)

	rec := postJSON(t, h.HandleRegister, `{"username":"alice","password":"secret1","name":"Alice","email":"alice@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Username != "alice" || resp.Name != "Alice" || resp.IsAdmin {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// The password is stored hashed.
	user, err := queries.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.PasswordHash == "secret1" {
		t.Fatal("password stored in plain text")
	}
	if !VerifyPassword(user.PasswordHash, "secret1") {
		t.Fatal("stored hash does not verify")
	}

	// Registration also opens a session.
	cookie := sessionCookie(t, rec)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	if got := sessions.UserFromRequest(req); got == nil || got.ID != user.ID {
		t.Fatalf("session not usable after register: %+v", got)
	}
}

func TestHandleRegisterValidation(t *testing.T) {
	h, _, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"short username", `{"username":"ab","password":"secret1"}`, "username must be 3-20 characters"},
		{"long username", `{"username":"` + strings.Repeat("a", 21) + `","password":"secret1"}`, "username must be 3-20 characters"},
		{"short password", `{"username":"alice","password":"12345"}`, "password must be at least 6 characters"},
		{"not json", `not json`, "invalid JSON body"},
		{"unknown field", `{"username":"alice","password":"secret1","role":"admin"}`, "invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.HandleRegister, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rec.Code)
			}
			if got := errorMessage(t, rec); got != tt.want {
				t.Errorf("error: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleRegisterDuplicateUsername(t *testing.T) {
	h, _, _ := newTestHandler(t)

	if rec := postJSON(t, h.HandleRegister, `{"username":"alice","password":"secret1"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first register: got %d (%s)", rec.Code, rec.Body)
	}
	rec := postJSON(t, h.HandleRegister, `{"username":"alice","password":"other-secret"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if got := errorMessage(t, rec); got != "username is already taken" {
		t.Errorf("error: got %q", got)
	}
}

func TestHandleLogin(t *testing.T) {
	h, queries, sessions := newTestHandler(t)
	seedUser(t, queries, "alice", "secret1", true)

	rec := postJSON(t, h.HandleLogin, `{"username":"alice","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsAdmin {
		t.Fatal("admin flag lost on login")
	}

	// The session carries the admin flag too.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, rec))
	if got := sessions.UserFromRequest(req); got == nil || !got.IsAdmin {
		t.Fatalf("session user: %+v", got)
	}
}

func TestHandleLoginRejectsBadCredentials(t *testing.T) {
	h, queries, _ := newTestHandler(t)
	seedUser(t, queries, "alice", "secret1", false)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"wrong password", `{"username":"alice","password":"wrong-password"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"nobody","password":"secret1"}`, http.StatusUnauthorized},
		{"missing fields", `{"username":"alice"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.HandleLogin, tt.body)
			if rec.Code != tt.code {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.code)
			}
		})
	}
}

func TestHandleLogout(t *testing.T) {
	h, queries, sessions := newTestHandler(t)
	seedUser(t, queries, "alice", "secret1", false)

	login := postJSON(t, h.HandleLogin, `{"username":"alice","password":"secret1"}`)
	if login.Code != http.StatusOK {
		t.Fatalf("login: got %d", login.Code)
	}
	cookie := sessionCookie(t, login)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.HandleLogout(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout status: got %d", rec.Code)
	}

	check := httptest.NewRequest(http.MethodGet, "/", nil)
	check.AddCookie(cookie)
	if got := sessions.UserFromRequest(check); got != nil {
		t.Fatalf("session survived logout: %+v", got)
	}
}

func seedUser(t *testing.T, queries *store.Queries, username, password string, admin bool) {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	err = queries.CreateUser(context.Background(), store.User{
		ID:           "user-" + username,
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      admin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}
