// internal/api/auth/handlers.go
package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/courtbook/courtbook/internal/api/apiutil"
	"github.com/courtbook/courtbook/internal/api/authz"
	"github.com/courtbook/courtbook/internal/store"
)

const authQueryTimeout = 5 * time.Second

type Handler struct {
	queries  *store.Queries
	sessions *Sessions
}

func NewHandler(queries *store.Queries, sessions *Sessions) *Handler {
	return &Handler{queries: queries, sessions: sessions}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

// POST /api/v1/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req registerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Username) < 3 || len(req.Username) > 20 {
		apiutil.WriteError(w, http.StatusBadRequest, "username must be 3-20 characters")
		return
	}
	if len(req.Password) < 6 {
		apiutil.WriteError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	if _, err := h.queries.GetUserByUsername(ctx, req.Username); err == nil {
		apiutil.WriteError(w, http.StatusBadRequest, "username is already taken")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Failed to check username")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	user := store.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
		Name:         apiutil.ToNullString(req.Name),
		Email:        apiutil.ToNullString(req.Email),
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.queries.CreateUser(ctx, user); err != nil {
		logger.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	if _, err := h.sessions.Create(w, authz.AuthUser{ID: user.ID, Username: user.Username}); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User registered")
	apiutil.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/v1/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	user, err := h.queries.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		logger.Error().Err(err).Msg("Failed to load user")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	if !VerifyPassword(user.PasswordHash, req.Password) {
		apiutil.WriteError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	authUser := authz.AuthUser{ID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}
	if _, err := h.sessions.Create(w, authUser); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User logged in")
	apiutil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// POST /api/v1/auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func toUserResponse(user store.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     apiutil.FromNullString(user.Name),
		Email:    apiutil.FromNullString(user.Email),
		IsAdmin:  user.IsAdmin,
	}
}
