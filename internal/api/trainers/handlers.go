// internal/api/trainers/handlers.go
package trainers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtbook/courtbook/internal/api/apiutil"
	"github.com/courtbook/courtbook/internal/api/authz"
	"github.com/courtbook/courtbook/internal/api/courts"
	"github.com/courtbook/courtbook/internal/booking"
	"github.com/courtbook/courtbook/internal/store"
)

const trainersQueryTimeout = 5 * time.Second

type Handler struct {
	queries *store.Queries
	svc     *booking.Service
}

func NewHandler(queries *store.Queries, svc *booking.Service) *Handler {
	return &Handler{queries: queries, svc: svc}
}

type trainerResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Photo          string   `json:"photo,omitempty"`
	Price          int64    `json:"price"`
	ChildrenPrice  int64    `json:"children_price"`
	Specialization []string `json:"specialization"`
	Experience     int64    `json:"experience"`
	Achievements   string   `json:"achievements,omitempty"`
}

// GET /api/v1/trainers
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), trainersQueryTimeout)
	defer cancel()

	trainers, err := h.queries.ListTrainers(ctx)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list trainers")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to load trainers")
		return
	}

	payload := make([]trainerResponse, 0, len(trainers))
	for _, t := range trainers {
		payload = append(payload, toTrainerResponse(r, t))
	}
	apiutil.WriteJSON(w, http.StatusOK, payload)
}

// GET /api/v1/trainers/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), trainersQueryTimeout)
	defer cancel()

	trainer, err := h.queries.GetTrainer(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "trainer not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to load trainer")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to load trainer")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, toTrainerResponse(r, trainer))
}

// GET /api/v1/trainers/{id}/availability?date=YYYY-MM-DD
func (h *Handler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	if _, err := authz.RequireUser(r.Context()); err != nil {
		apiutil.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	day, err := booking.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), trainersQueryTimeout)
	defer cancel()

	slots, err := h.svc.TrainerAvailability(ctx, r.PathValue("id"), day)
	if err != nil {
		if errors.Is(err, booking.ErrTrainerNotFound) {
			apiutil.WriteError(w, http.StatusNotFound, "trainer not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to load trainer availability")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to load availability")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, courts.ToSlotResponses(slots))
}

func toTrainerResponse(r *http.Request, t store.Trainer) trainerResponse {
	resp := trainerResponse{
		ID:             t.ID,
		Name:           t.Name,
		Description:    apiutil.FromNullString(t.Description),
		Photo:          apiutil.FromNullString(t.Photo),
		Price:          t.Price,
		ChildrenPrice:  t.ChildrenPrice,
		Specialization: []string{},
		Experience:     t.Experience,
		Achievements:   apiutil.FromNullString(t.Achievements),
	}
	if err := json.Unmarshal([]byte(t.Specialization), &resp.Specialization); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("trainer_id", t.ID).Msg("Malformed specialization tags")
	}
	return resp
}
