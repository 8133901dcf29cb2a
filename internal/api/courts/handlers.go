// internal/api/courts/handlers.go
package courts

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtbook/courtbook/internal/api/apiutil"
	"github.com/courtbook/courtbook/internal/booking"
	"github.com/courtbook/courtbook/internal/store"
)

const courtsQueryTimeout = 5 * time.Second

type Handler struct {
	queries *store.Queries
	svc     *booking.Service
}

func NewHandler(queries *store.Queries, svc *booking.Service) *Handler {
	return &Handler{queries: queries, svc: svc}
}

type courtResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Surface     string `json:"surface"`
}

// SlotResponse is the availability payload shared by the court, trainer, and
// all-court availability endpoints.
type SlotResponse struct {
	ID        string        `json:"id"`
	CourtID   string        `json:"court_id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Court     courtResponse `json:"court"`
}

// GET /api/v1/courts
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	courts, err := h.queries.ListCourts(ctx)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list courts")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to load courts")
		return
	}

	payload := make([]courtResponse, 0, len(courts))
	for _, c := range courts {
		payload = append(payload, toCourtResponse(c))
	}
	apiutil.WriteJSON(w, http.StatusOK, payload)
}

// GET /api/v1/courts/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := h.queries.GetCourt(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "court not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to load court")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to load court")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, toCourtResponse(court))
}

// GET /api/v1/courts/{id}/slots?date=YYYY-MM-DD
func (h *Handler) HandleSlots(w http.ResponseWriter, r *http.Request) {
	day, err := booking.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	slots, err := h.svc.CourtAvailability(ctx, r.PathValue("id"), day)
	if err != nil {
		if errors.Is(err, booking.ErrCourtNotFound) {
			apiutil.WriteError(w, http.StatusNotFound, "court not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to load court availability")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to load availability")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, ToSlotResponses(slots))
}

// HandleAvailability serves GET /api/v1/availability?date= across all courts.
func (h *Handler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	day, err := booking.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	slots, err := h.svc.Availability(ctx, day)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to load availability")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to load availability")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, ToSlotResponses(slots))
}

func toCourtResponse(c store.Court) courtResponse {
	return courtResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: apiutil.FromNullString(c.Description),
		Price:       c.Price,
		Surface:     c.Surface,
	}
}

// ToSlotResponses converts available slots to the wire shape, keeping order.
func ToSlotResponses(slots []store.AvailableSlot) []SlotResponse {
	payload := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		payload = append(payload, SlotResponse{
			ID:        s.ID,
			CourtID:   s.CourtID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Court: courtResponse{
				ID:      s.CourtID,
				Name:    s.CourtName,
				Price:   s.CourtPrice,
				Surface: s.CourtSurface,
			},
		})
	}
	return payload
}
