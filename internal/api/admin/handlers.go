// internal/api/admin/handlers.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtbook/courtbook/internal/api/apiutil"
	"github.com/courtbook/courtbook/internal/api/authz"
	"github.com/courtbook/courtbook/internal/api/bookings"
	"github.com/courtbook/courtbook/internal/booking"
)

const adminQueryTimeout = 5 * time.Second

type Handler struct {
	svc *booking.Service
}

func NewHandler(svc *booking.Service) *Handler {
	return &Handler{svc: svc}
}

// dayResponse partitions the day's bookings by court surface for display.
type dayResponse struct {
	Date string                    `json:"date"`
	Clay []bookings.DetailResponse `json:"clay"`
	Hard []bookings.DetailResponse `json:"hard"`
}

// GET /api/v1/admin/bookings?date=YYYY-MM-DD
func (h *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	if _, err := requireAdmin(w, r); err != nil {
		return
	}

	dateValue := r.URL.Query().Get("date")
	day, err := booking.ParseDate(dateValue)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	list, err := h.svc.BookingsForDay(ctx, day)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("date", dateValue).Msg("Failed to load day bookings")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}

	resp := dayResponse{
		Date: dateValue,
		Clay: []bookings.DetailResponse{},
		Hard: []bookings.DetailResponse{},
	}
	for _, d := range list {
		detail := bookings.ToDetailResponse(d)
		if d.CourtSurface == "CLAY" {
			resp.Clay = append(resp.Clay, detail)
		} else {
			resp.Hard = append(resp.Hard, detail)
		}
	}
	apiutil.WriteJSON(w, http.StatusOK, resp)
}

// DELETE /api/v1/admin/bookings/{id}
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	admin, err := requireAdmin(w, r)
	if err != nil {
		return
	}

	bookingID := r.PathValue("id")

	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	err = h.svc.CancelBooking(ctx, bookingID, booking.Requester{UserID: admin.ID, Admin: true})
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			apiutil.WriteError(w, http.StatusNotFound, "booking not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Str("booking_id", bookingID).Msg("Admin cancel failed")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to cancel booking")
		return
	}

	log.Ctx(r.Context()).Info().
		Str("booking_id", bookingID).
		Str("admin_id", admin.ID).
		Msg("Booking cancelled by admin")
	w.WriteHeader(http.StatusNoContent)
}

func requireAdmin(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, error) {
	user, err := authz.RequireAdmin(r.Context())
	if err != nil {
		if errors.Is(err, authz.ErrUnauthenticated) {
			apiutil.WriteError(w, http.StatusUnauthorized, "authentication required")
		} else {
			apiutil.WriteError(w, http.StatusForbidden, "administrator access required")
		}
		return nil, err
	}
	return user, nil
}
