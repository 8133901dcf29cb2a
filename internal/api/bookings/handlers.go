// internal/api/bookings/handlers.go
package bookings

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtbook/courtbook/internal/api/apiutil"
	"github.com/courtbook/courtbook/internal/api/authz"
	"github.com/courtbook/courtbook/internal/booking"
	"github.com/courtbook/courtbook/internal/email"
	"github.com/courtbook/courtbook/internal/store"
)

const (
	bookingQueryTimeout = 5 * time.Second
	emailSendTimeout    = 30 * time.Second
)

type Handler struct {
	svc     *booking.Service
	queries *store.Queries
	email   email.Sender
}

// NewHandler wires the booking endpoints. emailSender may be nil, in which
// case no notifications go out.
func NewHandler(svc *booking.Service, queries *store.Queries, emailSender email.Sender) *Handler {
	return &Handler{svc: svc, queries: queries, email: emailSender}
}

type createRequest struct {
	TimeSlotID    string `json:"time_slot_id"`
	TrainerID     string `json:"trainer_id,omitempty"`
	SplitTraining bool   `json:"split_training,omitempty"`
	AgeGroup      string `json:"age_group,omitempty"`
}

// BookingResponse is the wire shape for a booking, shared with the admin
// handlers.
type BookingResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CourtID       string    `json:"court_id"`
	TrainerID     string    `json:"trainer_id,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	SplitTraining bool      `json:"split_training"`
}

type createResponse struct {
	Booking BookingResponse `json:"booking"`
	Price   booking.Quote   `json:"price"`
}

// POST /api/v1/bookings
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, err := authz.RequireUser(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.TimeSlotID == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "time_slot_id is required")
		return
	}
	ageGroup := booking.AgeGroup(req.AgeGroup)
	if ageGroup == "" {
		ageGroup = booking.AgeGroupAdult
	}
	if ageGroup != booking.AgeGroupAdult && ageGroup != booking.AgeGroupChildren {
		apiutil.WriteError(w, http.StatusBadRequest, "age_group must be adult or children")
		return
	}
	if req.SplitTraining && req.TrainerID == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "split training requires a trainer")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), bookingQueryTimeout)
	defer cancel()

	created, quote, err := h.svc.CreateBooking(ctx, user.ID, booking.CreateRequest{
		TimeSlotID:    req.TimeSlotID,
		TrainerID:     req.TrainerID,
		SplitTraining: req.SplitTraining,
		AgeGroup:      ageGroup,
	})
	if err != nil {
		writeBookingError(w, r, err)
		return
	}

	logger.Info().
		Str("booking_id", created.ID).
		Str("user_id", user.ID).
		Str("court_id", created.CourtID).
		Time("start_time", created.StartTime).
		Msg("Booking created")

	h.notifyConfirmation(r, user.ID, created)

	apiutil.WriteJSON(w, http.StatusCreated, createResponse{
		Booking: ToBookingResponse(created),
		Price:   quote,
	})
}

// GET /api/v1/bookings
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, err := authz.RequireUser(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), bookingQueryTimeout)
	defer cancel()

	list, err := h.svc.UserBookings(ctx, user.ID)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("user_id", user.ID).Msg("Failed to list bookings")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, ToDetailResponses(list))
}

// DELETE /api/v1/bookings/{id}
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, err := authz.RequireUser(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bookingID := r.PathValue("id")

	ctx, cancel := context.WithTimeout(r.Context(), bookingQueryTimeout)
	defer cancel()

	// Loaded before the delete so the cancellation notice still has the
	// booking's details.
	cancelled, loadErr := h.queries.GetBooking(ctx, bookingID)

	err = h.svc.CancelBooking(ctx, bookingID, booking.Requester{UserID: user.ID, Admin: user.IsAdmin})
	if err != nil {
		writeBookingError(w, r, err)
		return
	}

	if loadErr == nil {
		h.notifyCancellation(r, cancelled)
	}

	logger.Info().Str("booking_id", bookingID).Str("user_id", user.ID).Msg("Booking cancelled")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) notifyConfirmation(r *http.Request, userID string, created store.Booking) {
	if h.email == nil {
		return
	}

	logger := log.Ctx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), bookingQueryTimeout)
	defer cancel()

	owner, err := h.queries.GetUser(ctx, userID)
	if err != nil || !owner.Email.Valid {
		return
	}
	court, err := h.queries.GetCourt(ctx, created.CourtID)
	if err != nil {
		return
	}

	mailCtx, mailCancel := context.WithTimeout(logger.WithContext(context.Background()), emailSendTimeout)
	go func() {
		defer mailCancel()
		email.SendBookingConfirmation(mailCtx, h.email, owner.Email.String, court.Name, created.StartTime, created.EndTime)
	}()
}

func (h *Handler) notifyCancellation(r *http.Request, cancelled store.Booking) {
	if h.email == nil {
		return
	}

	logger := log.Ctx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), bookingQueryTimeout)
	defer cancel()

	owner, err := h.queries.GetUser(ctx, cancelled.UserID)
	if err != nil || !owner.Email.Valid {
		return
	}
	court, err := h.queries.GetCourt(ctx, cancelled.CourtID)
	if err != nil {
		return
	}

	mailCtx, mailCancel := context.WithTimeout(logger.WithContext(context.Background()), emailSendTimeout)
	go func() {
		defer mailCancel()
		email.SendBookingCancellation(mailCtx, h.email, owner.Email.String, court.Name, cancelled.StartTime)
	}()
}

// writeBookingError maps domain sentinels onto the HTTP error taxonomy.
func writeBookingError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, booking.ErrSlotNotFound),
		errors.Is(err, booking.ErrTrainerNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		apiutil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrSlotTaken),
		errors.Is(err, booking.ErrTrainerUnavailable):
		apiutil.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrNotOwner):
		apiutil.WriteError(w, http.StatusForbidden, "you may only cancel your own bookings")
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("Booking operation failed")
		apiutil.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func ToBookingResponse(b store.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		CourtID:       b.CourtID,
		TrainerID:     apiutil.FromNullString(b.TrainerID),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		SplitTraining: b.SplitTraining,
	}
}

// DetailResponse carries a booking with the display attributes the bookings
// page and admin view need.
type DetailResponse struct {
	BookingResponse
	CourtName    string `json:"court_name"`
	CourtSurface string `json:"court_surface"`
	Username     string `json:"username"`
	UserName     string `json:"user_name,omitempty"`
	TrainerName  string `json:"trainer_name,omitempty"`
}

func ToDetailResponse(d store.BookingDetail) DetailResponse {
	return DetailResponse{
		BookingResponse: ToBookingResponse(d.Booking),
		CourtName:       d.CourtName,
		CourtSurface:    d.CourtSurface,
		Username:        d.Username,
		UserName:        apiutil.FromNullString(d.UserName),
		TrainerName:     apiutil.FromNullString(d.TrainerName),
	}
}

func ToDetailResponses(details []store.BookingDetail) []DetailResponse {
	payload := make([]DetailResponse, 0, len(details))
	for _, d := range details {
		payload = append(payload, ToDetailResponse(d))
	}
	return payload
}
