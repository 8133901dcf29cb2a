// internal/booking/service.go
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/courtbook/courtbook/internal/db"
	"github.com/courtbook/courtbook/internal/store"
)

// Service owns slot generation, availability, and the booking transitions.
// It is constructed once at startup and injected into handlers.
type Service struct {
	db  *db.DB
	now func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source. Tests use this to pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(database *db.DB, opts ...Option) *Service {
	s := &Service{
		db:  database,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateSlots creates the hourly slot inventory for one court and day,
// booked=false, skipping any (court, start, end) that already exists.
func (s *Service) GenerateSlots(ctx context.Context, courtID string, day time.Time) error {
	if _, err := s.db.Queries.GetCourt(ctx, courtID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCourtNotFound
		}
		return fmt.Errorf("load court: %w", err)
	}

	windowStart, windowEnd := BookingWindow(day)
	for start := windowStart; start.Before(windowEnd); start = start.Add(SlotDuration) {
		slot := store.TimeSlot{
			ID:        uuid.New().String(),
			CourtID:   courtID,
			StartTime: start,
			EndTime:   start.Add(SlotDuration),
		}
		if err := s.db.Queries.UpsertTimeSlot(ctx, slot); err != nil {
			return fmt.Errorf("upsert slot %s: %w", start.Format(time.RFC3339), err)
		}
	}
	return nil
}

// GenerateSlotsAhead generates slot inventory for every court for today plus
// the following days-1 days.
func (s *Service) GenerateSlotsAhead(ctx context.Context, days int) error {
	courts, err := s.db.Queries.ListCourts(ctx)
	if err != nil {
		return fmt.Errorf("list courts: %w", err)
	}

	today := s.now().Truncate(24 * time.Hour)
	for _, court := range courts {
		for i := 0; i < days; i++ {
			if err := s.GenerateSlots(ctx, court.ID, today.AddDate(0, 0, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Availability returns unbooked, not-yet-started slots for the day across all
// courts, ascending by start time. An empty day is not an error.
func (s *Service) Availability(ctx context.Context, day time.Time) ([]store.AvailableSlot, error) {
	windowStart, windowEnd := BookingWindow(day)
	slots, err := s.db.Queries.ListAvailableSlots(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	return s.dropElapsed(slots), nil
}

// CourtAvailability is Availability scoped to one court.
func (s *Service) CourtAvailability(ctx context.Context, courtID string, day time.Time) ([]store.AvailableSlot, error) {
	if _, err := s.db.Queries.GetCourt(ctx, courtID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("load court: %w", err)
	}

	windowStart, windowEnd := BookingWindow(day)
	slots, err := s.db.Queries.ListAvailableSlotsByCourt(ctx, courtID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("list court slots: %w", err)
	}
	return s.dropElapsed(slots), nil
}

// TrainerAvailability returns the day's available slots minus any slot whose
// interval overlaps an existing booking for the trainer, regardless of that
// slot's own booked flag on other courts.
func (s *Service) TrainerAvailability(ctx context.Context, trainerID string, day time.Time) ([]store.AvailableSlot, error) {
	if _, err := s.db.Queries.GetTrainer(ctx, trainerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("load trainer: %w", err)
	}

	windowStart, windowEnd := BookingWindow(day)
	slots, err := s.db.Queries.ListAvailableSlots(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	taken, err := s.db.Queries.ListTrainerBookingsInWindow(ctx, trainerID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("list trainer bookings: %w", err)
	}

	var free []store.AvailableSlot
	for _, slot := range s.dropElapsed(slots) {
		busy := false
		for _, b := range taken {
			if Overlaps(slot.StartTime, slot.EndTime, b.StartTime, b.EndTime) {
				busy = true
				break
			}
		}
		if !busy {
			free = append(free, slot)
		}
	}
	return free, nil
}

// dropElapsed removes slots whose start is not strictly after now. Past and
// in-progress slots are never bookable.
func (s *Service) dropElapsed(slots []store.AvailableSlot) []store.AvailableSlot {
	now := s.now()
	var upcoming []store.AvailableSlot
	for _, slot := range slots {
		if slot.StartTime.After(now) {
			upcoming = append(upcoming, slot)
		}
	}
	return upcoming
}

type CreateRequest struct {
	TimeSlotID    string
	TrainerID     string
	SplitTraining bool
	AgeGroup      AgeGroup
}

// CreateBooking books the slot for the user. The booking insert and the slot's
// booked flip happen in one transaction; under racing requests for the same
// slot the guarded UPDATE lets exactly one through.
func (s *Service) CreateBooking(ctx context.Context, userID string, req CreateRequest) (store.Booking, Quote, error) {
	var created store.Booking
	var quote Quote

	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		slot, err := q.GetTimeSlot(ctx, req.TimeSlotID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("load slot: %w", err)
		}
		if slot.Booked {
			return ErrSlotTaken
		}

		court, err := q.GetCourt(ctx, slot.CourtID)
		if err != nil {
			return fmt.Errorf("load court: %w", err)
		}

		var trainer *store.Trainer
		if req.TrainerID != "" {
			t, err := q.GetTrainer(ctx, req.TrainerID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return ErrTrainerNotFound
				}
				return fmt.Errorf("load trainer: %w", err)
			}
			overlapping, err := q.CountTrainerBookingsOverlapping(ctx, t.ID, slot.StartTime, slot.EndTime)
			if err != nil {
				return fmt.Errorf("check trainer bookings: %w", err)
			}
			if overlapping > 0 {
				return ErrTrainerUnavailable
			}
			trainer = &t
		}

		won, err := q.MarkSlotBooked(ctx, slot.ID)
		if err != nil {
			return fmt.Errorf("mark slot booked: %w", err)
		}
		if !won {
			return ErrSlotTaken
		}

		created = store.Booking{
			ID:            uuid.New().String(),
			UserID:        userID,
			CourtID:       slot.CourtID,
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
			SplitTraining: req.SplitTraining,
			CreatedAt:     s.now(),
		}
		if trainer != nil {
			created.TrainerID = sql.NullString{String: trainer.ID, Valid: true}
		}
		if err := q.CreateBooking(ctx, created); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		quote = PriceQuote(court, trainer, req.AgeGroup, req.SplitTraining)
		return nil
	})
	if err != nil {
		return store.Booking{}, Quote{}, err
	}
	return created, quote, nil
}

// Requester identifies who is asking for a cancellation.
type Requester struct {
	UserID string
	Admin  bool
}

// CancelBooking deletes the booking and restores the matching slot's booked
// flag. Only the owner or an admin may cancel. Slot restoration is
// best-effort: a booking whose slot row has since disappeared still cancels.
func (s *Service) CancelBooking(ctx context.Context, bookingID string, requester Requester) error {
	return s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		b, err := q.GetBooking(ctx, bookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("load booking: %w", err)
		}
		if !requester.Admin && b.UserID != requester.UserID {
			return ErrNotOwner
		}

		restored, err := q.ClearSlotBooked(ctx, b.CourtID, b.StartTime, b.EndTime)
		if err != nil {
			return fmt.Errorf("restore slot: %w", err)
		}
		if restored == 0 {
			log.Ctx(ctx).Warn().
				Str("booking_id", b.ID).
				Str("court_id", b.CourtID).
				Time("start_time", b.StartTime).
				Msg("No slot row matched cancelled booking")
		}

		if err := q.DeleteBooking(ctx, b.ID); err != nil {
			return fmt.Errorf("delete booking: %w", err)
		}
		return nil
	})
}

// BookingsForDay lists every booking starting within the calendar day,
// enriched with court, user, and trainer attributes.
func (s *Service) BookingsForDay(ctx context.Context, day time.Time) ([]store.BookingDetail, error) {
	dayStart, dayEnd := DayWindow(day)
	bookings, err := s.db.Queries.ListBookingsForDay(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list bookings for day: %w", err)
	}
	return bookings, nil
}

// UserBookings lists the user's bookings, most recent start first.
func (s *Service) UserBookings(ctx context.Context, userID string) ([]store.BookingDetail, error) {
	bookings, err := s.db.Queries.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	return bookings, nil
}

// CheckIntegrity logs any slot whose booked flag disagrees with the bookings
// table and returns how many drifted. The invariant is maintained
// procedurally by the transitions above; this sweep only observes.
func (s *Service) CheckIntegrity(ctx context.Context) (int, error) {
	drifted, err := s.db.Queries.ListBookedSlotsWithoutBooking(ctx)
	if err != nil {
		return 0, fmt.Errorf("list drifted slots: %w", err)
	}
	for _, slot := range drifted {
		log.Ctx(ctx).Warn().
			Str("slot_id", slot.ID).
			Str("court_id", slot.CourtID).
			Time("start_time", slot.StartTime).
			Msg("Slot marked booked with no matching booking")
	}
	return len(drifted), nil
}
