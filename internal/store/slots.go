package store

import (
	"context"
	"database/sql"
	"time"
)

const upsertTimeSlot = `
INSERT INTO time_slots (id, court_id, start_time, end_time, booked)
VALUES (?, ?, ?, ?, 0)
ON CONFLICT (court_id, start_time, end_time) DO NOTHING
`

// UpsertTimeSlot inserts a slot unless one already exists for the same
// (court, start, end). Re-seeding the same day is a no-op.
func (q *Queries) UpsertTimeSlot(ctx context.Context, s TimeSlot) error {
	_, err := q.db.ExecContext(ctx, upsertTimeSlot, s.ID, s.CourtID, s.StartTime, s.EndTime)
	return err
}

const getTimeSlot = `
SELECT id, court_id, start_time, end_time, booked FROM time_slots WHERE id = ?
`

func (q *Queries) GetTimeSlot(ctx context.Context, id string) (TimeSlot, error) {
	var s TimeSlot
	err := q.db.QueryRowContext(ctx, getTimeSlot, id).Scan(
		&s.ID, &s.CourtID, &s.StartTime, &s.EndTime, &s.Booked)
	return s, err
}

const listAvailableSlots = `
SELECT ts.id, ts.court_id, ts.start_time, ts.end_time, ts.booked,
       c.name, c.price, c.surface
FROM time_slots ts
JOIN courts c ON c.id = ts.court_id
WHERE ts.booked = 0 AND ts.start_time >= ? AND ts.start_time < ?
ORDER BY ts.start_time
`

func (q *Queries) ListAvailableSlots(ctx context.Context, windowStart, windowEnd time.Time) ([]AvailableSlot, error) {
	rows, err := q.db.QueryContext(ctx, listAvailableSlots, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAvailableSlots(rows)
}

const listAvailableSlotsByCourt = `
SELECT ts.id, ts.court_id, ts.start_time, ts.end_time, ts.booked,
       c.name, c.price, c.surface
FROM time_slots ts
JOIN courts c ON c.id = ts.court_id
WHERE ts.court_id = ? AND ts.booked = 0 AND ts.start_time >= ? AND ts.start_time < ?
ORDER BY ts.start_time
`

func (q *Queries) ListAvailableSlotsByCourt(ctx context.Context, courtID string, windowStart, windowEnd time.Time) ([]AvailableSlot, error) {
	rows, err := q.db.QueryContext(ctx, listAvailableSlotsByCourt, courtID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAvailableSlots(rows)
}

func scanAvailableSlots(rows *sql.Rows) ([]AvailableSlot, error) {
	var slots []AvailableSlot
	for rows.Next() {
		var s AvailableSlot
		if err := rows.Scan(
			&s.ID, &s.CourtID, &s.StartTime, &s.EndTime, &s.Booked,
			&s.CourtName, &s.CourtPrice, &s.CourtSurface,
		); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

const markSlotBooked = `
UPDATE time_slots SET booked = 1 WHERE id = ? AND booked = 0
`

// MarkSlotBooked flips the booked flag and reports whether this call won the
// flip. A false return means another booking got there first.
func (q *Queries) MarkSlotBooked(ctx context.Context, id string) (bool, error) {
	result, err := q.db.ExecContext(ctx, markSlotBooked, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

const clearSlotBooked = `
UPDATE time_slots SET booked = 0
WHERE court_id = ? AND start_time = ? AND end_time = ?
`

// ClearSlotBooked restores the slot matching the booking's copied
// (court, start, end). Returns the number of rows touched; zero is not an
// error because the slot row may have been deleted since booking.
func (q *Queries) ClearSlotBooked(ctx context.Context, courtID string, start, end time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, clearSlotBooked, courtID, start, end)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listBookedSlotsWithoutBooking = `
SELECT ts.id, ts.court_id, ts.start_time, ts.end_time, ts.booked
FROM time_slots ts
WHERE ts.booked = 1 AND NOT EXISTS (
	SELECT 1 FROM bookings b
	WHERE b.court_id = ts.court_id
	  AND b.start_time = ts.start_time
	  AND b.end_time = ts.end_time
)
`

// ListBookedSlotsWithoutBooking reports slots whose booked flag has drifted
// from the booking table. Used by the integrity sweep.
func (q *Queries) ListBookedSlotsWithoutBooking(ctx context.Context) ([]TimeSlot, error) {
	rows, err := q.db.QueryContext(ctx, listBookedSlotsWithoutBooking)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []TimeSlot
	for rows.Next() {
		var s TimeSlot
		if err := rows.Scan(&s.ID, &s.CourtID, &s.StartTime, &s.EndTime, &s.Booked); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
