package store

import (
	"context"
	"database/sql"
	"time"
)

const createBooking = `
INSERT INTO bookings (id, user_id, court_id, trainer_id, start_time, end_time, split_training, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateBooking(ctx context.Context, b Booking) error {
	_, err := q.db.ExecContext(ctx, createBooking,
		b.ID, b.UserID, b.CourtID, b.TrainerID, b.StartTime, b.EndTime,
		b.SplitTraining, b.CreatedAt)
	return err
}

const getBooking = `
SELECT id, user_id, court_id, trainer_id, start_time, end_time, split_training, created_at
FROM bookings WHERE id = ?
`

func (q *Queries) GetBooking(ctx context.Context, id string) (Booking, error) {
	var b Booking
	err := q.db.QueryRowContext(ctx, getBooking, id).Scan(
		&b.ID, &b.UserID, &b.CourtID, &b.TrainerID, &b.StartTime, &b.EndTime,
		&b.SplitTraining, &b.CreatedAt)
	return b, err
}

const deleteBooking = `
DELETE FROM bookings WHERE id = ?
`

func (q *Queries) DeleteBooking(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteBooking, id)
	return err
}

const countTrainerBookingsOverlapping = `
SELECT COUNT(*) FROM bookings
WHERE trainer_id = ? AND start_time < ? AND end_time > ?
`

// CountTrainerBookingsOverlapping counts bookings for the trainer whose
// [start, end) interval overlaps the given one.
func (q *Queries) CountTrainerBookingsOverlapping(ctx context.Context, trainerID string, start, end time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTrainerBookingsOverlapping, trainerID, end, start).Scan(&n)
	return n, err
}

const listTrainerBookingsInWindow = `
SELECT id, user_id, court_id, trainer_id, start_time, end_time, split_training, created_at
FROM bookings
WHERE trainer_id = ? AND start_time >= ? AND start_time < ?
ORDER BY start_time
`

func (q *Queries) ListTrainerBookingsInWindow(ctx context.Context, trainerID string, windowStart, windowEnd time.Time) ([]Booking, error) {
	rows, err := q.db.QueryContext(ctx, listTrainerBookingsInWindow, trainerID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.CourtID, &b.TrainerID, &b.StartTime, &b.EndTime,
			&b.SplitTraining, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

const listBookingsByUser = `
SELECT b.id, b.user_id, b.court_id, b.trainer_id, b.start_time, b.end_time, b.split_training, b.created_at,
       c.name, c.surface, u.username, u.name, t.name
FROM bookings b
JOIN courts c ON c.id = b.court_id
JOIN users u ON u.id = b.user_id
LEFT JOIN trainers t ON t.id = b.trainer_id
WHERE b.user_id = ?
ORDER BY b.start_time DESC
`

func (q *Queries) ListBookingsByUser(ctx context.Context, userID string) ([]BookingDetail, error) {
	rows, err := q.db.QueryContext(ctx, listBookingsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

const listBookingsForDay = `
SELECT b.id, b.user_id, b.court_id, b.trainer_id, b.start_time, b.end_time, b.split_training, b.created_at,
       c.name, c.surface, u.username, u.name, t.name
FROM bookings b
JOIN courts c ON c.id = b.court_id
JOIN users u ON u.id = b.user_id
LEFT JOIN trainers t ON t.id = b.trainer_id
WHERE b.start_time >= ? AND b.start_time < ?
ORDER BY b.start_time
`

func (q *Queries) ListBookingsForDay(ctx context.Context, dayStart, dayEnd time.Time) ([]BookingDetail, error) {
	rows, err := q.db.QueryContext(ctx, listBookingsForDay, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

func scanBookingDetails(rows *sql.Rows) ([]BookingDetail, error) {
	var details []BookingDetail
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.CourtID, &d.TrainerID, &d.StartTime, &d.EndTime,
			&d.SplitTraining, &d.CreatedAt,
			&d.CourtName, &d.CourtSurface, &d.Username, &d.UserName, &d.TrainerName,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
