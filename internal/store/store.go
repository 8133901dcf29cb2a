// internal/store/store.go
package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same queries can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Name         sql.NullString
	Email        sql.NullString
	IsAdmin      bool
	CreatedAt    time.Time
}

type Court struct {
	ID          string
	Name        string
	Description sql.NullString
	Price       int64
	Surface     string
}

type TimeSlot struct {
	ID        string
	CourtID   string
	StartTime time.Time
	EndTime   time.Time
	Booked    bool
}

// AvailableSlot is a TimeSlot joined with its court's display attributes.
type AvailableSlot struct {
	TimeSlot
	CourtName    string
	CourtPrice   int64
	CourtSurface string
}

type Trainer struct {
	ID             string
	Name           string
	Description    sql.NullString
	Photo          sql.NullString
	Price          int64
	ChildrenPrice  int64
	Specialization string
	Experience     int64
	Achievements   sql.NullString
}

type Booking struct {
	ID            string
	UserID        string
	CourtID       string
	TrainerID     sql.NullString
	StartTime     time.Time
	EndTime       time.Time
	SplitTraining bool
	CreatedAt     time.Time
}

// BookingDetail is a Booking enriched with court, user, and trainer attributes
// for the admin day view.
type BookingDetail struct {
	Booking
	CourtName    string
	CourtSurface string
	Username     string
	UserName     sql.NullString
	TrainerName  sql.NullString
}
