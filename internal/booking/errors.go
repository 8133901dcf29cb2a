package booking

import "errors"

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrCourtNotFound      = errors.New("court not found")
	ErrSlotNotFound       = errors.New("time slot not found")
	ErrSlotTaken          = errors.New("time slot is already booked")
	ErrTrainerNotFound    = errors.New("trainer not found")
	ErrTrainerUnavailable = errors.New("trainer is already booked for this time")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotOwner           = errors.New("booking belongs to another user")
)
