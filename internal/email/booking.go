package email

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const bookingTimeLayout = "2006-01-02 15:04"

// SendBookingConfirmation notifies the user that their court is reserved.
// Failures are logged, never surfaced: mail is best-effort.
func SendBookingConfirmation(ctx context.Context, sender Sender, recipient, courtName string, start, end time.Time) {
	if sender == nil || recipient == "" {
		return
	}

	subject := fmt.Sprintf("Booking confirmed: %s", courtName)
	body := fmt.Sprintf(
		"Your booking is confirmed.\n\nCourt: %s\nStart: %s UTC\nEnd: %s UTC\n",
		courtName,
		start.UTC().Format(bookingTimeLayout),
		end.UTC().Format(bookingTimeLayout),
	)

	if err := sender.Send(ctx, recipient, subject, body); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("recipient", recipient).Msg("Booking confirmation email failed")
	}
}

// SendBookingCancellation notifies the user that a booking was cancelled.
func SendBookingCancellation(ctx context.Context, sender Sender, recipient, courtName string, start time.Time) {
	if sender == nil || recipient == "" {
		return
	}

	subject := fmt.Sprintf("Booking cancelled: %s", courtName)
	body := fmt.Sprintf(
		"Your booking for %s at %s UTC has been cancelled.\n",
		courtName,
		start.UTC().Format(bookingTimeLayout),
	)

	if err := sender.Send(ctx, recipient, subject, body); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("recipient", recipient).Msg("Booking cancellation email failed")
	}
}
