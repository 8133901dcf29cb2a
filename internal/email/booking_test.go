package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeSender struct {
	recipient string
	subject   string
	body      string
	err       error
	calls     int
}

func (f *fakeSender) Send(ctx context.Context, recipient, subject, body string) error {
	f.calls++
	f.recipient = recipient
	f.subject = subject
	f.body = body
	return f.err
}

func TestSendBookingConfirmation(t *testing.T) {
	sender := &fakeSender{}
	start := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

	SendBookingConfirmation(context.Background(), sender, "alice@example.com", "Court 1", start, start.Add(time.Hour))

	if sender.calls != 1 {
		t.Fatalf("calls: got %d, want 1", sender.calls)
	}
	if sender.recipient != "alice@example.com" {
		t.Fatalf("recipient: got %q", sender.recipient)
	}
	if sender.subject != "Booking confirmed: Court 1" {
		t.Fatalf("subject: got %q", sender.subject)
	}
	if !strings.Contains(sender.body, "2026-09-01 10:00") || !strings.Contains(sender.body, "2026-09-01 11:00") {
		t.Fatalf("body: %q", sender.body)
	}
}

func TestSendBookingConfirmationSkipsWithoutRecipient(t *testing.T) {
	sender := &fakeSender{}
	SendBookingConfirmation(context.Background(), sender, "", "Court 1", time.Now(), time.Now())
	if sender.calls != 0 {
		t.Fatalf("calls: got %d, want 0", sender.calls)
	}
}

func TestSendBookingCancellationSwallowsErrors(t *testing.T) {
	sender := &fakeSender{err: errors.New("ses down")}
	start := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

	// Must not panic or propagate.
	SendBookingCancellation(context.Background(), sender, "alice@example.com", "Court 1", start)
	if sender.calls != 1 {
		t.Fatalf("calls: got %d, want 1", sender.calls)
	}
	if sender.subject != "Booking cancelled: Court 1" {
		t.Fatalf("subject: got %q", sender.subject)
	}
}
