package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtbook/courtbook/internal/booking"
)

const (
	slotInventoryJobName = "slot_inventory"
	slotInventoryCron    = "10 0 * * *" // shortly after midnight UTC
	slotIntegrityJobName = "slot_integrity"
	slotIntegrityCron    = "0 * * * *"
	jobTimeout           = 2 * time.Minute
)

// RegisterSlotJobs schedules the nightly slot inventory extension and the
// hourly booked-flag integrity sweep.
func RegisterSlotJobs(s *Service, svc *booking.Service, daysAhead int) error {
	if svc == nil {
		return fmt.Errorf("slot jobs require booking service")
	}

	inventoryLogger := log.With().
		Str("component", "slot_inventory_job").
		Int("days_ahead", daysAhead).
		Logger()

	_, err := s.AddJob(slotInventoryJobName, slotInventoryCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		ctx = inventoryLogger.WithContext(ctx)

		if err := svc.GenerateSlotsAhead(ctx, daysAhead); err != nil {
			inventoryLogger.Error().Err(err).Msg("Slot inventory job failed")
			return
		}
		inventoryLogger.Info().Msg("Slot inventory extended")
	})
	if err != nil {
		return fmt.Errorf("register slot inventory job: %w", err)
	}

	integrityLogger := log.With().
		Str("component", "slot_integrity_job").
		Logger()

	_, err = s.AddJob(slotIntegrityJobName, slotIntegrityCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		ctx = integrityLogger.WithContext(ctx)

		drifted, err := svc.CheckIntegrity(ctx)
		if err != nil {
			integrityLogger.Error().Err(err).Msg("Slot integrity sweep failed")
			return
		}
		if drifted > 0 {
			integrityLogger.Warn().Int("drifted", drifted).Msg("Slot integrity sweep found drift")
		}
	})
	if err != nil {
		return fmt.Errorf("register slot integrity job: %w", err)
	}

	return nil
}
