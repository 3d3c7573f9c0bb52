package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
	"github.com/HarmoniApp/backend-sub000/internal/utils"
	"github.com/google/uuid"
)

// ShiftStore persists a decoded batch. The insert must be all-or-nothing.
type ShiftStore interface {
	InsertShifts(shifts []*domain.Shift) ([]int64, error)
}

// Runner drives one schedule generation end to end: engine run, decoding,
// batch persistence and the final outcome notification. It is meant to be
// started in its own goroutine; everything it reports goes through the
// Reporter, never back to the caller.
type Runner struct {
	handle    uuid.UUID
	scheduler *Scheduler
	decoder   *Decoder
	store     ShiftStore
	batches   *BatchRegistry
	reporter  Reporter
}

func NewRunner(handle uuid.UUID, s *Scheduler, decoder *Decoder, store ShiftStore, batches *BatchRegistry, reporter Reporter) *Runner {
	return &Runner{
		handle:    handle,
		scheduler: s,
		decoder:   decoder,
		store:     store,
		batches:   batches,
		reporter:  reporter,
	}
}

func (r *Runner) Run(ctx context.Context) {
	best := r.scheduler.Run(ctx)

	// a best-effort chromosome below the threshold is a soft failure:
	// nothing is persisted and the requester is told to try again
	if best.Fitness() < r.scheduler.parameters.FitnessThreshold {
		r.reportOutcome(domain.Outcome{
			Success: false,
			Message: fmt.Sprintf("no acceptable schedule found (best fitness %.2f), no shifts were saved - try generating again", best.Fitness()),
		})
		return
	}

	shifts, err := r.decoder.Decode(best, time.Now())
	if err != nil {
		r.reportOutcome(domain.Outcome{
			Success: false,
			Message: fmt.Sprintf("failed to decode the generated schedule: %v", err),
		})
		return
	}

	if err := utils.ValidateNoDoubleBooking(shifts); err != nil {
		r.reportOutcome(domain.Outcome{
			Success: false,
			Message: fmt.Sprintf("generated schedule failed validation: %v", err),
		})
		return
	}

	shiftIDs, err := r.store.InsertShifts(shifts)
	if err != nil {
		r.reportOutcome(domain.Outcome{
			Success: false,
			Message: fmt.Sprintf("failed to save the generated schedule: %v", err),
		})
		return
	}

	r.batches.Put(r.handle, shiftIDs)
	r.reportOutcome(domain.Outcome{
		Success: true,
		Message: fmt.Sprintf("schedule generated: %d shifts saved (fitness %.2f), review and publish or revoke them", len(shifts), best.Fitness()),
	})
}

func (r *Runner) reportOutcome(outcome domain.Outcome) {
	if r.reporter == nil {
		return
	}
	r.reporter.ReportOutcome(domain.Notification{
		BatchHandle: r.handle,
		Outcome:     outcome,
	})
}
