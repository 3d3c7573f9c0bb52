package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
	"github.com/HarmoniApp/backend-sub000/internal/scheduler"
	"github.com/HarmoniApp/backend-sub000/internal/utils"
	"github.com/google/uuid"
)

// GenerateSchedule validates a staffing request, runs the feasibility gate
// synchronously, and starts the optimization in the background. The response
// carries the batch handle the caller later passes to revoke or publish;
// progress and the final outcome arrive through the reporter channels.
func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req []struct {
		Date   time.Time `json:"date" validate:"required"`
		Shifts []struct {
			ShiftID int64 `json:"shiftID" validate:"required"`
			Roles   []struct {
				RoleID   int64 `json:"roleID" validate:"required"`
				Quantity int32 `json:"quantity" validate:"min=0"`
			} `json:"roles" validate:"required,dive"`
		} `json:"shifts" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Var(req, "required,dive"); err != nil {
		h.badRequest(w, r, err)
		return
	}

	requirements := make([]domain.ScheduleRequirement, len(req))
	for i, day := range req {
		requirement := domain.ScheduleRequirement{
			Date:   day.Date,
			Shifts: make([]domain.ScheduleRequirementShift, len(day.Shifts)),
		}
		for j, shift := range day.Shifts {
			roles := make([]domain.ScheduleRequirementRole, len(shift.Roles))
			for k, role := range shift.Roles {
				roles[k] = domain.ScheduleRequirementRole{RoleID: role.RoleID, Quantity: role.Quantity}
			}
			requirement.Shifts[j] = domain.ScheduleRequirementShift{PredefinedShiftID: shift.ShiftID, Roles: roles}
		}
		requirements[i] = requirement
	}

	if err := utils.ValidateScheduleRequest(requirements); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, end := requestSpan(requirements)

	roles, err := h.repository.GetAllRoles()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	predefinedShifts, err := h.repository.GetAllPredefinedShifts()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	employees, err := h.repository.GetEligibleEmployees(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	parameters := &scheduler.Parameters{
		PopulationSize:   h.config.Scheduler.PopulationSize,
		MaxGenerations:   h.config.Scheduler.MaxGenerations,
		CrossoverRate:    h.config.Scheduler.CrossoverRate,
		MutationRate:     h.config.Scheduler.MutationRate,
		EliteCount:       h.config.Scheduler.EliteCount,
		ConflictPenalty:  h.config.Scheduler.ConflictPenalty,
		FitnessThreshold: h.config.Scheduler.FitnessThreshold,
	}

	handle := uuid.New()
	reporter := newRunReporter(handle, h.config, h.notificationChannel, h.redisClient)

	s, err := scheduler.New(parameters, requirements, predefinedShifts, roles, employees, reporter)
	if err != nil {
		var insufficientErr *scheduler.InsufficientEmployeesError
		var unknownErr *scheduler.UnknownReferenceError
		switch {
		case errors.As(err, &insufficientErr):
			// infeasible request: fail fast before a single generation runs
			h.errorResponse(w, r, insufficientErr.Error())
		case errors.As(err, &unknownErr):
			h.errorResponse(w, r, unknownErr.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	runner := scheduler.NewRunner(handle, s, scheduler.NewDecoder(predefinedShifts, roles), h.repository, h.batches, reporter)
	go runner.Run(context.Background())

	h.successResponse(w, r, "schedule generation started", map[string]any{
		"handle":          handle,
		"slots":           s.Slots(),
		"progressChannel": fmt.Sprintf("%s:%s", h.config.Redis.ProgressChannel, handle),
	})
}

// RevokeSchedule deletes every not-yet-published shift of a generated batch.
// An unknown, expired or already consumed handle is an explicit no-op, not
// an error: there is simply nothing left to revoke.
func (h *Handler) RevokeSchedule(w http.ResponseWriter, r *http.Request) {
	handle := r.Context().Value(BatchHandleCtx).(uuid.UUID)

	ids, ok := h.batches.Take(handle)
	if !ok {
		h.successResponse(w, r, "no generated schedule to revoke", nil)
		return
	}

	deleted, err := h.repository.DeleteUnpublishedShifts(ids)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, fmt.Sprintf("revoked %d unpublished shifts", deleted), nil)
}

// PublishSchedule marks a generated batch as published, which consumes the
// handle and puts the shifts out of revocation's reach.
func (h *Handler) PublishSchedule(w http.ResponseWriter, r *http.Request) {
	handle := r.Context().Value(BatchHandleCtx).(uuid.UUID)

	ids, ok := h.batches.Take(handle)
	if !ok {
		h.errorResponse(w, r, "no generated schedule to publish")
		return
	}

	published, err := h.repository.PublishShifts(ids)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, fmt.Sprintf("published %d shifts", published), nil)
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		h.errorResponse(w, r, "invalid or missing start date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		h.errorResponse(w, r, "invalid or missing end date, expected YYYY-MM-DD")
		return
	}

	shifts, err := h.repository.GetShiftsInRange(start, end.AddDate(0, 0, 1))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts retrieved", shifts)
}

func requestSpan(requirements []domain.ScheduleRequirement) (time.Time, time.Time) {
	start, end := requirements[0].Date, requirements[0].Date
	for _, requirement := range requirements {
		if requirement.Date.Before(start) {
			start = requirement.Date
		}
		if requirement.Date.After(end) {
			end = requirement.Date
		}
	}
	return start, end
}
