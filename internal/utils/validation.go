package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
)

func ValidatePredefinedShiftTime(shift *domain.PredefinedShift) error {
	if _, err := time.Parse("15:04:05", shift.StartTime); err != nil {
		return fmt.Errorf("shift %q has a malformed start time", shift.Name)
	}
	if _, err := time.Parse("15:04:05", shift.EndTime); err != nil {
		return fmt.Errorf("shift %q has a malformed end time", shift.Name)
	}
	// an end time before the start time is legal: the shift crosses midnight
	return nil
}

// ValidateScheduleRequest checks the structural invariants of a staffing
// request before any catalog lookups happen: at least one day, each day
// names at least one slot, and no negative quantities.
func ValidateScheduleRequest(requirements []domain.ScheduleRequirement) error {
	if len(requirements) == 0 {
		return errors.New("the request names no days to schedule")
	}

	for _, requirement := range requirements {
		if len(requirement.Shifts) == 0 {
			return fmt.Errorf("day %s names no shift slots", requirement.Date.Format("2006-01-02"))
		}
		for _, shift := range requirement.Shifts {
			if len(shift.Roles) == 0 {
				return fmt.Errorf("a slot on %s names no role requirements", requirement.Date.Format("2006-01-02"))
			}
			for _, role := range shift.Roles {
				if role.Quantity < 0 {
					return fmt.Errorf("a requirement on %s has a negative quantity", requirement.Date.Format("2006-01-02"))
				}
			}
		}
	}

	return nil
}

// ValidateNoDoubleBooking rejects a decoded batch in which the same
// employee holds two shifts starting on the same calendar day.
func ValidateNoDoubleBooking(shifts []*domain.Shift) error {
	seen := make(map[int64]map[string]bool)

	for _, shift := range shifts {
		day := shift.Start.Format("2006-01-02")
		if _, exists := seen[shift.EmployeeID]; !exists {
			seen[shift.EmployeeID] = make(map[string]bool)
		}
		if seen[shift.EmployeeID][day] {
			return fmt.Errorf("employee %d is booked twice on %s", shift.EmployeeID, day)
		}
		seen[shift.EmployeeID][day] = true
	}

	return nil
}
