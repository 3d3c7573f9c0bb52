package domain

import "time"

type ScheduleRequirementRole struct {
	RoleID   int64 `json:"roleID"`
	Quantity int32 `json:"quantity"`
}

type ScheduleRequirementShift struct {
	PredefinedShiftID int64                     `json:"shiftID"`
	Roles             []ScheduleRequirementRole `json:"roles"`
}

// ScheduleRequirement names every shift slot that needs filling on one day.
type ScheduleRequirement struct {
	Date   time.Time                  `json:"date"`
	Shifts []ScheduleRequirementShift `json:"shifts"`
}
