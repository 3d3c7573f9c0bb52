package domain

import "time"

// PredefinedShift is one of the named shift time windows a staffing
// request can refer to. Times of day are stored as "15:04:05" strings;
// an end time earlier than the start time means the shift crosses midnight.
type PredefinedShift struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// Shift is one persisted work assignment. Shifts are created unpublished
// and stay revocable until they are marked published.
type Shift struct {
	ID         int64     `json:"id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	EmployeeID int64     `json:"employeeID"`
	RoleID     int64     `json:"roleID"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
