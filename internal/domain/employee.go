package domain

import "time"

type Employee struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"` // external employee identifier, e.g. "KP24"
	FullName  string    `json:"fullName"`
	RoleIDs   []int64   `json:"roleIDs"` // every role the employee can be scheduled under
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

type Absence struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeID"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
