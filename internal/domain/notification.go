package domain

import "github.com/google/uuid"

// Outcome is the final result of one schedule generation run,
// delivered to the requester asynchronously.
type Outcome struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ProgressEvent is emitted once per engine generation.
type ProgressEvent struct {
	Generation int     `json:"generation"`
	Fitness    float64 `json:"fitness"`
}

type Notification struct {
	BatchHandle uuid.UUID `json:"batchHandle"`
	Outcome     Outcome   `json:"outcome"`
}
