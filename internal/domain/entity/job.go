package entity

import "time"

// Estados de un trabajo (proyecto) de cliente.
const (
	JobStatusPending   = "Pending"
	JobStatusCompleted = "Completed"
	JobStatusCanceled  = "Canceled"
)

// Job trabajo de un cliente al que pueden asociarse BOMs; número único.
type Job struct {
	ID          int64
	Number      string
	Description string
	CustomerID  int64
	ContactName string
	Status      string
	UserID      string
	StartDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	CustomerName string // join, solo lectura
}
