package domain

import "time"

// Task is a unit of work owned by exactly one account.
// OwnerID is set at creation and never changed by updates.
type Task struct {
	ID          string
	Description string
	Active      bool
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
