package events

import (
	"time"

	"github.com/spec-kit/todo-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventAccountUpdated    EventType = "account_updated"
	EventAccountDeleted    EventType = "account_deleted"
	EventTaskCreated       EventType = "task_created"
	EventTaskCompleted     EventType = "task_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AccountDeletedPayload payload. RemainingTasks records how many tasks still
// reference the deleted account; deletion does not cascade.
type AccountDeletedPayload struct {
	Email          string `json:"email"`
	RemainingTasks int    `json:"remaining_tasks"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID      string `json:"task_id"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// TaskCompletedPayload payload.
type TaskCompletedPayload struct {
	TaskID string `json:"task_id"`
}
