package dto

import "github.com/spec-kit/todo-service/internal/domain"

// TaskRequest payload for task creation.
type TaskRequest struct {
	Description string `json:"description"`
	Active      bool   `json:"active"`
	OwnerID     string `json:"owner_id"`
}

// TaskUpdateRequest payload for task updates. The owner cannot be changed.
type TaskUpdateRequest struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// TaskResponse is the external-facing task shape.
type TaskResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	OwnerID     string `json:"owner_id"`
}

// NewTaskResponse projects a task entity to its response shape.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Description: task.Description,
		Active:      task.Active,
		OwnerID:     task.OwnerID,
	}
}

// NewTaskResponses projects a slice of tasks.
func NewTaskResponses(tasks []domain.Task) []TaskResponse {
	result := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, NewTaskResponse(&tasks[i]))
	}
	return result
}
