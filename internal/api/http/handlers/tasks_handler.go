package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/service"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// TasksHandler exposes task endpoints.
type TasksHandler struct {
	tasks *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{tasks: taskService}
}

// ListByOwner handles GET /todos/:ownerId.
func (h *TasksHandler) ListByOwner(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")
	if ownerID == "" {
		return apperrors.NewValidationError("owner id required", nil)
	}

	tasks, err := h.tasks.ListByOwner(c.Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskResponses(tasks)})
}

// ListByOwnerAndActive handles GET /todos/:ownerId/active/:active.
func (h *TasksHandler) ListByOwnerAndActive(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")
	if ownerID == "" {
		return apperrors.NewValidationError("owner id required", nil)
	}
	active, err := strconv.ParseBool(c.Params("active"))
	if err != nil {
		return apperrors.NewValidationError("active must be true or false", nil)
	}

	tasks, err := h.tasks.ListByOwnerAndActive(c.Context(), ownerID, active)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskResponses(tasks)})
}

// Create handles POST /todos.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Description == "" || req.OwnerID == "" {
		return apperrors.NewValidationError("description and owner_id required", nil)
	}

	task, err := h.tasks.Create(c.Context(), service.TaskCreateInput{
		Description: req.Description,
		Active:      req.Active,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTaskResponse(task)})
}

// Update handles PUT /todos.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	var req dto.TaskUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ID == "" || req.Description == "" {
		return apperrors.NewValidationError("id and description required", nil)
	}

	task, err := h.tasks.Update(c.Context(), service.TaskUpdateInput{
		ID:          req.ID,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskResponse(task)})
}

// Delete handles DELETE /todos/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("id required", nil)
	}
	if err := h.tasks.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
