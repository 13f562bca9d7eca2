package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// TaskService manages task CRUD. Every owner-scoped operation resolves the
// owning account first; a task is never created against a missing owner.
// The owner check and the subsequent task write are two independent store
// calls, not a transaction.
type TaskService struct {
	tasks      repository.TaskRepository
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TaskDependencies bundles repositories for the task service.
type TaskDependencies struct {
	TaskRepo    repository.TaskRepository
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// TaskCreateInput describes a task creation payload.
type TaskCreateInput struct {
	Description string
	Active      bool
	OwnerID     string
}

// TaskUpdateInput describes a task update payload. The owner is immutable.
type TaskUpdateInput struct {
	ID          string
	Description string
	Active      bool
}

// NewTaskService builds the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		accounts:   deps.AccountRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ListByOwner returns all tasks owned by the account.
func (s *TaskService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	if err := s.ownerExists(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.ListByOwner(ctx, ownerID)
}

// ListByOwnerAndActive returns the owner's tasks filtered by active flag.
func (s *TaskService) ListByOwnerAndActive(ctx context.Context, ownerID string, active bool) ([]domain.Task, error) {
	if err := s.ownerExists(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.ListByOwnerAndActive(ctx, ownerID, active)
}

// Create inserts a task after resolving its owner.
func (s *TaskService) Create(ctx context.Context, input TaskCreateInput) (*domain.Task, error) {
	if err := s.ownerExists(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Description: input.Description,
		Active:      input.Active,
		OwnerID:     input.OwnerID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTaskCreated,
		AccountID: task.OwnerID,
		Timestamp: time.Now(),
		Payload:   events.TaskCreatedPayload{TaskID: task.ID, Description: task.Description, Active: task.Active},
	})
	return task, nil
}

// Update rewrites description and active flag of an existing task.
func (s *TaskService) Update(ctx context.Context, input TaskUpdateInput) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewTaskNotFound()
		}
		return nil, err
	}

	wasActive := task.Active
	task.Description = input.Description
	task.Active = input.Active

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewTaskNotFound()
		}
		return nil, err
	}

	if wasActive && !task.Active {
		s.publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTaskCompleted,
			AccountID: task.OwnerID,
			Timestamp: time.Now(),
			Payload:   events.TaskCompletedPayload{TaskID: task.ID},
		})
	}
	return task, nil
}

// Delete removes a task by id.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.tasks.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewTaskNotFound()
		}
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewTaskNotFound()
		}
		return err
	}
	return nil
}

func (s *TaskService) ownerExists(ctx context.Context, ownerID string) error {
	if _, err := s.accounts.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewAccountNotFound()
		}
		return err
	}
	return nil
}

func (s *TaskService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
