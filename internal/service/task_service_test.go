package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

type taskFixture struct {
	svc      *TaskService
	accounts repository.AccountRepository
	tasks    repository.TaskRepository
	owner    *domain.Account
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	accounts := repository.NewInMemAccountRepository()
	tasks := repository.NewInMemTaskRepository()

	owner := &domain.Account{FirstName: "Ann", LastName: "A", Email: "ann@x.com", Role: domain.RoleStandard}
	require.NoError(t, accounts.Create(context.Background(), owner))

	return &taskFixture{
		svc: NewTaskService(TaskDependencies{
			TaskRepo:    tasks,
			AccountRepo: accounts,
			Dispatcher:  events.NewInMemoryDispatcher(),
			Logger:      zap.NewNop(),
		}),
		accounts: accounts,
		tasks:    tasks,
		owner:    owner,
	}
}

func TestTaskService_Create(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.svc.Create(context.Background(), TaskCreateInput{
		Description: "write report", Active: true, OwnerID: f.owner.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, f.owner.ID, task.OwnerID)
}

func TestTaskService_Create_MissingOwnerWritesNothing(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, TaskCreateInput{Description: "orphan", Active: true, OwnerID: "owner-7"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAccountNotFound))

	stored, err := f.tasks.ListByOwner(ctx, "owner-7")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestTaskService_Create_AfterOwnerRegistered(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, TaskCreateInput{Description: "early", OwnerID: "owner-7"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAccountNotFound))

	late := &domain.Account{FirstName: "Bob", LastName: "B", Email: "bob@x.com", Role: domain.RoleStandard}
	require.NoError(t, f.accounts.Create(ctx, late))

	task, err := f.svc.Create(ctx, TaskCreateInput{Description: "late", Active: true, OwnerID: late.ID})
	require.NoError(t, err)
	assert.Equal(t, late.ID, task.OwnerID)
}

func TestTaskService_ListByOwner(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, TaskCreateInput{Description: "one", Active: true, OwnerID: f.owner.ID})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, TaskCreateInput{Description: "two", Active: false, OwnerID: f.owner.ID})
	require.NoError(t, err)

	all, err := f.svc.ListByOwner(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.ListByOwner(ctx, "owner-7")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAccountNotFound))
}

func TestTaskService_ListByOwnerAndActive(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, TaskCreateInput{Description: "open", Active: true, OwnerID: f.owner.ID})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, TaskCreateInput{Description: "done", Active: false, OwnerID: f.owner.ID})
	require.NoError(t, err)

	active, err := f.svc.ListByOwnerAndActive(ctx, f.owner.ID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "open", active[0].Description)

	_, err = f.svc.ListByOwnerAndActive(ctx, "owner-7", true)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAccountNotFound))
}

func TestTaskService_Update(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.svc.Create(ctx, TaskCreateInput{Description: "draft", Active: true, OwnerID: f.owner.ID})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, TaskUpdateInput{ID: task.ID, Description: "final", Active: false})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Description)
	assert.False(t, updated.Active)
	// owner survives the update untouched
	assert.Equal(t, f.owner.ID, updated.OwnerID)
}

func TestTaskService_Update_UnknownTask(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.svc.Update(context.Background(), TaskUpdateInput{ID: "missing", Description: "x"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTaskNotFound))
}

func TestTaskService_Delete(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.svc.Create(ctx, TaskCreateInput{Description: "temp", Active: true, OwnerID: f.owner.ID})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, task.ID))
	assert.True(t, apperrors.HasCode(f.svc.Delete(ctx, task.ID), apperrors.CodeTaskNotFound))
}
