package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// AccountService manages account CRUD with the same uniqueness invariant as
// registration.
type AccountService struct {
	accounts   repository.AccountRepository
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AccountDependencies bundles repositories for the account service.
type AccountDependencies struct {
	AccountRepo repository.AccountRepository
	TaskRepo    repository.TaskRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// AccountUpdateInput describes an account update payload.
type AccountUpdateInput struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:   deps.AccountRepo,
		tasks:      deps.TaskRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// List returns every account.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.ListAll(ctx)
}

// FindByEmail looks up a single account by email.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewAccountNotFound()
		}
		return nil, err
	}
	return account, nil
}

// Create adds an account through the same uniqueness and hashing path as
// registration, without issuing a token.
func (s *AccountService) Create(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if _, err := s.accounts.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewDuplicateEmail()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleStandard
	}

	account := &domain.Account{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, err
	}
	return account, nil
}

// Update rewrites name, email and credential of an existing account. The
// password is re-hashed even when unchanged. An email change is rejected
// only when the target email belongs to a different account; "different" is
// decided by identifier, never by struct identity.
func (s *AccountService) Update(ctx context.Context, input AccountUpdateInput) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewAccountNotFound()
		}
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	if existing, err := s.accounts.GetByEmail(ctx, input.Email); err == nil {
		if existing.ID != account.ID {
			return nil, apperrors.NewDuplicateEmail()
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	account.FirstName = input.FirstName
	account.LastName = input.LastName
	account.Email = input.Email
	account.PasswordHash = hash

	if err := s.accounts.Update(ctx, account); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, apperrors.NewDuplicateEmail()
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewAccountNotFound()
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountUpdated,
		AccountID: account.ID,
		Timestamp: time.Now(),
	})
	return account, nil
}

// Delete removes an account. Owned tasks are NOT cascaded; their rows keep
// the dangling owner id. The emitted event carries the leftover count so the
// gap is at least visible in logs.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewAccountNotFound()
		}
		return err
	}

	owned, err := s.tasks.ListByOwner(ctx, id)
	if err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewAccountNotFound()
		}
		return err
	}

	if len(owned) > 0 {
		s.logger.Warn("account deleted with tasks still referencing it",
			zap.String("account_id", id),
			zap.Int("remaining_tasks", len(owned)))
	}
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountDeleted,
		AccountID: id,
		Timestamp: time.Now(),
		Payload:   events.AccountDeletedPayload{Email: account.Email, RemainingTasks: len(owned)},
	})
	return nil
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
