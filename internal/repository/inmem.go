package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/todo-service/internal/domain"
)

// In-memory implementations used by tests. They honor the same contracts as
// the Postgres repositories, in particular the compare-and-insert semantics
// of AccountRepository.Create: the email check and the insert happen under
// one lock, so concurrent creates with the same email race safely.

type inMemAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	byEmail  map[string]string
}

// NewInMemAccountRepository returns an in-memory AccountRepository.
func NewInMemAccountRepository() AccountRepository {
	return &inMemAccountRepository{
		accounts: make(map[string]*domain.Account),
		byEmail:  make(map[string]string),
	}
}

func (r *inMemAccountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[account.Email]; taken {
		return ErrDuplicateKey
	}

	now := time.Now()
	account.ID = uuid.NewString()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := *account
	r.accounts[account.ID] = &stored
	r.byEmail[account.Email] = account.ID
	return nil
}

func (r *inMemAccountRepository) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.accounts[account.ID]
	if !ok {
		return ErrNotFound
	}
	if owner, taken := r.byEmail[account.Email]; taken && owner != account.ID {
		return ErrDuplicateKey
	}

	delete(r.byEmail, existing.Email)
	account.UpdatedAt = time.Now()

	stored := *account
	r.accounts[account.ID] = &stored
	r.byEmail[account.Email] = account.ID
	return nil
}

func (r *inMemAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *inMemAccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r.accounts[id]
	return &copied, nil
}

func (r *inMemAccountRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byEmail, account.Email)
	delete(r.accounts, id)
	return nil
}

func (r *inMemAccountRepository) ListAll(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		result = append(result, *account)
	}
	return result, nil
}

type inMemTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

// NewInMemTaskRepository returns an in-memory TaskRepository.
func NewInMemTaskRepository() TaskRepository {
	return &inMemTaskRepository{tasks: make(map[string]*domain.Task)}
}

func (r *inMemTaskRepository) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *inMemTaskRepository) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return ErrNotFound
	}
	task.UpdatedAt = time.Now()

	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *inMemTaskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *inMemTaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *inMemTaskRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			result = append(result, *task)
		}
	}
	return result, nil
}

func (r *inMemTaskRepository) ListByOwnerAndActive(_ context.Context, ownerID string, active bool) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID && task.Active == active {
			result = append(result, *task)
		}
	}
	return result, nil
}
