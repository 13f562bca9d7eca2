package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/todo-service/internal/domain"
)

func TestInMemAccountRepository_CreateEnforcesUniqueEmail(t *testing.T) {
	repo := NewInMemAccountRepository()
	ctx := context.Background()

	first := &domain.Account{Email: "ann@x.com", FirstName: "Ann"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)

	second := &domain.Account{Email: "ann@x.com", FirstName: "Other"}
	assert.ErrorIs(t, repo.Create(ctx, second), ErrDuplicateKey)
}

func TestInMemAccountRepository_ConcurrentCreatesOneWinner(t *testing.T) {
	repo := NewInMemAccountRepository()
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.Create(ctx, &domain.Account{Email: "race@x.com"})
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrDuplicateKey):
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, duplicates)
}

func TestInMemAccountRepository_UpdateEmailRules(t *testing.T) {
	repo := NewInMemAccountRepository()
	ctx := context.Background()

	ann := &domain.Account{Email: "ann@x.com"}
	bob := &domain.Account{Email: "bob@x.com"}
	require.NoError(t, repo.Create(ctx, ann))
	require.NoError(t, repo.Create(ctx, bob))

	// keeping your own email is fine
	ann.FirstName = "Ann"
	require.NoError(t, repo.Update(ctx, ann))

	// taking someone else's is not
	ann.Email = "bob@x.com"
	assert.ErrorIs(t, repo.Update(ctx, ann), ErrDuplicateKey)

	// moving to a free email releases the old one
	ann.Email = "ann2@x.com"
	require.NoError(t, repo.Update(ctx, ann))

	freed := &domain.Account{Email: "ann@x.com"}
	assert.NoError(t, repo.Create(ctx, freed))
}

func TestInMemAccountRepository_NotFound(t *testing.T) {
	repo := NewInMemAccountRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Account{ID: "missing", Email: "a@b"}), ErrNotFound)
}

func TestInMemTaskRepository_OwnerQueries(t *testing.T) {
	repo := NewInMemTaskRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Task{Description: "one", Active: true, OwnerID: "owner-1"}))
	require.NoError(t, repo.Create(ctx, &domain.Task{Description: "two", Active: false, OwnerID: "owner-1"}))
	require.NoError(t, repo.Create(ctx, &domain.Task{Description: "three", Active: true, OwnerID: "owner-2"}))

	all, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := repo.ListByOwnerAndActive(ctx, "owner-1", true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "one", active[0].Description)

	inactive, err := repo.ListByOwnerAndActive(ctx, "owner-1", false)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "two", inactive[0].Description)
}

func TestInMemTaskRepository_NotFound(t *testing.T) {
	repo := NewInMemTaskRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Task{ID: "missing"}), ErrNotFound)
}
