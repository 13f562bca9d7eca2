package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func newIdentityService(accounts repository.AccountRepository) *IdentityService {
	return NewIdentityService(testConfig(), IdentityDependencies{
		AccountRepo: accounts,
		Dispatcher:  events.NewInMemoryDispatcher(),
		Logger:      zap.NewNop(),
	})
}

func annRegistration() RegisterInput {
	return RegisterInput{
		FirstName: "Ann",
		LastName:  "A",
		Email:     "ann@x.com",
		Password:  "pw1",
		Role:      domain.RoleStandard,
	}
}

func TestIdentityService_Register(t *testing.T) {
	accounts := repository.NewInMemAccountRepository()
	svc := newIdentityService(accounts)
	ctx := context.Background()

	account, token, exp, err := svc.Register(ctx, annRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())
	assert.Equal(t, domain.RoleStandard, account.Role)

	stored, err := accounts.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", stored.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
}

func TestIdentityService_Register_DuplicateEmail(t *testing.T) {
	svc := newIdentityService(repository.NewInMemAccountRepository())
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, annRegistration())
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, annRegistration())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDuplicateEmail))
}

func TestIdentityService_Register_ConcurrentSameEmail(t *testing.T) {
	accounts := repository.NewInMemAccountRepository()
	svc := newIdentityService(accounts)
	ctx := context.Background()

	const attempts = 12
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _, err := svc.Register(ctx, annRegistration())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case apperrors.HasCode(err, apperrors.CodeDuplicateEmail):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, duplicates)

	all, err := accounts.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestIdentityService_Register_DefaultsRole(t *testing.T) {
	svc := newIdentityService(repository.NewInMemAccountRepository())

	input := annRegistration()
	input.Role = ""
	account, _, _, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStandard, account.Role)
}

func TestIdentityService_Authenticate(t *testing.T) {
	svc := newIdentityService(repository.NewInMemAccountRepository())
	ctx := context.Background()

	registered, _, _, err := svc.Register(ctx, annRegistration())
	require.NoError(t, err)

	account, token, _, err := svc.Authenticate(ctx, "ann@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)
	assert.NotEmpty(t, token)
}

func TestIdentityService_Authenticate_WrongPassword(t *testing.T) {
	svc := newIdentityService(repository.NewInMemAccountRepository())
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, annRegistration())
	require.NoError(t, err)

	_, _, _, err = svc.Authenticate(ctx, "ann@x.com", "wrong")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidCredentials))
}

func TestIdentityService_Authenticate_UnknownEmail(t *testing.T) {
	svc := newIdentityService(repository.NewInMemAccountRepository())

	_, _, _, err := svc.Authenticate(context.Background(), "nobody@x.com", "pw1")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAccountNotFound))
}
