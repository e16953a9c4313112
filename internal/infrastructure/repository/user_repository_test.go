package repository

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casepanel/internal/domain/user"
	"casepanel/internal/infrastructure/database"
)

func newTestRepo(t *testing.T) user.Repository {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Single connection keeps sqlite writes serialized under concurrency
	db.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate())
	return NewUserRepository(db)
}

func newStoredUser(username string) *user.User {
	return &user.User{
		Username:     username,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Name:         "Test User",
		Role:         user.RoleUser,
		IsActive:     true,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	u := newStoredUser("newuser")
	require.NoError(t, repo.Create(u))
	assert.NotEmpty(t, u.ID)

	byUsername, err := repo.GetByUsername("newuser")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byUsername.ID)
	assert.True(t, byUsername.IsActive)
	assert.Nil(t, byUsername.LastLoginAt)

	byID, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "newuser", byID.Username)

	_, err = repo.GetByUsername("ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	require.NoError(t, repo.Create(newStoredUser("taken")))

	err := repo.Create(newStoredUser("taken"))
	assert.ErrorIs(t, err, user.ErrUsernameTaken)
}

func TestUserRepository_ConcurrentDuplicateCreate(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(newStoredUser("raceuser"))
		}(i)
	}
	wg.Wait()

	// Exactly one insert wins; the other resolves to the conflict error
	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, user.ErrUsernameTaken):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}

func TestUserRepository_GetActiveByUsername(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	u := newStoredUser("activeuser")
	require.NoError(t, repo.Create(u))

	_, err := repo.GetActiveByUsername("activeuser")
	require.NoError(t, err)

	require.NoError(t, repo.SetActive(u.ID, false))

	_, err = repo.GetActiveByUsername("activeuser")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	// Plain lookup still sees the deactivated row
	stored, err := repo.GetByUsername("activeuser")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestUserRepository_TouchLastLogin(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	u := newStoredUser("loginuser")
	require.NoError(t, repo.Create(u))

	at := time.Now().Round(time.Second)
	require.NoError(t, repo.TouchLastLogin(u.ID, at))

	stored, err := repo.GetByUsername("loginuser")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
	assert.WithinDuration(t, at, *stored.LastLoginAt, time.Second)

	assert.ErrorIs(t, repo.TouchLastLogin("no-such-id", at), user.ErrUserNotFound)
}

func TestUserRepository_ListAndCount(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Create(newStoredUser("one")))
	require.NoError(t, repo.Create(newStoredUser("two")))

	users, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, users, 2)

	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
