package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	t.Run("defaults role to user", func(t *testing.T) {
		u, err := repo.Create(ctx, &model.User{UUID: uuid.NewString(), Phone: "09120000001"})
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
		assert.Equal(t, model.RoleUser, u.Role)
		assert.False(t, u.Verified())
	})

	t.Run("duplicate phone is rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.User{UUID: uuid.NewString(), Phone: "09120000001"})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
		assert.Equal(t, int64(1), repotest.CountUsers(t, db, "09120000001"))
	})
}

func TestUserRepository_Find(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	seeded := repotest.SeedUser(t, db, "09120000002", model.RoleUser)

	byPhone, err := repo.FindByPhone(ctx, "09120000002")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byPhone.ID)

	byID, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.UUID, byID.UUID)

	_, err = repo.FindByPhone(ctx, "09999999999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_MarkPhoneVerified(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	u := repotest.SeedUser(t, db, "09120000003", model.RoleUser)
	first := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)

	require.NoError(t, repo.MarkPhoneVerified(ctx, u.ID, first))
	require.NoError(t, repo.MarkPhoneVerified(ctx, u.ID, time.Now()))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PhoneVerifiedAt)
	assert.True(t, got.PhoneVerifiedAt.Equal(first))
}

func TestUserRepository_UpdateRole(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	u := repotest.SeedUser(t, db, "09120000004", model.RoleUser)
	require.NoError(t, repo.UpdateRole(ctx, u.ID, model.RoleOwner))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, got.Role)

	assert.ErrorIs(t, repo.UpdateRole(ctx, 9999, model.RoleOwner), repository.ErrNotFound)
}
