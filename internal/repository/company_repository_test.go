package repository_test

import (
	"context"
	"testing"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRepository(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewCompanyRepository(db)
	ctx := context.Background()

	plan := repotest.SeedPlan(t, db)
	owner := repotest.SeedUser(t, db, "09120000010", model.RoleOwner)

	created, err := repo.Create(ctx, &model.Company{
		Name:     "acme",
		Owner:    owner.ID,
		PlanID:   plan.ID,
		Settings: map[string]any{"locale": "fa"},
	})
	require.NoError(t, err)

	t.Run("find by owner", func(t *testing.T) {
		got, err := repo.FindByOwner(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "fa", got.Settings["locale"])
	})

	t.Run("one company per owner", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Company{Name: "second", Owner: owner.ID, PlanID: plan.ID})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
	})

	t.Run("plan lookup", func(t *testing.T) {
		got, err := repo.FindPlan(ctx, plan.ID)
		require.NoError(t, err)
		assert.True(t, got.IsActive)

		_, err = repo.FindPlan(ctx, 999)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
