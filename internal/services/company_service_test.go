package services

import (
	"context"
	"testing"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyService_Create(t *testing.T) {
	db := repotest.NewDB(t)
	ctx := context.Background()
	plan := repotest.SeedPlan(t, db)
	users := repository.NewUserRepository(db)
	user := repotest.SeedUser(t, db, "09121234567", model.RoleUser)

	svc := NewCompanyService(repository.NewCompanyRepository(db), users, db)
	requester := model.Requester{ID: user.ID, Role: model.RoleUser}

	t.Run("unknown plan", func(t *testing.T) {
		_, err := svc.Create(ctx, requester, model.CompanyCreateRequest{Name: "Acme", PlanID: 999})
		assert.ErrorIs(t, err, ErrPlanUnavailable)
	})

	t.Run("user becomes owner", func(t *testing.T) {
		company, err := svc.Create(ctx, requester, model.CompanyCreateRequest{
			Name:     "Acme",
			PlanID:   plan.ID,
			Settings: map[string]any{"locale": "fa"},
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, company.Owner)
		assert.Equal(t, plan.ID, company.PlanID)

		got, err := users.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RoleOwner, got.Role)
	})

	t.Run("one company per owner", func(t *testing.T) {
		_, err := svc.Create(ctx, model.Requester{ID: user.ID, Role: model.RoleOwner}, model.CompanyCreateRequest{
			Name:   "Acme 2",
			PlanID: plan.ID,
		})
		assert.ErrorIs(t, err, ErrAlreadyOwner)
	})
}
