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

func TestTicketService(t *testing.T) {
	db := repotest.NewDB(t)
	ctx := context.Background()
	a := repotest.SeedTenant(t, db, "alpha", 1)
	b := repotest.SeedTenant(t, db, "beta", 2)
	tickets := repository.NewTicketRepository(db)
	user := repotest.SeedUser(t, db, "09121234567", model.RoleUser)

	svc := NewTicketService(tickets, repository.NewCompanyRepository(db), db)
	asUser := model.Requester{ID: user.ID, Role: model.RoleUser}
	asOwnerA := model.Requester{ID: a.Owner.ID, Role: model.RoleOwner}
	asOwnerB := model.Requester{ID: b.Owner.ID, Role: model.RoleOwner}
	admin := model.Requester{ID: 999, Role: model.RoleAdmin}

	parent, err := svc.Create(ctx, asUser, model.TicketCreateRequest{
		CompanyID: a.Company.ID,
		Subject:   "billing",
		Body:      "my invoice looks wrong",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusPending, parent.Status)
	assert.Equal(t, user.ID, parent.UserID)

	t.Run("unknown company", func(t *testing.T) {
		_, err := svc.Create(ctx, asUser, model.TicketCreateRequest{CompanyID: 4242, Subject: "x", Body: "long enough body"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("reply to unknown parent", func(t *testing.T) {
		missing := int64(4242)
		_, err := svc.Create(ctx, asOwnerA, model.TicketCreateRequest{
			CompanyID: a.Company.ID, Subject: "re", Body: "looking into it", ReplyID: &missing,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("reply checks the parent", func(t *testing.T) {
		reply, err := svc.Create(ctx, asOwnerA, model.TicketCreateRequest{
			CompanyID: a.Company.ID, Subject: "re", Body: "looking into it", ReplyID: &parent.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, reply.ReplyID)
		assert.Equal(t, parent.ID, *reply.ReplyID)

		got, err := tickets.FindByID(ctx, parent.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusChecked, got.Status)
	})

	t.Run("status change is admin only", func(t *testing.T) {
		assert.ErrorIs(t, svc.UpdateStatus(ctx, asOwnerA, parent.ID, model.TicketStatusClosed), ErrForbidden)
		assert.ErrorIs(t, svc.UpdateStatus(ctx, admin, parent.ID, "archived"), ErrUnprocessableFields)
		require.NoError(t, svc.UpdateStatus(ctx, admin, parent.ID, model.TicketStatusClosed))
		assert.ErrorIs(t, svc.UpdateStatus(ctx, admin, 4242, model.TicketStatusClosed), ErrNotFound)
	})

	t.Run("outside the requester's scope", func(t *testing.T) {
		_, err := svc.Create(ctx, asOwnerB, model.TicketCreateRequest{
			CompanyID: a.Company.ID, Subject: "hello", Body: "filed under someone else",
		})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = svc.Create(ctx, asOwnerB, model.TicketCreateRequest{
			CompanyID: b.Company.ID, Subject: "re", Body: "replying across tenants", ReplyID: &parent.ID,
		})
		assert.ErrorIs(t, err, ErrNotFound)

		stranger := repotest.SeedUser(t, db, "09120000001", model.RoleUser)
		_, err = svc.Create(ctx, model.Requester{ID: stranger.ID, Role: model.RoleUser}, model.TicketCreateRequest{
			CompanyID: a.Company.ID, Subject: "re", Body: "not my ticket at all", ReplyID: &parent.ID,
		})
		assert.ErrorIs(t, err, ErrNotFound)

		got, err := tickets.FindByID(ctx, parent.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusClosed, got.Status, "parent is untouched")
	})

	t.Run("reply must stay in the parent's company", func(t *testing.T) {
		_, err := svc.Create(ctx, asUser, model.TicketCreateRequest{
			CompanyID: b.Company.ID, Subject: "re", Body: "moved to another company", ReplyID: &parent.ID,
		})
		assert.ErrorIs(t, err, ErrUnprocessableFields)
	})

	t.Run("visibility follows role", func(t *testing.T) {
		all, err := svc.List(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		own, err := svc.List(ctx, asUser)
		require.NoError(t, err)
		assert.Len(t, own, 1)

		company, err := svc.List(ctx, asOwnerA)
		require.NoError(t, err)
		assert.Len(t, company, 2)

		none, err := svc.List(ctx, asOwnerB)
		require.NoError(t, err)
		assert.Empty(t, none)

		_, err = svc.Get(ctx, asOwnerB, parent.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = svc.Get(ctx, asUser, parent.ID)
		assert.NoError(t, err)
	})
}
