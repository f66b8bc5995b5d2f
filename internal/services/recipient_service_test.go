package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const unseenPhone = "09127654321"

func TestRecipientResolver_ExistingUserIsNotInvited(t *testing.T) {
	db := repotest.NewDB(t)
	_, locks := newTestRedis(t)
	user := repotest.SeedUser(t, db, "09121234567", model.RoleUser)
	gw := &fakeGateway{ok: true}

	resolver := NewRecipientResolver(repository.NewUserRepository(db), gw, locks, time.Minute)

	id, outcome, release, err := resolver.ResolveOrInvite(context.Background(), user.Phone, "Acme")
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, OutcomeExisting, outcome)
	assert.Zero(t, gw.inviteCount())
	require.NotNil(t, release)
	assert.NotPanics(t, release)
}

func TestRecipientResolver_InviteCreatesUser(t *testing.T) {
	db := repotest.NewDB(t)
	mr, locks := newTestRedis(t)
	gw := &fakeGateway{ok: true}
	users := repository.NewUserRepository(db)

	resolver := NewRecipientResolver(users, gw, locks, time.Minute)

	id, outcome, release, err := resolver.ResolveOrInvite(context.Background(), unseenPhone, "Acme")
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvited, outcome)
	assert.Equal(t, 1, gw.inviteCount())
	assert.Equal(t, int64(1), repotest.CountUsers(t, db, unseenPhone))

	user, err := users.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, unseenPhone, user.Phone)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.False(t, user.Verified())
	parsed, err := uuid.Parse(user.UUID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	assert.True(t, mr.Exists(inviteLockPrefix+unseenPhone), "lock is kept until the caller releases it")
	release()
	assert.False(t, mr.Exists(inviteLockPrefix+unseenPhone))
	release()
}

func TestRecipientResolver_FailedInviteCreatesNothing(t *testing.T) {
	db := repotest.NewDB(t)
	mr, locks := newTestRedis(t)
	gw := &fakeGateway{ok: false}

	resolver := NewRecipientResolver(repository.NewUserRepository(db), gw, locks, time.Minute)

	_, _, release, err := resolver.ResolveOrInvite(context.Background(), unseenPhone, "Acme")
	assert.ErrorIs(t, err, ErrDispatchFailed)
	release()

	var de *DispatchError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ReasonInviteNotSent, de.Reason)
	assert.Zero(t, repotest.CountUsers(t, db, unseenPhone))
	assert.False(t, mr.Exists(inviteLockPrefix+unseenPhone))
}

func TestRecipientResolver_InviteInProgress(t *testing.T) {
	db := repotest.NewDB(t)
	mr, locks := newTestRedis(t)
	gw := &fakeGateway{ok: true}
	require.NoError(t, mr.Set(inviteLockPrefix+unseenPhone, "someone-else"))

	resolver := NewRecipientResolver(repository.NewUserRepository(db), gw, locks, time.Minute)

	_, _, release, err := resolver.ResolveOrInvite(context.Background(), unseenPhone, "Acme")
	release()
	var de *DispatchError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ReasonInviteInProgress, de.Reason)
	assert.Zero(t, gw.inviteCount())

	got, err := mr.Get(inviteLockPrefix + unseenPhone)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got, "foreign lock must be left alone")
}

func TestRecipientResolver_LockHolderCreatedUser(t *testing.T) {
	_, locks := newTestRedis(t)
	users := new(MockUserRepository)
	gw := &fakeGateway{ok: true}
	ctx := context.Background()

	// the user shows up between the first lookup and the lock
	users.On("FindByPhone", ctx, unseenPhone).Return(nil, repository.ErrNotFound).Once()
	users.On("FindByPhone", ctx, unseenPhone).Return(&model.User{ID: 42, Phone: unseenPhone}, nil).Once()

	resolver := NewRecipientResolver(users, gw, locks, time.Minute)

	id, outcome, release, err := resolver.ResolveOrInvite(ctx, unseenPhone, "Acme")
	require.NoError(t, err)
	release()
	assert.Equal(t, int64(42), id)
	assert.Equal(t, OutcomeExisting, outcome)
	assert.Zero(t, gw.inviteCount())
	users.AssertExpectations(t)
}

func TestRecipientResolver_UniquenessRaceIsConflict(t *testing.T) {
	_, locks := newTestRedis(t)
	users := new(MockUserRepository)
	gw := &fakeGateway{ok: true}
	ctx := context.Background()

	users.On("FindByPhone", ctx, unseenPhone).Return(nil, repository.ErrNotFound).Twice()
	users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Phone == unseenPhone && u.UUID != ""
	})).Return(nil, repository.ErrAlreadyExists)

	resolver := NewRecipientResolver(users, gw, locks, time.Minute)

	_, _, release, err := resolver.ResolveOrInvite(ctx, unseenPhone, "Acme")
	release()
	var de *DispatchError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ReasonRecipientConflict, de.Reason)
	users.AssertExpectations(t)
}

func TestRecipientResolver_LookupError(t *testing.T) {
	_, locks := newTestRedis(t)
	users := new(MockUserRepository)
	gw := &fakeGateway{ok: true}
	boom := errors.New("connection reset")

	users.On("FindByPhone", mock.Anything, unseenPhone).Return(nil, boom)

	resolver := NewRecipientResolver(users, gw, locks, time.Minute)

	_, _, release, err := resolver.ResolveOrInvite(context.Background(), unseenPhone, "Acme")
	release()
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDispatchFailed)
	assert.Zero(t, gw.inviteCount())
}
