package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/pkg/logger"
	"github.com/nimasrn/notification-gateway/pkg/prom"
)

const inviteLockPrefix = "invite:lock:"

type Outcome int

const (
	OutcomeExisting Outcome = iota
	OutcomeInvited
)

func (o Outcome) String() string {
	if o == OutcomeInvited {
		return "invited"
	}
	return "existing"
}

// RecipientResolver finds the user behind a phone number, inviting and
// provisioning one when the phone is unknown.
type RecipientResolver struct {
	users   UserRepository
	inviter Inviter
	locks   KeyValueStore
	lockTTL time.Duration
}

func NewRecipientResolver(users UserRepository, inviter Inviter, locks KeyValueStore, lockTTL time.Duration) *RecipientResolver {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &RecipientResolver{
		users:   users,
		inviter: inviter,
		locks:   locks,
		lockTTL: lockTTL,
	}
}

// ResolveOrInvite returns the id of the user with phone. For an unknown phone
// the invite SMS is sent first and the user is created only when it went out;
// any failure is a *DispatchError and leaves no user behind.
//
// The returned release func must be called once the transaction holding the
// new user has finished. Until then the invite lock stays taken so a
// concurrent dispatch cannot miss the uncommitted user and invite again.
func (r *RecipientResolver) ResolveOrInvite(ctx context.Context, phone, companyName string) (int64, Outcome, func(), error) {
	id, found, err := r.lookup(ctx, phone)
	if err != nil || found {
		return id, OutcomeExisting, noRelease, err
	}

	// one invite per phone at a time across dispatches
	release, err := r.lock(ctx, phone)
	if err != nil {
		return 0, 0, noRelease, err
	}

	id, outcome, err := r.invite(ctx, phone, companyName)
	if err != nil || outcome == OutcomeExisting {
		release()
		return id, outcome, noRelease, err
	}
	return id, outcome, release, nil
}

func noRelease() {}

func (r *RecipientResolver) lock(ctx context.Context, phone string) (func(), error) {
	token := []byte(uuid.NewString())
	lockKey := inviteLockPrefix + phone
	acquired, err := r.locks.SetNX(ctx, lockKey, token, r.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire invite lock: %w", err)
	}
	if !acquired {
		prom.IncInvite("locked")
		return nil, &DispatchError{Reason: ReasonInviteInProgress}
	}
	prom.AddInviteLocks(1)

	var once sync.Once
	return func() {
		once.Do(func() {
			prom.AddInviteLocks(-1)
			if _, err := r.locks.DelIfEquals(context.WithoutCancel(ctx), lockKey, token); err != nil {
				logger.Warn("[recipient] failed to release invite lock", "phone", logger.MaskPhone(phone), "error", err)
			}
		})
	}, nil
}

// invite runs under the lock. A user committed by the previous holder is
// picked up instead of sending a second invite.
func (r *RecipientResolver) invite(ctx context.Context, phone, companyName string) (int64, Outcome, error) {
	id, found, err := r.lookup(ctx, phone)
	if err != nil || found {
		return id, OutcomeExisting, err
	}

	if !r.inviter.SendInvite(ctx, phone, companyName) {
		prom.IncInvite("not_sent")
		logger.Warn("[recipient] invite not sent", "phone", logger.MaskPhone(phone))
		return 0, 0, &DispatchError{Reason: ReasonInviteNotSent}
	}
	prom.IncInvite("sent")

	userUUID, err := uuid.NewV7()
	if err != nil {
		return 0, 0, fmt.Errorf("generate uuid: %w", err)
	}
	user, err := r.users.Create(ctx, &model.User{
		UUID:  userUUID.String(),
		Phone: phone,
		Role:  model.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return 0, 0, &DispatchError{Reason: ReasonRecipientConflict}
		}
		return 0, 0, fmt.Errorf("create invited user: %w", err)
	}

	logger.Info("[recipient] user invited", "user_id", user.ID, "phone", logger.MaskPhone(phone))
	return user.ID, OutcomeInvited, nil
}

func (r *RecipientResolver) lookup(ctx context.Context, phone string) (int64, bool, error) {
	user, err := r.users.FindByPhone(ctx, phone)
	if err == nil {
		return user.ID, true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("find user by phone: %w", err)
}
