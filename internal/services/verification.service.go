package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/pkg/logger"
	"github.com/nimasrn/notification-gateway/pkg/redis"
	"github.com/nimasrn/notification-gateway/pkg/validator"
)

const verifyKeyPrefix = "verify:"

// VerificationService runs phone based sign up: a code is sent by SMS and
// kept in redis until the user confirms it.
type VerificationService struct {
	users  UserRepository
	sender CodeSender
	codes  KeyValueStore
	ttl    time.Duration
	now    func() time.Time
}

func NewVerificationService(users UserRepository, sender CodeSender, codes KeyValueStore, ttl time.Duration) *VerificationService {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &VerificationService{
		users:  users,
		sender: sender,
		codes:  codes,
		ttl:    ttl,
		now:    time.Now,
	}
}

// CheckPhone creates the user when missing and sends a new code. A later
// call replaces the previous code.
func (s *VerificationService) CheckPhone(ctx context.Context, phone string) (*model.User, error) {
	if !validator.IsPhone(phone) {
		return nil, ErrInvalidPhone
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.createUser(ctx, phone)
	}
	if err != nil {
		return nil, err
	}

	code, ok := s.sender.SendVerificationCode(ctx, phone)
	if !ok {
		return nil, ErrVerificationNotSent
	}
	if err := s.codes.Set(ctx, verifyKeyPrefix+phone, []byte(code), s.ttl); err != nil {
		return nil, fmt.Errorf("store verification code: %w", err)
	}

	logger.Info("[verification] code sent", "user_id", user.ID, "phone", logger.MaskPhone(phone))
	return user, nil
}

// VerifyPhone consumes a matching code and marks the phone verified.
func (s *VerificationService) VerifyPhone(ctx context.Context, phone, code string) (*model.User, error) {
	if !validator.IsPhone(phone) {
		return nil, ErrInvalidPhone
	}

	stored, err := s.codes.Get(ctx, verifyKeyPrefix+phone)
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return nil, ErrWrongCode
		}
		return nil, fmt.Errorf("read verification code: %w", err)
	}
	if subtle.ConstantTimeCompare(stored, []byte(code)) != 1 {
		return nil, ErrWrongCode
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, notFound(err, "find user")
	}
	if err := s.users.MarkPhoneVerified(ctx, user.ID, s.now()); err != nil {
		return nil, fmt.Errorf("mark phone verified: %w", err)
	}
	if err := s.codes.Del(ctx, verifyKeyPrefix+phone); err != nil {
		logger.Warn("[verification] failed to delete code", "phone", logger.MaskPhone(phone), "error", err)
	}

	user, err = s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, notFound(err, "find user")
	}
	logger.Info("[verification] phone verified", "user_id", user.ID)
	return user, nil
}

func (s *VerificationService) createUser(ctx context.Context, phone string) (*model.User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate uuid: %w", err)
	}
	user, err := s.users.Create(ctx, &model.User{UUID: id.String(), Phone: phone, Role: model.RoleUser})
	if errors.Is(err, repository.ErrAlreadyExists) {
		// created concurrently by a dispatch invite or another check
		return s.users.FindByPhone(ctx, phone)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
