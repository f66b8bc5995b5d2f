package repository

import (
	"context"
	"time"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
)

type UserRepository struct {
	*pg.DB
}

func NewUserRepository(db *pg.DB) *UserRepository {
	return &UserRepository{
		db,
	}
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	var entity UserEntity
	if err := r.Read(ctx).Where("phone = ?", phone).First(&entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toUserModel(&entity), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var entity UserEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		return nil, mapError(err)
	}
	return toUserModel(&entity), nil
}

// Create inserts a user. A phone or uuid collision returns ErrAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	entity := toUserEntity(user)
	if entity.Role == "" {
		entity.Role = string(model.RoleUser)
	}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toUserModel(entity), nil
}

// MarkPhoneVerified stamps phone_verified_at once; later calls keep the first time.
func (r *UserRepository) MarkPhoneVerified(ctx context.Context, id int64, at time.Time) error {
	return mapError(r.Write(ctx).
		Model(&UserEntity{}).
		Where("id = ? AND phone_verified_at IS NULL", id).
		Update("phone_verified_at", at).Error)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	res := r.Write(ctx).Model(&UserEntity{}).Where("id = ?", id).Update("role", string(role))
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
