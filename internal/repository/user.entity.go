package repository

import (
	"time"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
)

type UserEntity struct {
	pg.Model
	UUID            string     `gorm:"column:uuid;not null;uniqueIndex"`
	Phone           string     `gorm:"column:phone;not null;uniqueIndex"`
	FirstName       string     `gorm:"column:first_name"`
	LastName        string     `gorm:"column:last_name"`
	Email           string     `gorm:"column:email"`
	Role            string     `gorm:"column:role;not null;default:user"`
	PhoneVerifiedAt *time.Time `gorm:"column:phone_verified_at"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	e := &UserEntity{
		UUID:            m.UUID,
		Phone:           m.Phone,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		Role:            string(m.Role),
		PhoneVerifiedAt: m.PhoneVerifiedAt,
	}
	e.ID = m.ID
	e.CreatedAt = m.CreatedAt
	return e
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:              e.ID,
		UUID:            e.UUID,
		Phone:           e.Phone,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		Email:           e.Email,
		Role:            model.Role(e.Role),
		PhoneVerifiedAt: e.PhoneVerifiedAt,
		CreatedAt:       e.CreatedAt,
	}
}
