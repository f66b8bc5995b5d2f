package model

import "time"

type User struct {
	ID              int64      `json:"id"`
	UUID            string     `json:"uuid"`
	Phone           string     `json:"phone"`
	FirstName       string     `json:"first_name,omitempty"`
	LastName        string     `json:"last_name,omitempty"`
	Email           string     `json:"email,omitempty"`
	Role            Role       `json:"role"`
	PhoneVerifiedAt *time.Time `json:"phone_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (u *User) Verified() bool { return u.PhoneVerifiedAt != nil }

type CheckPhoneRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type VerifyPhoneRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	Code  string `json:"code"  validate:"required,len=5,numeric"`
}
