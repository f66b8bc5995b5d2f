package model

import "time"

type ApiKey struct {
	ID        int64      `json:"id"`
	Key       string     `json:"key"`
	Title     string     `json:"title"`
	CompanyID int64      `json:"company_id"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type ApiKeyCreateRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}
