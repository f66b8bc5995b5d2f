package model

import "time"

type Company struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Phone      string         `json:"phone,omitempty"`
	Email      string         `json:"email,omitempty"`
	NationalID string         `json:"national_id,omitempty"`
	Address    string         `json:"address,omitempty"`
	Owner      int64          `json:"owner"`
	PlanID     int64          `json:"plan_id"`
	Settings   map[string]any `json:"settings,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type CompanyCreateRequest struct {
	Name       string         `json:"name"        validate:"required,max=255"`
	Phone      string         `json:"phone"       validate:"omitempty,phone"`
	Email      string         `json:"email"       validate:"omitempty,email"`
	NationalID string         `json:"national_id" validate:"omitempty,max=32"`
	Address    string         `json:"address"     validate:"omitempty,max=1000"`
	PlanID     int64          `json:"plan_id"     validate:"required,gt=0"`
	Settings   map[string]any `json:"settings"`
}

type Plan struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	IsActive bool   `json:"is_active"`
}
