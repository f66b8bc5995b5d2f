package repository

import (
	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
	"gorm.io/datatypes"
)

type CompanyEntity struct {
	pg.Model
	Name       string            `gorm:"column:name;not null"`
	Phone      string            `gorm:"column:phone"`
	Email      string            `gorm:"column:email"`
	NationalID string            `gorm:"column:national_id"`
	Address    string            `gorm:"column:address"`
	Owner      int64             `gorm:"column:owner;not null;uniqueIndex"`
	PlanID     int64             `gorm:"column:plan_id;not null;index"`
	Settings   datatypes.JSONMap `gorm:"column:settings"`
}

func (CompanyEntity) TableName() string {
	return "companies"
}

type PlanEntity struct {
	pg.Model
	Title    string `gorm:"column:title;not null"`
	Price    int64  `gorm:"column:price;not null;default:0"`
	IsActive bool   `gorm:"column:is_active;not null"`
}

func (PlanEntity) TableName() string {
	return "plans"
}

func toCompanyEntity(m *model.Company) *CompanyEntity {
	if m == nil {
		return nil
	}
	e := &CompanyEntity{
		Name:       m.Name,
		Phone:      m.Phone,
		Email:      m.Email,
		NationalID: m.NationalID,
		Address:    m.Address,
		Owner:      m.Owner,
		PlanID:     m.PlanID,
	}
	if m.Settings != nil {
		e.Settings = datatypes.JSONMap(m.Settings)
	}
	e.ID = m.ID
	return e
}

func toCompanyModel(e *CompanyEntity) *model.Company {
	if e == nil {
		return nil
	}
	return &model.Company{
		ID:         e.ID,
		Name:       e.Name,
		Phone:      e.Phone,
		Email:      e.Email,
		NationalID: e.NationalID,
		Address:    e.Address,
		Owner:      e.Owner,
		PlanID:     e.PlanID,
		Settings:   map[string]any(e.Settings),
		CreatedAt:  e.CreatedAt,
	}
}

func toPlanModel(e *PlanEntity) *model.Plan {
	if e == nil {
		return nil
	}
	return &model.Plan{
		ID:       e.ID,
		Title:    e.Title,
		Price:    e.Price,
		IsActive: e.IsActive,
	}
}
