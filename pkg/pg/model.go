package pg

import (
	"time"

	"gorm.io/gorm"
)

// Model is the bigint-keyed base row with soft delete shared by most tables.
type Model struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;column:id"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
