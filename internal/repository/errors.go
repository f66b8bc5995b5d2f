package repository

import (
	"errors"
	"fmt"

	"github.com/nimasrn/notification-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// mapError converts gorm and driver errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	err = pg.MapError(err)
	if errors.Is(err, pg.ErrUniqueViolation) {
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	}
	return err
}

func deletedAt(d gorm.DeletedAt) *gorm.DeletedAt {
	if !d.Valid {
		return nil
	}
	return &d
}
