// Package repository wraps GORM queries for each persisted entity.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup by key matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write breaks a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// translate relies on gorm.Config.TranslateError being set on the
// connection so drivers report unique violations as gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// deleteByID removes one row and reports ErrNotFound when nothing matched.
func deleteByID(tx *gorm.DB, model interface{}, id uint) error {
	res := tx.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
