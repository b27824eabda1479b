package database

import (
	"errors"
	"fmt"

	"anoa.com/filmorate/pkg/apperror"
	"gorm.io/gorm"
)

const internalErrorCallback = "filmorate:internal_error"

// registerErrorCallbacks marks every driver failure as apperror.ErrInternal so
// repositories can return gorm errors unchanged and still map to a 500.
// gorm.ErrRecordNotFound is left alone; repositories turn it into NotFound.
func registerErrorCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	registrations := []struct {
		after    string
		register func(string, func(*gorm.DB)) error
	}{
		{"gorm:create", cb.Create().After("gorm:create").Register},
		{"gorm:query", cb.Query().After("gorm:query").Register},
		{"gorm:update", cb.Update().After("gorm:update").Register},
		{"gorm:delete", cb.Delete().After("gorm:delete").Register},
		{"gorm:row", cb.Row().After("gorm:row").Register},
		{"gorm:raw", cb.Raw().After("gorm:raw").Register},
	}
	for _, r := range registrations {
		if err := r.register(internalErrorCallback, markInternal); err != nil {
			return fmt.Errorf("register error callback after %s: %w", r.after, err)
		}
	}
	return nil
}

func markInternal(db *gorm.DB) {
	if db.Error == nil || errors.Is(db.Error, gorm.ErrRecordNotFound) {
		return
	}
	db.Error = apperror.Internal(db.Error)
}
