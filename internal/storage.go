package internal

import (
	"errors"

	"gorm.io/gorm"
)

// IsDuplicateKey reports whether a write failed on a unique constraint.
// Repositories open gorm with TranslateError so both the postgres and the
// sqlite driver surface this as gorm.ErrDuplicatedKey.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
