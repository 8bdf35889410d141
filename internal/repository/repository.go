// internal/repository/repository.go
package repository

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"
)

// Transaction abstracts an open DB transaction so services can be tested
// without a live database.
type Transaction interface {
	Commit() error
	Rollback() error
}

// gormTransaction wraps a GORM transaction handle.
type gormTransaction struct {
	tx *gorm.DB
}

func (t *gormTransaction) Commit() error {
	return t.tx.Commit().Error
}

func (t *gormTransaction) Rollback() error {
	slog.Warn("Rolling back transaction")
	return t.tx.Rollback().Error
}

// translateDuplicate maps a unique-constraint violation onto the given
// domain error, leaving other errors untouched. The org-scoped unique
// indexes make this the conflict signal for concurrent inserts.
func translateDuplicate(err, domainErr error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainErr
	}
	return err
}
