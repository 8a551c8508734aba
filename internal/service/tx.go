package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx wraps fn in a database transaction. A nil db runs fn directly, which
// lets unit tests drive the service layer with stub repositories.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
