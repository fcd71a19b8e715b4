// Package db carries a gorm transaction across use case and repository
// boundaries through the context, so a flow that touches several
// tables (settlement opening a window while consuming a promo use, a
// vote bumping likes behind the quota check) commits or rolls back as
// one unit.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TransactionManager wraps a gorm handle and runs functions inside a
// single transaction shared by every repository call they make.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction executes fn inside one transaction. The transaction
// handle rides in the context fn receives; any repository resolving its
// handle via GetTxFromContext joins it. An error from fn rolls the
// whole transaction back.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// GetTx returns the context's transaction when inside RunInTransaction,
// otherwise the manager's base handle.
func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return tm.db.WithContext(ctx)
}

// GetTxFromContext is the repository-side counterpart of GetTx: it
// resolves the ambient transaction, falling back to defaultDB when the
// call is not transactional.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
