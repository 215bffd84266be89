package unitofwork

import (
	"context"

	"excel-analytics-be/internal/repository/contract"
)

// UnitOfWork hands out repositories bound to one connection or, between
// Begin and Commit, to one transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	// Rollback is a no-op once the transaction has been committed, so it
	// can always be deferred right after Begin.
	Rollback() error

	// Do runs fn inside a transaction. fn's error, or a panic, rolls back.
	Do(ctx context.Context, fn func(tx UnitOfWork) error) error

	UserRepository() contract.UserRepository
	FileRepository() contract.FileRepository
	AnalysisRepository() contract.AnalysisRepository
}
