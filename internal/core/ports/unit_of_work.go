package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents the engine's atomicity unit: ledger mutation, derived
// status update, and audit append commit or roll back together. Client code
// must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction. The repository uses the transaction started by Begin().
	OrderRepository() OrderRepository

	// AuditRepository returns an AuditRepository bound to the current
	// transaction. The repository uses the transaction started by Begin().
	AuditRepository() AuditRepository
}
