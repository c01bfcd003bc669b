// Package commands contains the state-changing operations of the fulfillment
// engine. Implements the Command pattern for write operations in the CQRS
// architecture. Every command handler follows the same shape: validate the
// command, open a unit of work, load the order with an exclusive per-order
// lock, mutate the aggregate, append the audit entry, and commit. Each
// operator action either fully succeeds or leaves no visible side effect.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across the order ledger and the
// audit log.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// OrderUoW manages transactions for order-only operations, such as
	// shortage flag maintenance that deliberately bypasses the audit log.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions spanning the order ledger and the audit log.
	// This is the atomicity unit of every operator-facing command: the item
	// mutation, the rederived order status, and the audit entry commit
	// together or not at all.
	UoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
	}

	// UoWFactory creates new unit of work instances for operator commands.
	UoWFactory interface {
		Create() UoW
	}
)
