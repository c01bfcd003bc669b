// Package ports defines the contracts between the application core and the
// infrastructure adapters: repositories, the unit of work, and the outbound
// audit feed. These interfaces establish the dependency inversion boundary
// and keep command handlers testable with mocks.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for the order aggregate,
// the authoritative item ledger of the engine.
type OrderRepository interface {
	// Add persists a new order aggregate with all its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and its items.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its complete item ledger.
	// Fails with ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate while taking an exclusive
	// row-level lock on it within the current transaction. All mutating
	// operations against one order load it this way, which serializes
	// concurrent operators per order without any cross-order blocking:
	// two scans of the same order's last pending item queue up here, and
	// the loser re-reads state in which the item is no longer pending.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllWithShortageFlags retrieves orders that currently carry at least
	// one item flagged for shortage review. Used by the shortage recheck job.
	GetAllWithShortageFlags(ctx context.Context) ([]*order.Order, error)
}
