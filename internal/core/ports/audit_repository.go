package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
)

// AuditRepository defines the persistence contract for the append-only audit
// log. Entries are never edited or deleted; corrections are appended as new
// entries.
type AuditRepository interface {
	// Append persists a new audit entry, assigning it the next per-order
	// sequence number, and returns the entry with the sequence filled in.
	// Append participates in the same transaction as the state change it
	// records: if the append fails, the whole operation fails, and if the
	// operation rolls back, so does the entry. It is called with the order
	// row already locked, which makes the sequence assignment race-free.
	Append(ctx context.Context, entry *audit.Entry) (*audit.Entry, error)

	// History retrieves the audit entries of an order ordered oldest first
	// (ascending sequence number). A limit of 0 or less returns the complete
	// history. Readers always observe a consistent prefix of the history:
	// sequence numbers are assigned in commit order and entries become
	// visible only at commit.
	History(ctx context.Context, orderID kernel.UUID, limit int) ([]*audit.Entry, error)
}
