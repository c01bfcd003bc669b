package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/audit"
)

// AuditPublisher pushes committed audit entries to the outbound history feed
// consumed by support tooling. Publishing happens strictly after the commit
// and is best-effort: a publish failure is logged by the caller, never
// surfaced to the operator, and never undoes the committed state change.
type AuditPublisher interface {
	// Publish emits one committed audit entry to the feed.
	Publish(ctx context.Context, entry *audit.Entry) error
}

// NopAuditPublisher is the publisher used when no feed is configured.
type NopAuditPublisher struct{}

// Publish discards the entry.
func (NopAuditPublisher) Publish(_ context.Context, _ *audit.Entry) error {
	return nil
}
