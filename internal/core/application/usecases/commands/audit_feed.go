package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/ports"
)

// publishEntry pushes a committed audit entry to the outbound history feed.
// Publishing is best-effort: the state change is already committed, so a feed
// failure is logged and swallowed rather than surfaced to the operator.
func publishEntry(ctx context.Context, publisher ports.AuditPublisher, logger *slog.Logger, entry *audit.Entry) {
	if err := publisher.Publish(ctx, entry); err != nil {
		logger.WarnContext(ctx, "audit feed publish failed",
			"order_id", entry.OrderID().String(),
			"seq", entry.Seq(),
			"error", err,
		)
	}
}
