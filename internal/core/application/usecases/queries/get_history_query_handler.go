package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetHistoryQueryHandler retrieves the audit trail of an order from the
// database. Entries come back in commit order because sequence numbers are
// assigned under the order's exclusive lock.
//
// Example:
//
//	handler := NewGetHistoryQueryHandler(db)
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get history: %v", err)
//	    return err
//	}
type GetHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetHistoryQueryHandler creates a handler for audit history queries.
// Requires a GORM database connection for query execution.
func NewGetHistoryQueryHandler(db *gorm.DB) GetHistoryQueryHandler {
	return GetHistoryQueryHandler{db: db}
}

// Handle executes the query and returns audit entries ordered by sequence
// number ascending. An order with no entries yields an empty slice; the
// caller decides whether that means an unknown order.
func (h GetHistoryQueryHandler) Handle(ctx context.Context, query GetHistoryQuery) ([]GetHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetHistoryQueryResponse, 0)

	sql := `
		SELECT
			id,
			seq,
			action,
			operator_id,
			operator_name,
			recorded_at
		FROM audit_entries
		WHERE order_id = ?
		ORDER BY seq
	`
	args := []any{query.OrderID().String()}
	if query.Limit() > 0 {
		sql += " LIMIT ?"
		args = append(args, query.Limit())
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetHistoryQueryResponse
		var id, operatorID uuid.UUID

		err = rows.Scan(
			&id,
			&entry.Seq,
			&entry.Action,
			&operatorID,
			&entry.OperatorName,
			&entry.RecordedAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID

		opID, idErr := kernel.UUIDFromBytes(operatorID[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.OperatorID = opID

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
