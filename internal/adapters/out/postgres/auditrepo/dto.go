// Package auditrepo provides data transfer objects and mapping functions for
// the append-only audit log. Entries are never updated or deleted; the
// repository only appends rows and reads them back in sequence order.
package auditrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents one audit log row. The (order_id, seq) pair is unique
// so the per-order sequence can never fork even if application logic breaks.
type EntryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index:idx_audit_order_seq,unique"`
	Seq          int64     `gorm:"index:idx_audit_order_seq,unique"`
	Action       string
	OperatorID   uuid.UUID `gorm:"type:uuid"`
	OperatorName string
	RecordedAt   time.Time
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_entries"
}

// fromDomain converts an audit entry to its database representation with the
// assigned sequence number.
func fromDomain(entry *audit.Entry, seq int64) EntryDTO {
	return EntryDTO{
		ID:           entry.ID().Bytes(),
		OrderID:      entry.OrderID().Bytes(),
		Seq:          seq,
		Action:       entry.Action(),
		OperatorID:   entry.OperatorID().Bytes(),
		OperatorName: entry.OperatorName(),
		RecordedAt:   entry.Timestamp(),
	}
}

// toDomain converts a database row to an audit entry.
func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	operatorID, err := kernel.UUIDFromBytes(dto.OperatorID[:])
	if err != nil {
		return nil, err
	}

	return audit.RestoreEntry(id, orderID, dto.Seq, dto.Action, operatorID, dto.OperatorName, dto.RecordedAt)
}
