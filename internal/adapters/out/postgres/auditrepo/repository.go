package auditrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM.
//
// Append assigns the next per-order sequence number with MAX(seq)+1 inside
// the transaction. That is only race-free because command handlers hold the
// order's exclusive row lock while appending, so two entries for the same
// order can never compute the same sequence number. The unique index on
// (order_id, seq) backs that assumption at the database level.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append persists an entry with the next sequence number for its order,
// returning the entry as persisted.
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) (*audit.Entry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	var lastSeq int64
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(seq), 0) FROM audit_entries WHERE order_id = ?`, entry.OrderID().Bytes()).
		Scan(&lastSeq).Error
	if err != nil {
		return nil, err
	}

	dto := fromDomain(entry, lastSeq+1)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// History retrieves an order's entries ordered by sequence number ascending.
// A non-positive limit returns the complete history.
func (r *GormAuditRepository) History(ctx context.Context, orderID kernel.UUID, limit int) ([]*audit.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()).Order("seq")
	if limit > 0 {
		db = db.Limit(limit)
	}

	var dtos []EntryDTO
	if err := db.Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
