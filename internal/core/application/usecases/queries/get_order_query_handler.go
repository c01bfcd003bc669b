package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order snapshot from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	snapshot, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // order was never registered
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order snapshot queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order with its items sorted by
// SKU for consistent output.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id uuid.UUID
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_ref,
			shipping_address,
			supplier_ref,
			special_instructions,
			carrier,
			tracking_number,
			status,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(
		&id,
		&resp.CustomerRef,
		&resp.ShippingAddress,
		&resp.SupplierRef,
		&resp.SpecialInstructions,
		&resp.Carrier,
		&resp.TrackingNumber,
		&status,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID
	resp.Status = order.Status(status).String()

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]GetOrderQueryItemResponse, error) {
	items := make([]GetOrderQueryItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sku,
			requested_quantity,
			unit_price_cents,
			is_fragile,
			status,
			picked_quantity,
			packed_quantity,
			packing_material_id,
			shortage_flagged
		FROM order_items
		WHERE order_id = ?
		ORDER BY sku
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderQueryItemResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&item.SKU,
			&item.RequestedQuantity,
			&item.UnitPriceCents,
			&item.IsFragile,
			&status,
			&item.PickedQuantity,
			&item.PackedQuantity,
			&item.PackingMaterialID,
			&item.ShortageFlagged,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = itemID
		item.Status = order.ItemStatus(status).String()
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
