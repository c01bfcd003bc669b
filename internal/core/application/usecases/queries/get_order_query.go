// Package queries contains the read-side operations of the fulfillment
// engine. Query handlers bypass the domain aggregates and read projection
// rows straight from the database, so inspection endpoints never contend
// with the per-order locks held by operator commands.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its full item ledger.
//
// Example:
//
//	query, err := queries.NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	snapshot, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order snapshot.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order being inspected.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the read model of one order.
type GetOrderQueryResponse struct {
	ID                  kernel.UUID
	CustomerRef         string
	ShippingAddress     string
	SupplierRef         string
	SpecialInstructions string
	Carrier             string
	TrackingNumber      string
	Status              string
	CreatedAt           time.Time
	Items               []GetOrderQueryItemResponse
}

// GetOrderQueryItemResponse is the read model of one order line item.
type GetOrderQueryItemResponse struct {
	ID                kernel.UUID
	SKU               string
	RequestedQuantity int
	UnitPriceCents    int64
	IsFragile         bool
	Status            string
	PickedQuantity    int
	PackedQuantity    int
	PackingMaterialID string
	ShortageFlagged   bool
}
