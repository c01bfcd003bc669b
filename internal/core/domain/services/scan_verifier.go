package services

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// StockOracle is the external source of truth for on-hand inventory.
// Implementations must be safe for concurrent use and bound their latency;
// a lookup that times out or fails returns an OracleUnavailableError.
type StockOracle interface {
	// OnHand returns the current on-hand quantity for a SKU.
	OnHand(ctx context.Context, sku string) (int, error)
}

// PickAuthorization grants the transition of one item to Picked with the full
// requested quantity. It is issued by the ScanVerifier and consumed by the
// pick command handler.
type PickAuthorization struct {
	// ItemID identifies the item the pick was authorized for.
	ItemID kernel.UUID

	// SKU is the scanned stock keeping unit, kept for audit wording.
	SKU string

	// Quantity is the quantity to record, always the requested quantity.
	Quantity int
}

// ScanVerifier is a domain service that authorizes pick actions from scanned
// barcodes.
//
// Verification rules:
//   - The scanned SKU must match an item on the order that is still Pending;
//     anything else is a WrongProduct failure (not on the order, or already
//     picked)
//   - The stock oracle must report on-hand quantity covering the requested
//     quantity; otherwise the scan fails with StockShortage and the caller
//     flags the item for manual review
//
// The verifier never mutates the order. Authorization and mutation are
// separate steps so concurrent scans cannot leave an order half-updated.
type ScanVerifier struct{}

// NewScanVerifier creates a new ScanVerifier instance.
func NewScanVerifier() ScanVerifier {
	return ScanVerifier{}
}

// Verify checks a scanned SKU against an order and the stock oracle.
//
// Returns:
//   - PickAuthorization when the scan matches a pending item with sufficient
//     stock
//   - WrongProductError when no pending item carries the scanned SKU
//   - StockShortageError when on-hand quantity is below the requested one
//   - OracleUnavailableError (from the oracle) when the stock lookup fails
func (v ScanVerifier) Verify(
	ctx context.Context,
	o *order.Order,
	scannedSKU string,
	oracle StockOracle,
) (PickAuthorization, error) {
	if err := o.Validate(); err != nil {
		return PickAuthorization{}, err
	}

	item, ok := o.PendingItemBySKU(scannedSKU)
	if !ok {
		return PickAuthorization{}, errs.NewWrongProductError(o.ID().String(), scannedSKU)
	}

	onHand, err := oracle.OnHand(ctx, scannedSKU)
	if err != nil {
		return PickAuthorization{}, err
	}

	if onHand < item.RequestedQuantity() {
		return PickAuthorization{}, errs.NewStockShortageError(scannedSKU, item.RequestedQuantity(), onHand)
	}

	return PickAuthorization{
		ItemID:   item.ID(),
		SKU:      scannedSKU,
		Quantity: item.RequestedQuantity(),
	}, nil
}
