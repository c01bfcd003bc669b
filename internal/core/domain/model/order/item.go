package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory methods.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item represents a single line item of an order: one SKU with a requested
// quantity that moves through the picking, packing, and shipping workflow.
//
// Item follows these invariants:
//   - Must have a valid unique identifier and a non-empty SKU
//   - Requested quantity is positive and immutable
//   - Status transitions follow the strict Pending -> Picked -> Packed ->
//     Shipped chain enforced by ItemStatus
//   - Picked and packed quantities are set only when the corresponding status
//     is reached and always equal the requested quantity
//
// Items are created with the order, mutated only through the aggregate, and
// never deleted.
type Item struct {
	// id is the unique identifier for the item
	id kernel.UUID

	// sku is the stock keeping unit scanned during picking
	sku string

	// requestedQuantity is the number of units the customer ordered (immutable)
	requestedQuantity int

	// unitPrice is the per-unit price in minor currency units (cents)
	unitPrice int64

	// isFragile selects protective packing material during the packing step
	isFragile bool

	// status is the current position in the item lifecycle
	status ItemStatus

	// pickedQuantity is set when the item reaches Picked
	pickedQuantity int

	// packedQuantity is set when the item reaches Packed
	packedQuantity int

	// packingMaterialID records the material used at the packing step
	packingMaterialID string

	// shortageFlagged marks the item for manual review after a stock shortage
	shortageFlagged bool

	// isConstructed ensures the item was created via a factory method
	isConstructed bool
}

// NewItem creates a new Item in Pending status with validation.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - sku: stock keeping unit (must not be empty)
//   - requestedQuantity: units ordered (must be positive)
//   - unitPrice: per-unit price in cents (must not be negative)
//   - isFragile: whether the item needs protective packing material
//
// Returns the created item, or a validation error if any parameter is invalid.
func NewItem(id kernel.UUID, sku string, requestedQuantity int, unitPrice int64, isFragile bool) (*Item, error) {
	item := &Item{
		status:        ItemPending,
		isFragile:     isFragile,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setSKU(sku),
		item.setRequestedQuantity(requestedQuantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an Item from persistence with its full state.
// Unlike NewItem it accepts any valid status together with the quantities and
// flags recorded for it. Used by repository mapping code only.
func RestoreItem(
	id kernel.UUID,
	sku string,
	requestedQuantity int,
	unitPrice int64,
	isFragile bool,
	status ItemStatus,
	pickedQuantity int,
	packedQuantity int,
	packingMaterialID string,
	shortageFlagged bool,
) (*Item, error) {
	item, err := NewItem(id, sku, requestedQuantity, unitPrice, isFragile)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	item.status = status
	item.pickedQuantity = pickedQuantity
	item.packedQuantity = packedQuantity
	item.packingMaterialID = packingMaterialID
	item.shortageFlagged = shortageFlagged
	return item, nil
}

// Validate ensures the Item instance was properly constructed through a
// factory method. Called when reconstructing items from persistence.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// SKU returns the item's stock keeping unit.
func (i *Item) SKU() string {
	return i.sku
}

// RequestedQuantity returns the immutable ordered quantity.
func (i *Item) RequestedQuantity() int {
	return i.requestedQuantity
}

// UnitPrice returns the per-unit price in cents.
func (i *Item) UnitPrice() int64 {
	return i.unitPrice
}

// IsFragile reports whether the item requires protective packing material.
func (i *Item) IsFragile() bool {
	return i.isFragile
}

// Status returns the current status of the item.
func (i *Item) Status() ItemStatus {
	return i.status
}

// PickedQuantity returns the quantity confirmed at picking, zero before that.
func (i *Item) PickedQuantity() int {
	return i.pickedQuantity
}

// PackedQuantity returns the quantity confirmed at packing, zero before that.
func (i *Item) PackedQuantity() int {
	return i.packedQuantity
}

// PackingMaterialID returns the material recorded at the packing step.
func (i *Item) PackingMaterialID() string {
	return i.packingMaterialID
}

// ShortageFlagged reports whether the item is flagged for manual review after
// a stock shortage.
func (i *Item) ShortageFlagged() bool {
	return i.shortageFlagged
}

// Pick transitions the item from Pending to Picked with the given quantity.
//
// Business rules:
//   - Only a Pending item can be picked (IllegalTransitionError otherwise)
//   - The picked quantity must equal the requested quantity exactly;
//     partial or excess picks fail with QuantityExceededError
//
// A successful pick records the quantity and clears any shortage flag, since
// the pick proves stock was available after all.
func (i *Item) Pick(quantity int) error {
	if !i.status.CanAdvanceTo(ItemPicked) {
		return errs.NewIllegalTransitionError(i.id.String(), i.status.String(), ItemPicked.String())
	}

	if quantity != i.requestedQuantity {
		return errs.NewQuantityExceededError(i.id.String(), i.requestedQuantity, quantity)
	}

	i.status = ItemPicked
	i.pickedQuantity = quantity
	i.shortageFlagged = false
	return nil
}

// Pack transitions the item from Picked to Packed with the given quantity and
// packing material.
//
// Business rules:
//   - Only a Picked item can be packed (IllegalTransitionError otherwise)
//   - The packed quantity must equal the requested quantity exactly
//   - A packing material must be named
func (i *Item) Pack(quantity int, packingMaterialID string) error {
	if !i.status.CanAdvanceTo(ItemPacked) {
		return errs.NewIllegalTransitionError(i.id.String(), i.status.String(), ItemPacked.String())
	}

	if quantity != i.requestedQuantity {
		return errs.NewQuantityExceededError(i.id.String(), i.requestedQuantity, quantity)
	}

	if packingMaterialID == "" {
		return errs.NewValueIsRequiredError("packingMaterialID")
	}

	i.status = ItemPacked
	i.packedQuantity = quantity
	i.packingMaterialID = packingMaterialID
	return nil
}

// Ship transitions the item from Packed to Shipped. Shipped is terminal.
func (i *Item) Ship() error {
	if !i.status.CanAdvanceTo(ItemShipped) {
		return errs.NewIllegalTransitionError(i.id.String(), i.status.String(), ItemShipped.String())
	}

	i.status = ItemShipped
	return nil
}

// FlagShortage marks a Pending item for manual review after the stock oracle
// reported insufficient on-hand quantity. The item itself does not move; a
// flagged item can still be picked once stock recovers.
func (i *Item) FlagShortage() error {
	if i.status != ItemPending {
		return errs.NewIllegalTransitionError(i.id.String(), i.status.String(), "shortage review")
	}

	i.shortageFlagged = true
	return nil
}

// ClearShortage removes the manual-review flag, typically after the stock
// oracle reports recovered stock.
func (i *Item) ClearShortage() {
	i.shortageFlagged = false
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	i.sku = sku
	return nil
}

func (i *Item) setRequestedQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("requestedQuantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.requestedQuantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice is invalid", fmt.Errorf("%d is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
