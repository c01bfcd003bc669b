package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderHasNoItems is returned when an order is constructed with an
	// empty item list. An order without items has no derivable status.
	ErrOrderHasNoItems = errors.New("order must contain at least one item")

	// ErrDuplicateSKU is returned when two items of the same order share a
	// SKU. Scan verification requires SKUs to be unique within an order.
	ErrDuplicateSKU = errors.New("SKUs must be unique within an order")

	// ErrOrderIsCompleted is returned for any mutation attempted on an order
	// in the terminal Completed state.
	ErrOrderIsCompleted = errors.New("order is completed and cannot be modified")
)

// Order is the aggregate root of the fulfillment workflow. It owns the item
// ledger for one customer order and derives its own status from the item
// statuses after every mutation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty item list
//   - SKUs are unique within the order
//   - Status always equals DeriveStatus(items); it cannot report more
//     progress than the least-progressed item
//   - Carrier and tracking number are populated only at shipping
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerRef identifies the customer in the external order-intake system
	customerRef string

	// shippingAddress is the destination address as supplied by intake
	shippingAddress string

	// supplierRef identifies the supplier fulfilling the order
	supplierRef string

	// specialInstructions holds optional operator-facing handling notes
	specialInstructions string

	// carrier and trackingNumber are populated at the shipping step
	carrier        string
	trackingNumber string

	// createdAt is the immutable intake timestamp
	createdAt time.Time

	// status is derived from the items, never set by callers
	status Status

	// items is the order's item ledger
	items []*Item

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order with all items in Pending status. This is the
// entry point used when the external order-intake collaborator hands an order
// to the engine.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - customerRef: external customer reference (must not be empty)
//   - shippingAddress: destination address (must not be empty)
//   - supplierRef: supplier reference (must not be empty)
//   - specialInstructions: optional handling notes
//   - createdAt: intake timestamp (must not be zero)
//   - items: the item ledger (non-empty, SKUs unique)
//
// Returns the created order with a derived Pending status, or a validation
// error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	customerRef string,
	shippingAddress string,
	supplierRef string,
	specialInstructions string,
	createdAt time.Time,
	items []*Item,
) (*Order, error) {
	o := &Order{
		specialInstructions: specialInstructions,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerRef(customerRef),
		o.setShippingAddress(shippingAddress),
		o.setSupplierRef(supplierRef),
		o.setCreatedAt(createdAt),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.rederiveStatus()
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including carrier
// metadata and a possibly terminal status. The stored status must either be
// the terminal Completed state or match the status derived from the restored
// items; any other stored value indicates corrupted state and is rejected.
// Used by repository mapping code only.
func RestoreOrder(
	id kernel.UUID,
	customerRef string,
	shippingAddress string,
	supplierRef string,
	specialInstructions string,
	carrier string,
	trackingNumber string,
	createdAt time.Time,
	status Status,
	items []*Item,
) (*Order, error) {
	o, err := NewOrder(id, customerRef, shippingAddress, supplierRef, specialInstructions, createdAt, items)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if status != Completed && status != DeriveStatus(items) {
		return nil, errs.NewValueIsInvalidError("stored order status does not match item statuses")
	}

	o.carrier = carrier
	o.trackingNumber = trackingNumber
	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerRef returns the external customer reference.
func (o *Order) CustomerRef() string {
	return o.customerRef
}

// ShippingAddress returns the destination address.
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// SupplierRef returns the supplier reference.
func (o *Order) SupplierRef() string {
	return o.supplierRef
}

// SpecialInstructions returns the optional handling notes.
func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

// Carrier returns the carrier recorded at shipping, empty before that.
func (o *Order) Carrier() string {
	return o.carrier
}

// TrackingNumber returns the tracking number recorded at shipping, empty
// before that.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// CreatedAt returns the immutable intake timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the derived order-level status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order's item ledger. The returned slice is a copy; the
// items themselves are the aggregate's entities and must only be mutated
// through the aggregate methods.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// ItemByID returns the item with the given identifier.
// Fails with ObjectNotFoundError when the order has no such item.
func (o *Order) ItemByID(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", itemID.String())
}

// PendingItemBySKU returns the item with the given SKU if it is still
// Pending. Returns false when the SKU is not on the order or its item has
// already progressed; scan verification turns that into a WrongProduct
// failure.
func (o *Order) PendingItemBySKU(sku string) (*Item, bool) {
	for _, item := range o.items {
		if item.SKU() == sku && item.Status() == ItemPending {
			return item, true
		}
	}
	return nil, false
}

// ShortageFlaggedItems returns the items currently flagged for manual review.
func (o *Order) ShortageFlaggedItems() []*Item {
	var flagged []*Item
	for _, item := range o.items {
		if item.ShortageFlagged() {
			flagged = append(flagged, item)
		}
	}
	return flagged
}

// PickItem confirms the pick of an item with the given quantity and rederives
// the order status.
//
// Business rules enforced through Item.Pick:
//   - The item must exist and be Pending
//   - The quantity must equal the requested quantity exactly
//
// Fails without side effects on a completed order or when the item rejects
// the transition.
func (o *Order) PickItem(itemID kernel.UUID, quantity int) error {
	return o.mutateItem(itemID, func(item *Item) error {
		return item.Pick(quantity)
	})
}

// PackItem confirms the packing of an item with the given quantity and
// packing material and rederives the order status.
func (o *Order) PackItem(itemID kernel.UUID, quantity int, packingMaterialID string) error {
	return o.mutateItem(itemID, func(item *Item) error {
		return item.Pack(quantity, packingMaterialID)
	})
}

// ShipItem confirms the shipping of an item and attaches carrier and tracking
// metadata to the order. The metadata of the most recent successful ship
// confirmation wins.
//
// Business rules:
//   - Carrier and tracking number are required
//   - The item must be Packed
func (o *Order) ShipItem(itemID kernel.UUID, carrier, trackingNumber string) error {
	if carrier == "" {
		return errs.NewValueIsRequiredError("carrier")
	}
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	return o.mutateItem(itemID, func(item *Item) error {
		if err := item.Ship(); err != nil {
			return err
		}
		o.carrier = carrier
		o.trackingNumber = trackingNumber
		return nil
	})
}

// FlagShortage marks an item for manual review after a stock shortage.
// The item stays Pending and other items are unaffected.
func (o *Order) FlagShortage(itemID kernel.UUID) error {
	return o.mutateItem(itemID, func(item *Item) error {
		return item.FlagShortage()
	})
}

// ClearShortage removes the manual-review flag from an item after stock has
// recovered.
func (o *Order) ClearShortage(itemID kernel.UUID) error {
	return o.mutateItem(itemID, func(item *Item) error {
		item.ClearShortage()
		return nil
	})
}

// mutateItem runs fn against the identified item and rederives the order
// status afterwards. Validation happens before any mutation, so a failing fn
// leaves the aggregate unchanged.
func (o *Order) mutateItem(itemID kernel.UUID, fn func(item *Item) error) error {
	if o.status == Completed {
		return ErrOrderIsCompleted
	}

	item, err := o.ItemByID(itemID)
	if err != nil {
		return err
	}

	if err = fn(item); err != nil {
		return err
	}

	o.rederiveStatus()
	return nil
}

// rederiveStatus recomputes the derived order status from the current items.
// The terminal Completed state is preserved.
func (o *Order) rederiveStatus() {
	if o.status == Completed {
		return
	}
	o.status = DeriveStatus(o.items)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerRef(customerRef string) error {
	if customerRef == "" {
		return errs.NewValueIsRequiredError("customerRef")
	}
	o.customerRef = customerRef
	return nil
}

func (o *Order) setShippingAddress(shippingAddress string) error {
	if shippingAddress == "" {
		return errs.NewValueIsRequiredError("shippingAddress")
	}
	o.shippingAddress = shippingAddress
	return nil
}

func (o *Order) setSupplierRef(supplierRef string) error {
	if supplierRef == "" {
		return errs.NewValueIsRequiredError("supplierRef")
	}
	o.supplierRef = supplierRef
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.SKU()]; ok {
			return ErrDuplicateSKU
		}
		seen[item.SKU()] = struct{}{}
	}

	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}
