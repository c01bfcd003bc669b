package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ItemStatus represents the lifecycle state of a single order line item.
// It implements a strictly monotonic state machine: each status may only
// advance to its immediate successor, never skip ahead, never regress.
//
// State transitions:
//
//	Pending ──> Picked ──> Packed ──> Shipped
//
// ItemStatus is a value object that validates state transitions and provides
// string representations for persistence and display.
type ItemStatus int

const (
	// ItemStatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized ItemStatus values.
	ItemStatusUnknown ItemStatus = iota

	// ItemPending is the initial status of every item when the order enters
	// the engine. Items in this status are waiting to be picked.
	ItemPending

	// ItemPicked indicates the item has been physically retrieved and
	// confirmed against the order by a barcode scan.
	ItemPicked

	// ItemPacked indicates the item has been placed into shipping material.
	ItemPacked

	// ItemShipped indicates the item has left the facility with carrier and
	// tracking metadata attached. This is a final state.
	ItemShipped
)

// getItemStatusStrings returns a map of ItemStatus values to their string
// representations. All statuses are included for string conversion.
func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemStatusUnknown: "Unknown",
		ItemPending:       "Pending",
		ItemPicked:        "Picked",
		ItemPacked:        "Packed",
		ItemShipped:       "Shipped",
	}
}

// getValidItemStatusStrings returns a map of only valid ItemStatus values.
// Only valid statuses are included to support validation.
func getValidItemStatusStrings() map[ItemStatus]string {
	//nolint:exhaustive // ItemStatusUnknown is intentionally excluded as it's invalid
	return map[ItemStatus]string{
		ItemPending: "Pending",
		ItemPicked:  "Picked",
		ItemPacked:  "Packed",
		ItemShipped: "Shipped",
	}
}

// Validate checks if the ItemStatus value is valid.
//
// Valid statuses are: Pending, Picked, Packed, Shipped.
// ItemStatusUnknown (0) and any other values are invalid.
func (s ItemStatus) Validate() error {
	if _, ok := getValidItemStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("item status is invalid", fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any value, including
// invalid ones, for which it returns "Unknown".
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Successor returns the next status in the item lifecycle.
//
// Returns:
//   - (next status, nil) for Pending, Picked, and Packed
//   - (0, error) for Shipped, which is terminal, and for invalid statuses
func (s ItemStatus) Successor() (ItemStatus, error) {
	switch s {
	case ItemPending:
		return ItemPicked, nil
	case ItemPicked:
		return ItemPacked, nil
	case ItemPacked:
		return ItemShipped, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"item status has no successor",
			fmt.Errorf("%s is terminal or invalid", s.String()),
		)
	}
}

// CanAdvanceTo reports whether target is the immediate successor of the
// current status. Skips and regressions both return false; the item lifecycle
// is a strict chain.
func (s ItemStatus) CanAdvanceTo(target ItemStatus) bool {
	next, err := s.Successor()
	if err != nil {
		return false
	}
	return next == target
}
