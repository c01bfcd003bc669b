package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the order-level phase of the fulfillment workflow.
// It is a derived value: callers never set it directly, the aggregate
// recomputes it from the item statuses after every mutation.
//
// Derivation rule: the order status is the minimum-progress item status
// mapped through the order lattice.
//
//	min(item statuses)  order status
//	Pending             Pending
//	Picked              Picking
//	Packed              Packing
//	Shipped             Shipped
//
// Completed is terminal and assigned by an external delivery-confirmation
// collaborator; derivation never produces it and the engine never leaves it.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending indicates at least one item has not been picked yet.
	Pending

	// Picking indicates every item has been picked but packing has not
	// finished; the order is eligible for packing work.
	Picking

	// Packing indicates every item has been packed but shipping has not
	// finished.
	Packing

	// Shipped indicates every item has shipped with carrier metadata attached.
	Shipped

	// Completed is the terminal state set by the external
	// delivery-confirmation collaborator once the customer has the parcel.
	Completed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Pending:       "Pending",
		Picking:       "Picking",
		Packing:       "Packing",
		Shipped:       "Shipped",
		Completed:     "Completed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Picking:   "Picking",
		Packing:   "Packing",
		Shipped:   "Shipped",
		Completed: "Completed",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Picking, Packing, Shipped, Completed.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and returns "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// DeriveStatus computes the order-level status from a set of items. It is a
// pure function of the current item statuses and must be re-invoked after
// every item mutation; the result is never persisted independently of the
// items that justify it.
//
// An empty item set is rejected at order construction, so DeriveStatus
// assumes at least one item and returns StatusUnknown otherwise.
func DeriveStatus(items []*Item) Status {
	if len(items) == 0 {
		return StatusUnknown
	}

	minStatus := ItemShipped
	for _, item := range items {
		if item.Status() < minStatus {
			minStatus = item.Status()
		}
	}

	switch minStatus {
	case ItemPending:
		return Pending
	case ItemPicked:
		return Picking
	case ItemPacked:
		return Packing
	case ItemShipped:
		return Shipped
	default:
		return StatusUnknown
	}
}
