// Package order implements the Order aggregate for the fulfillment workflow
// engine. An order owns a non-empty set of line items, each of which moves
// through the item lifecycle Pending -> Picked -> Packed -> Shipped under
// strict monotonic transition rules.
//
// The order-level status is never set by callers. It is derived from the item
// statuses after every mutation: the minimum-progress item status mapped
// through the order lattice (Pending, Picking, Packing, Shipped). Completed is
// a terminal state assigned by an external delivery-confirmation collaborator;
// the engine only preserves it and rejects further mutations.
//
// All state-changing methods validate before mutating, so a failed call leaves
// the aggregate untouched.
package order
