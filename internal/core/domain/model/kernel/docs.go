// Package kernel provides core domain primitives for the fulfillment engine.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package currently contains a single primitive:
//   - UUID: a value object for unique identifiers with validation and
//     comparison capabilities, used for orders, items, operators, and audit
//     entries alike
//
// Kernel primitives enforce their own invariants, are immutable, and are safe
// for concurrent use.
package kernel
