// Package audit defines the immutable record types of the audit log: the
// Operator identity attached to every state-changing action and the Entry
// describing one committed action against an order.
//
// Entries are append-only. Corrections are modeled as new entries, never as
// edits, preserving a complete causal history for compliance and dispute
// resolution. Within one order, entries are totally ordered by a sequence
// number assigned at commit time; timestamps are informational only, since
// clocks may tie.
package audit
