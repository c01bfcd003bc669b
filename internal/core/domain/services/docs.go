// Package services contains stateless domain services that coordinate
// behavior across aggregates and external collaborators without owning state
// themselves.
//
// The package currently provides the ScanVerifier, which decides whether a
// scanned barcode authorizes a pick. Verification is deliberately split from
// the ledger mutation: a failed scan never partially mutates state, and the
// orchestrating command handler only touches the aggregate after an
// authorization has been granted.
package services
