package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fulfillment taxonomy. Every failure an operator can
// trigger during pick, pack, or ship unwraps to exactly one of these, and the
// HTTP adapter maps each sentinel to a stable wire code.
var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrWrongProduct      = errors.New("wrong product")
	ErrStockShortage     = errors.New("stock shortage")
	ErrQuantityExceeded  = errors.New("quantity exceeded")
	ErrOracleUnavailable = errors.New("stock oracle unavailable")
)

// IllegalTransitionError indicates an attempted item status change that is not
// the immediate successor of the current status. Regressions and skips both
// produce this error.
type IllegalTransitionError struct {
	ItemID string
	From   string
	To     string
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given
// item and status pair.
func NewIllegalTransitionError(itemID, from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{ItemID: itemID, From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: item %s cannot move from %s to %s",
		ErrIllegalTransition, e.ItemID, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// WrongProductError indicates that a scanned SKU matched no pending item on
// the order. The SKU is either not on the order at all or already picked.
type WrongProductError struct {
	OrderID string
	SKU     string
}

// NewWrongProductError creates a WrongProductError for the given order and SKU.
func NewWrongProductError(orderID, sku string) *WrongProductError {
	return &WrongProductError{OrderID: orderID, SKU: sku}
}

func (e *WrongProductError) Error() string {
	return fmt.Sprintf("%s: sku %s has no pending item on order %s",
		ErrWrongProduct, sanitize(e.SKU), e.OrderID)
}

func (e *WrongProductError) Unwrap() error {
	return ErrWrongProduct
}

// StockShortageError indicates that the on-hand quantity reported by the stock
// oracle does not cover the requested quantity. The condition is recoverable:
// the item stays pending and is flagged for manual review.
type StockShortageError struct {
	SKU       string
	Requested int
	OnHand    int
}

// NewStockShortageError creates a StockShortageError for the given SKU and quantities.
func NewStockShortageError(sku string, requested, onHand int) *StockShortageError {
	return &StockShortageError{SKU: sku, Requested: requested, OnHand: onHand}
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("%s: sku %s requires %d, on hand %d",
		ErrStockShortage, sanitize(e.SKU), e.Requested, e.OnHand)
}

func (e *StockShortageError) Unwrap() error {
	return ErrStockShortage
}

// QuantityExceededError indicates that a confirmed quantity differs from the
// requested quantity. Partial confirmations are rejected, never silently
// recorded.
type QuantityExceededError struct {
	ItemID    string
	Requested int
	Confirmed int
}

// NewQuantityExceededError creates a QuantityExceededError for the given item
// and quantities.
func NewQuantityExceededError(itemID string, requested, confirmed int) *QuantityExceededError {
	return &QuantityExceededError{ItemID: itemID, Requested: requested, Confirmed: confirmed}
}

func (e *QuantityExceededError) Error() string {
	return fmt.Sprintf("%s: item %s requested %d, confirmed %d",
		ErrQuantityExceeded, e.ItemID, e.Requested, e.Confirmed)
}

func (e *QuantityExceededError) Unwrap() error {
	return ErrQuantityExceeded
}

// OracleUnavailableError indicates that the stock oracle lookup timed out or
// failed. The engine performs no implicit retries; the caller decides whether
// to retry the whole operation.
type OracleUnavailableError struct {
	SKU   string
	Cause error
}

// NewOracleUnavailableError creates an OracleUnavailableError wrapping the
// transport or timeout failure.
func NewOracleUnavailableError(sku string, cause error) *OracleUnavailableError {
	return &OracleUnavailableError{SKU: sku, Cause: cause}
}

func (e *OracleUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: sku %s (cause: %s)", ErrOracleUnavailable, sanitize(e.SKU), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: sku %s", ErrOracleUnavailable, sanitize(e.SKU))
}

func (e *OracleUnavailableError) Unwrap() error {
	return ErrOracleUnavailable
}
