package audit

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not created
// through the NewEntry or RestoreEntry factory methods.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry is one immutable audit record: a verb-plus-item description of a
// committed state change against an order, attributed to an operator.
//
// The operator name is denormalized into the entry so history remains
// displayable even after the operator record changes or disappears in the
// external identity system.
//
// Seq is the per-order commit order. New entries carry seq 0 until the audit
// repository assigns the next sequence number inside the same transaction
// that commits the state change.
type Entry struct {
	id           kernel.UUID
	orderID      kernel.UUID
	seq          int64
	action       string
	operatorID   kernel.UUID
	operatorName string
	timestamp    time.Time

	isConstructed bool
}

// NewEntry creates an audit entry for a state change that is about to be
// committed. The sequence number is left unassigned (0); the audit repository
// assigns it at append time.
//
// Parameters:
//   - id: unique entry identifier
//   - orderID: the order the action was performed against
//   - action: human-readable description, e.g. "item WH-001 picked qty 2"
//   - operator: the acting operator (name is denormalized into the entry)
//   - timestamp: wall-clock time of the action
func NewEntry(id, orderID kernel.UUID, action string, operator Operator, timestamp time.Time) (*Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}
	if err := operator.Validate(); err != nil {
		return nil, err
	}
	if timestamp.IsZero() {
		return nil, errs.NewValueIsRequiredError("timestamp")
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		action:        action,
		operatorID:    operator.ID(),
		operatorName:  operator.Name(),
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs a persisted audit entry, including its assigned
// sequence number. Used by repository mapping code only.
func RestoreEntry(
	id, orderID kernel.UUID,
	seq int64,
	action string,
	operatorID kernel.UUID,
	operatorName string,
	timestamp time.Time,
) (*Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := operatorID.Validate(); err != nil {
		return nil, err
	}
	if seq <= 0 {
		return nil, errs.NewValueIsInvalidError("seq")
	}
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}
	if operatorName == "" {
		return nil, errs.NewValueIsRequiredError("operatorName")
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		seq:           seq,
		action:        action,
		operatorID:    operatorID,
		operatorName:  operatorName,
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

// Validate ensures the Entry was created via a factory method.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order the entry belongs to.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// Seq returns the per-order commit sequence number, 0 when not yet assigned.
func (e *Entry) Seq() int64 {
	return e.seq
}

// Action returns the human-readable action description.
func (e *Entry) Action() string {
	return e.action
}

// OperatorID returns the acting operator's identifier.
func (e *Entry) OperatorID() kernel.UUID {
	return e.operatorID
}

// OperatorName returns the denormalized operator display name.
func (e *Entry) OperatorName() string {
	return e.operatorName
}

// Timestamp returns the wall-clock time of the action.
func (e *Entry) Timestamp() time.Time {
	return e.timestamp
}
