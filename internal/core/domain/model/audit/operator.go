package audit

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrOperatorIsNotConstructed is returned when an Operator instance was not
// created through the NewOperator factory method.
var ErrOperatorIsNotConstructed = errors.New("Operator must be created via NewOperator")

// Operator is the identity of the person performing a fulfillment action.
// It carries identity only; authorization is delegated to an external
// collaborator. Operator identity is threaded explicitly through every
// mutating call, there is no ambient "current operator" anywhere in the
// engine.
type Operator struct {
	id   kernel.UUID
	name string
	role string

	isConstructed bool
}

// NewOperator creates an Operator identity.
//
// Parameters:
//   - id: operator identifier from the external identity collaborator
//   - name: display name, denormalized into audit entries
//   - role: free-form role label, may be empty
func NewOperator(id kernel.UUID, name, role string) (Operator, error) {
	if err := id.Validate(); err != nil {
		return Operator{}, err
	}
	if name == "" {
		return Operator{}, errs.NewValueIsRequiredError("operatorName")
	}

	return Operator{
		id:            id,
		name:          name,
		role:          role,
		isConstructed: true,
	}, nil
}

// Validate ensures the Operator was created via NewOperator.
func (o Operator) Validate() error {
	if !o.isConstructed {
		return ErrOperatorIsNotConstructed
	}
	return nil
}

// ID returns the operator's identifier.
func (o Operator) ID() kernel.UUID {
	return o.id
}

// Name returns the operator's display name.
func (o Operator) Name() string {
	return o.name
}

// Role returns the operator's role label.
func (o Operator) Role() string {
	return o.role
}
