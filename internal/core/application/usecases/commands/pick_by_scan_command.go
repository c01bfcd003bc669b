package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrPickByScanCommandIsNotConstructed = errors.New(
		"PickByScanCommand must be created via NewPickByScanCommand constructor",
	)
	ErrSKUIsRequired = errors.New("sku is required")
)

// PickByScanCommand represents an operator scanning a barcode to confirm the
// pick of one order item.
type PickByScanCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	sku      string
	operator audit.Operator

	guard guard.ConstructorGuard
}

// NewPickByScanCommand creates a command for a barcode-scan pick.
// Validates the order identity, the scanned SKU, and the operator.
func NewPickByScanCommand(orderID kernel.UUID, sku string, operator audit.Operator) (PickByScanCommand, error) {
	cmd := PickByScanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSKU(sku),
		cmd.setOperator(operator),
	); err != nil {
		return PickByScanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PickByScanCommand) Validate() error {
	return c.guard.Validate(ErrPickByScanCommandIsNotConstructed)
}

// OrderID returns the order the scan was performed against.
func (c PickByScanCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SKU returns the scanned stock keeping unit.
func (c PickByScanCommand) SKU() string {
	return c.sku
}

// Operator returns the scanning operator's identity.
func (c PickByScanCommand) Operator() audit.Operator {
	return c.operator
}

func (c *PickByScanCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PickByScanCommand) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}
	c.sku = sku
	return nil
}

func (c *PickByScanCommand) setOperator(operator audit.Operator) error {
	if err := operator.Validate(); err != nil {
		return err
	}
	c.operator = operator
	return nil
}
