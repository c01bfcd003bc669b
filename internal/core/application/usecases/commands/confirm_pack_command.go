package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrConfirmPackCommandIsNotConstructed = errors.New(
		"ConfirmPackCommand must be created via NewConfirmPackCommand constructor",
	)
	ErrPackingMaterialIsRequired = errors.New("packing material is required")
)

// ConfirmPackCommand represents an operator confirming that a picked item has
// been placed into shipping material.
type ConfirmPackCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	itemID            kernel.UUID
	packingMaterialID string
	operator          audit.Operator

	guard guard.ConstructorGuard
}

// NewConfirmPackCommand creates a command for a pack confirmation.
func NewConfirmPackCommand(orderID, itemID kernel.UUID, packingMaterialID string, operator audit.Operator) (ConfirmPackCommand, error) {
	cmd := ConfirmPackCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setPackingMaterialID(packingMaterialID),
		cmd.setOperator(operator),
	); err != nil {
		return ConfirmPackCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPackCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPackCommandIsNotConstructed)
}

// OrderID returns the order being packed.
func (c ConfirmPackCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the item being packed.
func (c ConfirmPackCommand) ItemID() kernel.UUID {
	return c.itemID
}

// PackingMaterialID returns the chosen packing material.
func (c ConfirmPackCommand) PackingMaterialID() string {
	return c.packingMaterialID
}

// Operator returns the packing operator's identity.
func (c ConfirmPackCommand) Operator() audit.Operator {
	return c.operator
}

func (c *ConfirmPackCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ConfirmPackCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *ConfirmPackCommand) setPackingMaterialID(packingMaterialID string) error {
	if packingMaterialID == "" {
		return ErrPackingMaterialIsRequired
	}
	c.packingMaterialID = packingMaterialID
	return nil
}

func (c *ConfirmPackCommand) setOperator(operator audit.Operator) error {
	if err := operator.Validate(); err != nil {
		return err
	}
	c.operator = operator
	return nil
}
