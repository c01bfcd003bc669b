package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrConfirmShipCommandIsNotConstructed = errors.New(
		"ConfirmShipCommand must be created via NewConfirmShipCommand constructor",
	)
	ErrCarrierIsRequired        = errors.New("carrier is required")
	ErrTrackingNumberIsRequired = errors.New("tracking number is required")
)

// ConfirmShipCommand represents an operator handing a packed item to a
// carrier.
type ConfirmShipCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	itemID         kernel.UUID
	carrier        string
	trackingNumber string
	operator       audit.Operator

	guard guard.ConstructorGuard
}

// NewConfirmShipCommand creates a command for a ship confirmation.
func NewConfirmShipCommand(orderID, itemID kernel.UUID, carrier, trackingNumber string, operator audit.Operator) (ConfirmShipCommand, error) {
	cmd := ConfirmShipCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setCarrier(carrier),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setOperator(operator),
	); err != nil {
		return ConfirmShipCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmShipCommand) Validate() error {
	return c.guard.Validate(ErrConfirmShipCommandIsNotConstructed)
}

// OrderID returns the order being shipped.
func (c ConfirmShipCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the item being shipped.
func (c ConfirmShipCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Carrier returns the carrier taking the package.
func (c ConfirmShipCommand) Carrier() string {
	return c.carrier
}

// TrackingNumber returns the carrier's tracking number.
func (c ConfirmShipCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Operator returns the shipping operator's identity.
func (c ConfirmShipCommand) Operator() audit.Operator {
	return c.operator
}

func (c *ConfirmShipCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ConfirmShipCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *ConfirmShipCommand) setCarrier(carrier string) error {
	if carrier == "" {
		return ErrCarrierIsRequired
	}
	c.carrier = carrier
	return nil
}

func (c *ConfirmShipCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}
	c.trackingNumber = trackingNumber
	return nil
}

func (c *ConfirmShipCommand) setOperator(operator audit.Operator) error {
	if err := operator.Validate(); err != nil {
		return err
	}
	c.operator = operator
	return nil
}
