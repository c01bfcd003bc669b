package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerRefIsRequired     = errors.New("customer reference is required")
	ErrShippingAddressIsRequired = errors.New("shipping address is required")
	ErrSupplierRefIsRequired     = errors.New("supplier reference is required")
	ErrItemsAreRequired          = errors.New("at least one item is required")
)

// CreateOrderItem describes one line item of an order being handed to the
// engine by the order-intake collaborator. SKU uniqueness is rejected at the
// command boundary; deeper validation (positive quantity) happens in the
// domain when the order is built.
type CreateOrderItem struct {
	SKU            string
	Quantity       int
	UnitPriceCents int64
	IsFragile      bool
}

// CreateOrderCommand represents the hand-off of a new order from the external
// order-intake collaborator. The engine takes ownership of the item ledger
// from this point on; the item list is immutable afterwards.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "CUST-42", "5 Dock Street", "SUP-7", "",
//	    operator, []CreateOrderItem{{SKU: "WH-001", Quantity: 2, UnitPriceCents: 2599}})
//	if err != nil {
//	    return fmt.Errorf("invalid intake payload: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	customerRef         string
	shippingAddress     string
	supplierRef         string
	specialInstructions string
	operator            audit.Operator
	items               []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates the order identity, references, operator, and that at least one
// item is supplied with no SKU repeated.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerRef string,
	shippingAddress string,
	supplierRef string,
	specialInstructions string,
	operator audit.Operator,
	items []CreateOrderItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerRef(customerRef),
		cmd.setShippingAddress(shippingAddress),
		cmd.setSupplierRef(supplierRef),
		cmd.setOperator(operator),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerRef returns the external customer reference.
func (c CreateOrderCommand) CustomerRef() string {
	return c.customerRef
}

// ShippingAddress returns the destination address.
func (c CreateOrderCommand) ShippingAddress() string {
	return c.shippingAddress
}

// SupplierRef returns the supplier reference.
func (c CreateOrderCommand) SupplierRef() string {
	return c.supplierRef
}

// SpecialInstructions returns the optional handling notes.
func (c CreateOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

// Operator returns the identity registering the order.
func (c CreateOrderCommand) Operator() audit.Operator {
	return c.operator
}

// Items returns the item specifications.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerRef(customerRef string) error {
	if customerRef == "" {
		return ErrCustomerRefIsRequired
	}
	c.customerRef = customerRef
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(shippingAddress string) error {
	if shippingAddress == "" {
		return ErrShippingAddressIsRequired
	}
	c.shippingAddress = shippingAddress
	return nil
}

func (c *CreateOrderCommand) setSupplierRef(supplierRef string) error {
	if supplierRef == "" {
		return ErrSupplierRefIsRequired
	}
	c.supplierRef = supplierRef
	return nil
}

func (c *CreateOrderCommand) setOperator(operator audit.Operator) error {
	if err := operator.Validate(); err != nil {
		return err
	}
	c.operator = operator
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.SKU]; ok {
			return errs.NewValueIsInvalidErrorWithCause("items", order.ErrDuplicateSKU)
		}
		seen[item.SKU] = struct{}{}
	}
	c.items = items
	return nil
}
