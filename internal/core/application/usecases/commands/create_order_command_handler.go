package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the intake of new orders into the engine.
// Builds the aggregate with every item in Pending status, persists it, and
// appends the first audit entry of the order's history.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, logger)
//	snapshot, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order intake failed: %w", err)
//	}
//	// snapshot.Status() == order.Pending, awaiting the first scan
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.AuditPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order intake operations.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, publisher ports.AuditPublisher, logger *slog.Logger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order intake command. Item identifiers are assigned
// here; the item list is immutable afterwards. The order insert and the
// "order created" audit entry commit as one transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, spec := range cmd.Items() {
		item, err := order.NewItem(kernel.NewUUID(), spec.SKU, spec.Quantity, spec.UnitPriceCents, spec.IsFragile)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerRef(),
		cmd.ShippingAddress(),
		cmd.SupplierRef(),
		cmd.SpecialInstructions(),
		time.Now().UTC(),
		items,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		aggregate.ID(),
		fmt.Sprintf("order created with %d items", len(items)),
		cmd.Operator(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	committed, err := uow.AuditRepository().Append(ctx, entry)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishEntry(ctx, h.publisher, h.logger, committed)
	return aggregate, nil
}
