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

// ConfirmShipCommandHandler moves a packed item into the Shipped state and
// records the carrier handoff on the order, committing the transition and its
// audit entry atomically.
type ConfirmShipCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.AuditPublisher
	logger     *slog.Logger
}

// NewConfirmShipCommandHandler creates a handler for ship confirmations.
func NewConfirmShipCommandHandler(
	uowFactory UoWFactory,
	publisher ports.AuditPublisher,
	logger *slog.Logger,
) ConfirmShipCommandHandler {
	return ConfirmShipCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle confirms that an item has been handed to a carrier.
//
// The item must currently be Packed. The order records the carrier and
// tracking number of the confirmation; when items ship in separate packages
// the most recent confirmation wins. Shipping the last item moves the whole
// order to Shipped.
func (h ConfirmShipCommandHandler) Handle(ctx context.Context, cmd ConfirmShipCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	item, err := aggregate.ItemByID(cmd.ItemID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ShipItem(cmd.ItemID(), cmd.Carrier(), cmd.TrackingNumber()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		aggregate.ID(),
		fmt.Sprintf("item %s shipped via %s (%s)", item.SKU(), cmd.Carrier(), cmd.TrackingNumber()),
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
