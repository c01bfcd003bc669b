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

// ConfirmPackCommandHandler moves a picked item into the Packed state and
// records the packing material that was used, committing the transition and
// its audit entry atomically.
type ConfirmPackCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.AuditPublisher
	logger     *slog.Logger
}

// NewConfirmPackCommandHandler creates a handler for pack confirmations.
func NewConfirmPackCommandHandler(
	uowFactory UoWFactory,
	publisher ports.AuditPublisher,
	logger *slog.Logger,
) ConfirmPackCommandHandler {
	return ConfirmPackCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle confirms that an item has been packed.
//
// The item must currently be Picked; the full picked quantity goes into the
// package. On success the order status is rederived and one audit entry is
// appended in the same transaction.
func (h ConfirmPackCommandHandler) Handle(ctx context.Context, cmd ConfirmPackCommand) (*order.Order, error) {
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

	if err = aggregate.PackItem(cmd.ItemID(), item.RequestedQuantity(), cmd.PackingMaterialID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		aggregate.ID(),
		fmt.Sprintf("item %s packed with %s", item.SKU(), cmd.PackingMaterialID()),
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
