package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// PickByScanCommandHandler orchestrates the scan-to-pick workflow: scan
// verification, item transition, order status rederivation, and audit append
// as one atomic unit.
//
// The handler loads the order under an exclusive per-order lock, so two
// operators scanning the same order's last pending item serialize here:
// exactly one pick succeeds, the other observes the item as no longer
// pending and fails with WrongProduct.
//
// Example:
//
//	handler := NewPickByScanCommandHandler(uowFactory, oracle, publisher, logger)
//	snapshot, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrStockShortage):
//	    // item flagged for manual review, surface to the operator UI
//	case errors.Is(err, errs.ErrWrongProduct):
//	    // operator scanned something not on this order
//	case err != nil:
//	    return err
//	}
type PickByScanCommandHandler struct {
	uowFactory UoWFactory
	oracle     services.StockOracle
	verifier   services.ScanVerifier
	publisher  ports.AuditPublisher
	logger     *slog.Logger
}

// NewPickByScanCommandHandler creates a handler for scan-to-pick operations.
func NewPickByScanCommandHandler(
	uowFactory UoWFactory,
	oracle services.StockOracle,
	publisher ports.AuditPublisher,
	logger *slog.Logger,
) PickByScanCommandHandler {
	return PickByScanCommandHandler{
		uowFactory: uowFactory,
		oracle:     oracle,
		verifier:   services.NewScanVerifier(),
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes one barcode scan.
//
// On successful verification the item moves to Picked with the full requested
// quantity, the order status is rederived, and one audit entry is appended;
// all of it commits together.
//
// On StockShortage the item is flagged for manual review and the flag alone
// is committed: the item stays Pending, no audit entry is appended, and the
// shortage error is returned to the operator. Other items of the same order
// remain pickable. All other failures roll back without visible side effects.
func (h PickByScanCommandHandler) Handle(ctx context.Context, cmd PickByScanCommand) (*order.Order, error) {
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

	auth, err := h.verifier.Verify(ctx, aggregate, cmd.SKU(), h.oracle)
	if errors.Is(err, errs.ErrStockShortage) {
		if flagErr := h.commitShortageFlag(ctx, uow, orderRepo, aggregate, cmd.SKU()); flagErr != nil {
			return nil, flagErr
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if err = aggregate.PickItem(auth.ItemID, auth.Quantity); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		aggregate.ID(),
		fmt.Sprintf("item %s picked qty %d", auth.SKU, auth.Quantity),
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

// commitShortageFlag records the manual-review flag for the scanned item and
// commits it in the already-open transaction. The flag is the one deliberate
// side effect of a failed scan; it carries no audit entry, mirroring how the
// flag is silently cleared once the item is eventually picked.
func (h PickByScanCommandHandler) commitShortageFlag(
	ctx context.Context,
	uow UoW,
	orderRepo ports.OrderRepository,
	aggregate *order.Order,
	sku string,
) error {
	item, ok := aggregate.PendingItemBySKU(sku)
	if !ok {
		return errs.NewWrongProductError(aggregate.ID().String(), sku)
	}

	if err := aggregate.FlagShortage(item.ID()); err != nil {
		return err
	}

	if err := orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
