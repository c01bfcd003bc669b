package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// RecheckShortagesCommandHandler sweeps shortage-flagged items and clears the
// flag for every item whose on-hand stock has recovered to the requested
// quantity. Flag maintenance carries no audit entries, matching how the flag
// is set without one when a scan first detects the shortage.
type RecheckShortagesCommandHandler struct {
	uowFactory OrderUoWFactory
	oracle     services.StockOracle
	logger     *slog.Logger
}

// NewRecheckShortagesCommandHandler creates a handler for shortage recheck
// sweeps.
func NewRecheckShortagesCommandHandler(
	uowFactory OrderUoWFactory,
	oracle services.StockOracle,
	logger *slog.Logger,
) RecheckShortagesCommandHandler {
	return RecheckShortagesCommandHandler{
		uowFactory: uowFactory,
		oracle:     oracle,
		logger:     logger,
	}
}

// Handle runs one recheck sweep and returns the number of flags cleared.
//
// Each flagged order is rechecked in its own transaction, so a slow or
// unavailable oracle for one SKU does not hold locks across the whole sweep.
// Oracle failures skip the affected order; the flag stays for the next sweep.
func (h RecheckShortagesCommandHandler) Handle(ctx context.Context, cmd RecheckShortagesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	flagged, err := h.flaggedOrderIDs(ctx)
	if err != nil {
		return 0, err
	}

	cleared := 0
	for _, orderID := range flagged {
		n, err := h.recheckOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, errs.ErrOracleUnavailable) {
				h.logger.WarnContext(ctx, "shortage recheck skipped, oracle unavailable",
					slog.String("order_id", orderID.String()),
					slog.String("error", err.Error()))
				continue
			}
			return cleared, err
		}
		cleared += n
	}

	return cleared, nil
}

func (h RecheckShortagesCommandHandler) flaggedOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllWithShortageFlags(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

// recheckOrder re-reads one order under its exclusive lock and clears flags
// for items whose stock recovered, so the sweep never races an operator scan
// on the same order.
func (h RecheckShortagesCommandHandler) recheckOrder(ctx context.Context, orderID kernel.UUID) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return 0, err
	}

	cleared := 0
	for _, item := range aggregate.ShortageFlaggedItems() {
		onHand, err := h.oracle.OnHand(ctx, item.SKU())
		if err != nil {
			return 0, err
		}
		if onHand < item.RequestedQuantity() {
			continue
		}
		if err := aggregate.ClearShortage(item.ID()); err != nil {
			return 0, err
		}
		cleared++
	}

	if cleared == 0 {
		return 0, uow.Commit(ctx)
	}

	if err := orderRepo.Update(ctx, aggregate); err != nil {
		return 0, err
	}
	return cleared, uow.Commit(ctx)
}
