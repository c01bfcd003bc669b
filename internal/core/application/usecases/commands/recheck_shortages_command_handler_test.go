package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFlaggedOrder(t *testing.T, sku string) *order.Order {
	t.Helper()
	aggregate := newWorkflowOrder(t, sku)
	require.NoError(t, aggregate.FlagShortage(aggregate.Items()[0].ID()))
	return aggregate
}

func TestRecheckShortagesCommandHandler_Handle_ClearsRecoveredFlags(t *testing.T) {
	ctx := t.Context()
	aggregate := newFlaggedOrder(t, "WH-001")
	cmd, err := commands.NewRecheckShortagesCommand()
	require.NoError(t, err)

	listRepo := new(MockOrderRepository)
	listUoW := new(MockUoW)
	mock.InOrder(
		listUoW.On("Begin", ctx).Return(nil).Once(),
		listUoW.On("OrderRepository").Return(listRepo).Once(),
		listRepo.On("GetAllWithShortageFlags", mock.Anything).Return([]*order.Order{aggregate}, nil).Once(),
		listUoW.On("Commit", ctx).Return(nil).Once(),
		listUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	clearRepo := new(MockOrderRepository)
	clearUoW := new(MockUoW)
	mock.InOrder(
		clearUoW.On("Begin", ctx).Return(nil).Once(),
		clearUoW.On("OrderRepository").Return(clearRepo).Once(),
		clearRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		clearRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		clearUoW.On("Commit", ctx).Return(nil).Once(),
		clearUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(listUoW).Once()
	factory.On("Create").Return(clearUoW).Once()

	oracle := &stubOracle{onHand: map[string]int{"WH-001": 10}}

	h := commands.NewRecheckShortagesCommandHandler(factory, oracle, discardLogger())
	cleared, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)
	assert.Empty(t, aggregate.ShortageFlaggedItems())
	listUoW.AssertExpectations(t)
	clearUoW.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRecheckShortagesCommandHandler_Handle_StillShort(t *testing.T) {
	ctx := t.Context()
	aggregate := newFlaggedOrder(t, "WH-001")
	cmd, err := commands.NewRecheckShortagesCommand()
	require.NoError(t, err)

	listRepo := new(MockOrderRepository)
	listUoW := new(MockUoW)
	mock.InOrder(
		listUoW.On("Begin", ctx).Return(nil).Once(),
		listUoW.On("OrderRepository").Return(listRepo).Once(),
		listRepo.On("GetAllWithShortageFlags", mock.Anything).Return([]*order.Order{aggregate}, nil).Once(),
		listUoW.On("Commit", ctx).Return(nil).Once(),
		listUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	checkRepo := new(MockOrderRepository)
	checkUoW := new(MockUoW)
	mock.InOrder(
		checkUoW.On("Begin", ctx).Return(nil).Once(),
		checkUoW.On("OrderRepository").Return(checkRepo).Once(),
		checkRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		checkUoW.On("Commit", ctx).Return(nil).Once(),
		checkUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(listUoW).Once()
	factory.On("Create").Return(checkUoW).Once()

	oracle := &stubOracle{onHand: map[string]int{"WH-001": 1}} // requested 2

	h := commands.NewRecheckShortagesCommandHandler(factory, oracle, discardLogger())
	cleared, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, cleared)
	assert.Len(t, aggregate.ShortageFlaggedItems(), 1)
	checkRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecheckShortagesCommandHandler_Handle_OracleUnavailableSkipsOrder(t *testing.T) {
	ctx := t.Context()
	aggregate := newFlaggedOrder(t, "WH-001")
	cmd, err := commands.NewRecheckShortagesCommand()
	require.NoError(t, err)

	listRepo := new(MockOrderRepository)
	listUoW := new(MockUoW)
	mock.InOrder(
		listUoW.On("Begin", ctx).Return(nil).Once(),
		listUoW.On("OrderRepository").Return(listRepo).Once(),
		listRepo.On("GetAllWithShortageFlags", mock.Anything).Return([]*order.Order{aggregate}, nil).Once(),
		listUoW.On("Commit", ctx).Return(nil).Once(),
		listUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	checkRepo := new(MockOrderRepository)
	checkUoW := new(MockUoW)
	mock.InOrder(
		checkUoW.On("Begin", ctx).Return(nil).Once(),
		checkUoW.On("OrderRepository").Return(checkRepo).Once(),
		checkRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		checkUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(listUoW).Once()
	factory.On("Create").Return(checkUoW).Once()

	oracle := &stubOracle{err: errs.NewOracleUnavailableError("WH-001", assert.AnError)}

	h := commands.NewRecheckShortagesCommandHandler(factory, oracle, discardLogger())
	cleared, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, cleared)
	assert.Len(t, aggregate.ShortageFlaggedItems(), 1)
	checkUoW.AssertNotCalled(t, "Commit", mock.Anything)
}
