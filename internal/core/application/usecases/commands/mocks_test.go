package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllWithShortageFlags(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Entry) (*audit.Entry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.Entry), args.Error(1)
}

func (m *MockAuditRepository) History(ctx context.Context, orderID kernel.UUID, limit int) ([]*audit.Entry, error) {
	args := m.Called(ctx, orderID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

type MockAuditPublisher struct{ mock.Mock }

func (m *MockAuditPublisher) Publish(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// stubOracle is a deterministic StockOracle for handler tests.
type stubOracle struct {
	onHand map[string]int
	err    error
}

func (s *stubOracle) OnHand(_ context.Context, sku string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.onHand[sku], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newWorkflowOrder builds an order with Pending items of quantity 2 for each
// given SKU.
func newWorkflowOrder(t *testing.T, skus ...string) *order.Order {
	t.Helper()
	items := make([]*order.Item, 0, len(skus))
	for _, sku := range skus {
		item, err := order.NewItem(kernel.NewUUID(), sku, 2, 2599, false)
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.NewOrder(
		kernel.NewUUID(), "CUST-77", "221B Baker St", "SUP-9", "",
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), items)
	require.NoError(t, err)
	return o
}

// committedEntry builds a persisted-looking audit entry, the shape Append
// hands back once the sequence number is assigned.
func committedEntry(t *testing.T, orderID kernel.UUID, seq int64, action string) *audit.Entry {
	t.Helper()
	entry, err := audit.RestoreEntry(
		kernel.NewUUID(), orderID, seq, action, kernel.NewUUID(), "Dana",
		time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	return entry
}

// expectAuditedMutation wires the mock expectations shared by every
// successful operator command: begin, load for update, persist the order,
// append exactly one audit entry, commit, then the deferred rollback.
func expectAuditedMutation(ctx context.Context, t *testing.T, uow *MockUoW, orderRepo *MockOrderRepository, auditRepo *MockAuditRepository, aggregate *order.Order) *audit.Entry {
	t.Helper()
	committed := committedEntry(t, aggregate.ID(), 1, "committed")
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(committed, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	return committed
}
