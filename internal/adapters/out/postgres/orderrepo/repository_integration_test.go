package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsFullAggregate() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("WH-001", "CB-204")

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal("CUST-77", retrieved.CustomerRef())
	suite.Equal("221B Baker St", retrieved.ShippingAddress())
	suite.Equal("SUP-9", retrieved.SupplierRef())
	suite.Equal(order.Pending, retrieved.Status())
	suite.Len(retrieved.Items(), 2)

	item, ok := retrieved.PendingItemBySKU("WH-001")
	suite.Require().True(ok)
	suite.Equal(2, item.RequestedQuantity())
	suite.Equal(int64(2599), item.UnitPrice())
	suite.Equal(order.ItemPending, item.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsItemTransitions() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("WH-001")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	itemID := testOrder.Items()[0].ID()
	suite.Require().NoError(testOrder.PickItem(itemID, 2))
	suite.Require().NoError(testOrder.PackItem(itemID, 2, "BOX-M"))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Packing, retrieved.Status())

	item, err := retrieved.ItemByID(itemID)
	suite.Require().NoError(err)
	suite.Equal(order.ItemPacked, item.Status())
	suite.Equal(2, item.PickedQuantity())
	suite.Equal(2, item.PackedQuantity())
	suite.Equal("BOX-M", item.PackingMaterialID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsClearedShortageFlag() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("WH-001")
	itemID := testOrder.Items()[0].ID()
	suite.Require().NoError(testOrder.FlagShortage(itemID))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Flag must survive the round trip, and clearing it must persist too;
	// a partial column update would silently keep the flag set.
	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Len(retrieved.ShortageFlaggedItems(), 1)

	suite.Require().NoError(retrieved.ClearShortage(itemID))
	suite.Require().NoError(suite.repository.Update(ctx, retrieved))

	recheck, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Empty(recheck.ShortageFlaggedItems())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsCarrierMetadata() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("WH-001")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	itemID := testOrder.Items()[0].ID()
	suite.Require().NoError(testOrder.PickItem(itemID, 2))
	suite.Require().NoError(testOrder.PackItem(itemID, 2, "BOX-M"))
	suite.Require().NoError(testOrder.ShipItem(itemID, "DHL", "JD014600003828"))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, retrieved.Status())
	suite.Equal("DHL", retrieved.Carrier())
	suite.Equal("JD014600003828", retrieved.TrackingNumber())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("WH-001")

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllWithShortageFlags() {
	ctx := context.Background()

	flagged := suite.createTestOrder("WH-001")
	suite.Require().NoError(flagged.FlagShortage(flagged.Items()[0].ID()))
	clean := suite.createTestOrder("CB-204")

	suite.Require().NoError(suite.repository.Add(ctx, flagged))
	suite.Require().NoError(suite.repository.Add(ctx, clean))

	orders, err := suite.repository.GetAllWithShortageFlags(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(flagged.ID(), orders[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_SerializesConcurrentMutations() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("WH-001")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// First transaction takes the row lock.
	tx1 := suite.db.Begin()
	suite.Require().NoError(tx1.Error)
	repo1 := orderrepo.NewGormOrderRepository(tx1, suite.tracker)
	locked, err := repo1.GetForUpdate(ctx, testOrder.ID())
	suite.Require().NoError(err)

	// Second transaction must block on GetForUpdate until the first commits.
	acquired := make(chan error, 1)
	go func() {
		tx2 := suite.db.Begin()
		if tx2.Error != nil {
			acquired <- tx2.Error
			return
		}
		repo2 := orderrepo.NewGormOrderRepository(tx2, suite.tracker)
		_, lockErr := repo2.GetForUpdate(ctx, testOrder.ID())
		tx2.Rollback()
		acquired <- lockErr
	}()

	select {
	case <-acquired:
		suite.Fail("second GetForUpdate acquired the lock while the first transaction still held it")
	case <-time.After(300 * time.Millisecond):
		// still blocked, as expected
	}

	suite.Require().NoError(locked.PickItem(locked.Items()[0].ID(), 2))
	suite.Require().NoError(repo1.Update(ctx, locked))
	suite.Require().NoError(tx1.Commit().Error)

	select {
	case lockErr := <-acquired:
		suite.Require().NoError(lockErr)
	case <-time.After(5 * time.Second):
		suite.Fail("second GetForUpdate never acquired the lock after commit")
	}
}

// createTestOrder creates a Pending order with quantity-2 items for the SKUs.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(skus ...string) *order.Order {
	items := make([]*order.Item, 0, len(skus))
	for _, sku := range skus {
		item, err := order.NewItem(kernel.NewUUID(), sku, 2, 2599, false)
		suite.Require().NoError(err)
		items = append(items, item)
	}

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), "CUST-77", "221B Baker St", "SUP-9", "",
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), items)
	suite.Require().NoError(err)
	return testOrder
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
