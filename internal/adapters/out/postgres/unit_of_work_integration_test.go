package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/auditrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that an order mutation and its
// audit entry commit or roll back together.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgresadapter.GormUnitOfWorkFactory
	operator  audit.Operator
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&auditrepo.EntryDTO{},
	))

	operator, err := audit.NewOperator(kernel.NewUUID(), "Dana", "picker")
	suite.Require().NoError(err)
	suite.operator = operator
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE audit_entries, order_items, orders").Error)
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_MakesOrderAndAuditEntryVisible() {
	ctx := context.Background()
	aggregate := suite.seedOrder()
	itemID := aggregate.Items()[0].ID()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.OrderRepository().GetForUpdate(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.PickItem(itemID, 2))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))

	_, err = uow.AuditRepository().Append(ctx, suite.newEntry(aggregate.ID(), "item WH-001 picked qty 2"))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	reloaded := suite.reloadOrder(aggregate.ID())
	suite.Equal(order.ItemPicked, reloaded.Items()[0].Status())

	entries, err := auditrepo.NewGormAuditRepository(suite.db).History(ctx, aggregate.ID(), 0)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("item WH-001 picked qty 2", entries[0].Action())
	suite.Equal(int64(1), entries[0].Seq())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderUpdateAndAuditEntry() {
	ctx := context.Background()
	aggregate := suite.seedOrder()
	itemID := aggregate.Items()[0].ID()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.OrderRepository().GetForUpdate(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.PickItem(itemID, 2))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))

	_, err = uow.AuditRepository().Append(ctx, suite.newEntry(aggregate.ID(), "item WH-001 picked qty 2"))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Rollback(ctx))

	reloaded := suite.reloadOrder(aggregate.ID())
	suite.Equal(order.ItemPending, reloaded.Items()[0].Status())

	entries, err := auditrepo.NewGormAuditRepository(suite.db).History(ctx, aggregate.ID(), 0)
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommit_IsHarmless() {
	ctx := context.Background()
	aggregate := suite.seedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.OrderRepository().GetForUpdate(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(uow.Commit(ctx))

	// The deferred rollback in command handlers runs after a successful
	// commit and must not affect committed state.
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	suite.reloadOrder(aggregate.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) seedOrder() *order.Order {
	ctx := context.Background()

	item, err := order.NewItem(kernel.NewUUID(), "WH-001", 2, 2599, false)
	suite.Require().NoError(err)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		"CUST-42",
		"221B Baker Street, London",
		"SUP-7",
		"",
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		[]*order.Item{item},
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) reloadOrder(id kernel.UUID) *order.Order {
	uow := suite.factory.Create()
	reloaded, err := uow.OrderRepository().Get(context.Background(), id)
	suite.Require().NoError(err)
	return reloaded
}

func (suite *UnitOfWorkIntegrationTestSuite) newEntry(orderID kernel.UUID, action string) *audit.Entry {
	entry, err := audit.NewEntry(kernel.NewUUID(), orderID, action, suite.operator, time.Now().UTC())
	suite.Require().NoError(err)
	return entry
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
