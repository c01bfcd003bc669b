package cmd

import (
	"log/slog"
	"os"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/stockclient"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

const defaultStockTimeout = 2 * time.Second

// CompositionRoot wires adapters into use case handlers. All dependency
// decisions live here; the handlers only see ports.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	oracle     services.StockOracle
	publisher  ports.AuditPublisher
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from configuration. The
// publisher may be a no-op when the audit feed is not configured.
func NewCompositionRoot(config Config, gormDB *gorm.DB, publisher ports.AuditPublisher) CompositionRoot {
	timeout := defaultStockTimeout
	if config.StockServiceTimeout != "" {
		if parsed, err := time.ParseDuration(config.StockServiceTimeout); err == nil {
			timeout = parsed
		}
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		oracle:     stockclient.NewClient(config.StockServiceURL, timeout),
		publisher:  publisher,
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

// Logger returns the application-wide structured logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreatePickByScanCommandHandler() commands.PickByScanCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPickByScanCommandHandler(f, c.oracle, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmPackCommandHandler() commands.ConfirmPackCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPackCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmShipCommandHandler() commands.ConfirmShipCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmShipCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRecheckShortagesCommandHandler() commands.RecheckShortagesCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecheckShortagesCommandHandler(f, c.oracle, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetHistoryQueryHandler() queries.GetHistoryQueryHandler {
	return queries.NewGetHistoryQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRecheckShortagesCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
