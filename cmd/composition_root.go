package cmd

import (
	"log/slog"
	"os"
	"strings"

	"fulfillment/internal/adapters/out/notifier"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.StatusNotifier
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   createStatusNotifier(config, logger),
		logger:     logger,
	}
}

// createStatusNotifier picks Kafka when brokers are configured and the
// structured log otherwise, so the service runs without a broker locally.
func createStatusNotifier(config Config, logger *slog.Logger) ports.StatusNotifier {
	if config.KafkaHost == "" {
		return notifier.NewLogStatusNotifier(logger)
	}

	kafkaNotifier, err := notifier.NewKafkaStatusNotifier(strings.Split(config.KafkaHost, ","), logger)
	if err != nil {
		logger.Error("failed to connect to kafka, falling back to log notifier", "error", err)
		return notifier.NewLogStatusNotifier(logger)
	}
	return kafkaNotifier
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateChangeDeliveryStatusCommandHandler() commands.ChangeDeliveryStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeDeliveryStatusCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateSyncOrderWithDeliveryCommandHandler() commands.SyncOrderWithDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncOrderWithDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateSyncDeliveryWithOrderCommandHandler() commands.SyncDeliveryWithOrderCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncDeliveryWithOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetMismatchedPairsQueryHandler() queries.GetMismatchedPairsQueryHandler {
	return queries.NewGetMismatchedPairsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleAwaitingPaymentOrdersQueryHandler() queries.GetStaleAwaitingPaymentOrdersQueryHandler {
	return queries.NewGetStaleAwaitingPaymentOrdersQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
