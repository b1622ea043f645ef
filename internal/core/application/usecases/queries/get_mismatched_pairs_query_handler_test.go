package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repositories' tracker dependency.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}

type GetMismatchedPairsQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetMismatchedPairsQueryHandler
	orderRepo    *orderrepo.GormOrderRepository
	deliveryRepo *deliveryrepo.GormDeliveryRepository
}

func (suite *GetMismatchedPairsQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &deliveryrepo.DeliveryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetMismatchedPairsQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.deliveryRepo = deliveryrepo.NewGormDeliveryRepository(db, &mockAggregateTracker{})
}

func (suite *GetMismatchedPairsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetMismatchedPairsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries").Error)
}

func (suite *GetMismatchedPairsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetMismatchedPairsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetMismatchedPairsQueryHandlerTestSuite) TestHandle_ConsistentPairs_ReturnsEmptySlice() {
	suite.createPair(order.Pending, delivery.Pending)
	suite.createPair(order.Shipped, delivery.Shipping)
	suite.createPair(order.Delivered, delivery.Delivered)
	suite.createPair(order.Cancelled, delivery.Cancelled)

	query := queries.NewGetMismatchedPairsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetMismatchedPairsQueryHandlerTestSuite) TestHandle_DriftedPairs_ReturnsThem() {
	driftedOrder, driftedDelivery := suite.createPair(order.Pending, delivery.Shipping)
	suite.createPair(order.Shipped, delivery.Shipping)

	query := queries.NewGetMismatchedPairsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(driftedOrder.ID().IsEqual(result[0].OrderID))
	suite.True(driftedDelivery.ID().IsEqual(result[0].DeliveryID))
	suite.Equal(order.Pending, result[0].OrderStatus)
	suite.Equal(delivery.Shipping, result[0].DeliveryStatus)
}

func (suite *GetMismatchedPairsQueryHandlerTestSuite) TestHandle_OrderWithoutDelivery_NotReported() {
	item, err := order.NewItem(kernel.NewUUID(), 1, 100)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), []order.Item{item})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))

	query := queries.NewGetMismatchedPairsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetMismatchedPairsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetMismatchedPairsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetMismatchedPairsQuery constructor")
}

func (suite *GetMismatchedPairsQueryHandlerTestSuite) createPair(
	orderStatus order.Status,
	deliveryStatus delivery.Status,
) (*order.Order, *delivery.Delivery) {
	ctx := context.Background()

	item, err := order.NewItem(kernel.NewUUID(), 1, 100)
	suite.Require().NoError(err)
	o, err := order.RestoreOrder(kernel.NewUUID(), []order.Item{item}, orderStatus, 0, nil, nil, nil, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	d, err := delivery.RestoreDelivery(kernel.NewUUID(), o.ID(), deliveryStatus, 0, nil, nil, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.deliveryRepo.Add(ctx, d))

	return o, d
}

func TestGetMismatchedPairsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetMismatchedPairsQueryHandlerTestSuite))
}
