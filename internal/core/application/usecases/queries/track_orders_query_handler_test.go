package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TrackOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.TrackOrdersQueryHandler
}

func (suite *TrackOrdersQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewTrackOrdersQueryHandler(db)
}

func (suite *TrackOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *TrackOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *TrackOrdersQueryHandlerTestSuite) TestHandle_NoOrders_ReturnsEmptySlice() {
	query, err := queries.NewTrackOrdersQueryByPhone("+2348000000000")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *TrackOrdersQueryHandlerTestSuite) TestHandle_ByPhone_ReturnsGuestOrdersNewestFirst() {
	now := time.Now().UTC().Truncate(time.Microsecond)

	older := suite.seedGuestOrder("+2348011111111", now.Add(-2*time.Hour))
	newer := suite.seedGuestOrder("+2348011111111", now)
	suite.seedGuestOrder("+2348022222222", now.Add(-time.Hour))

	query, err := queries.NewTrackOrdersQueryByPhone("+2348011111111")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal(newer.ID(), result[0].ID)
	suite.Equal(older.ID(), result[1].ID)
	suite.Equal(newer.ShortCode().String(), result[0].ShortCode)
	suite.Equal("pending_payment", result[0].Status)
	suite.Equal(newer.FinalAmount().Amount(), result[0].FinalAmount.Amount())
	suite.True(now.Equal(result[0].PlacedAt))
}

func (suite *TrackOrdersQueryHandlerTestSuite) TestHandle_ByCustomer_ReturnsOnlyThatCustomersOrders() {
	now := time.Now().UTC().Truncate(time.Microsecond)

	customerID := kernel.NewUUID()
	mine := suite.seedCustomerOrder(customerID, now)
	otherID := kernel.NewUUID()
	suite.seedCustomerOrder(otherID, now)
	suite.seedGuestOrder("+2348033333333", now)

	query, err := queries.NewTrackOrdersQueryByCustomer(customerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(mine.ID(), result[0].ID)
}

func (suite *TrackOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.TrackOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via a NewTrackOrdersQueryBy* constructor")
}

func (suite *TrackOrdersQueryHandlerTestSuite) seedGuestOrder(phone string, placedAt time.Time) *order.Order {
	return suite.seedOrder(nil, phone, placedAt)
}

func (suite *TrackOrdersQueryHandlerTestSuite) seedCustomerOrder(
	customerID kernel.UUID, placedAt time.Time,
) *order.Order {
	return suite.seedOrder(&customerID, "+2348099999999", placedAt)
}

func (suite *TrackOrdersQueryHandlerTestSuite) seedOrder(
	customerID *kernel.UUID, phone string, placedAt time.Time,
) *order.Order {
	burger, err := order.NewItem(kernel.NewUUID(), "Beef Burger", kernel.MustMoney(450), 1, nil)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), customerID,
		"Test Customer", phone, "1 Test Street", "",
		[]order.Item{burger},
		kernel.MustMoney(150), kernel.MustMoney(0), kernel.MustMoney(0),
		order.PaymentCard,
		placedAt,
	)
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), testOrder))
	return testOrder
}

func TestTrackOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackOrdersQueryHandlerTestSuite))
}
