package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's aggregate tracker when tests seed
// data outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewGetOrderQueryHandler(db)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ExistingOrder_ReturnsFullReadModel() {
	ctx := context.Background()
	placedAt := time.Now().UTC().Truncate(time.Microsecond)

	customerID := kernel.NewUUID()
	burger, err := order.NewItem(kernel.NewUUID(), "Beef Burger", kernel.MustMoney(450), 2, []string{"no onions"})
	suite.Require().NoError(err)
	fries, err := order.NewItem(kernel.NewUUID(), "Fries", kernel.MustMoney(150), 1, nil)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), &customerID,
		"Amina Yusuf", "+2348012345678", "12 Marina Road", "ring twice",
		[]order.Item{burger, fries},
		kernel.MustMoney(150), kernel.MustMoney(50), kernel.MustMoney(0),
		order.PaymentCard,
		placedAt,
	)
	suite.Require().NoError(err)
	suite.seedOrder(testOrder)

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), result.ID)
	suite.Equal(testOrder.ShortCode().String(), result.ShortCode)
	suite.Equal("Amina Yusuf", result.CustomerName)
	suite.Equal("+2348012345678", result.Phone)
	suite.Equal("12 Marina Road", result.Address)
	suite.Equal("ring twice", result.Instructions)

	suite.Require().Len(result.Items, 2)
	suite.Equal("Beef Burger", result.Items[0].Name)
	suite.Equal(int64(450), result.Items[0].UnitPrice.Amount())
	suite.Equal(2, result.Items[0].Quantity)
	suite.Equal([]string{"no onions"}, result.Items[0].Options)
	suite.Equal("Fries", result.Items[1].Name)

	suite.Equal(int64(1050), result.Subtotal.Amount())
	suite.Equal(int64(150), result.DeliveryFee.Amount())
	suite.Equal(int64(50), result.Discount.Amount())
	suite.Equal(int64(1150), result.FinalAmount.Amount())

	suite.Equal("card", result.PaymentMethod)
	suite.Equal("pending_payment", result.Status)
	suite.Equal(1, result.Version)
	suite.Nil(result.RiderID)
	suite.True(placedAt.Equal(result.PlacedAt))

	suite.Require().Contains(result.StatusTimes, "pending_payment")
	suite.True(placedAt.Equal(result.StatusTimes["pending_payment"]))
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderQuery constructor")
}

func (suite *GetOrderQueryHandlerTestSuite) seedOrder(o *order.Order) {
	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), o))
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
