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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for the
// order repository using PostgreSQL containers to verify persistence behavior,
// including the compare-and-set update path.
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(order.PaymentCard, time.Now().UTC())

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAllFields() {
	ctx := context.Background()
	placedAt := time.Now().UTC().Truncate(time.Microsecond)

	customerID := kernel.NewUUID()
	items := suite.createTestItems()
	originalOrder, err := order.NewOrder(
		kernel.NewUUID(), &customerID,
		"Amina Yusuf", "+2348012345678", "12 Marina Road", "ring twice",
		items,
		kernel.MustMoney(150), kernel.MustMoney(50), kernel.MustMoney(0),
		order.PaymentCard,
		placedAt,
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrieved, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(originalOrder.ID(), retrieved.ID())
	suite.Equal(originalOrder.ShortCode(), retrieved.ShortCode())
	suite.Require().NotNil(retrieved.CustomerID())
	suite.True(customerID.IsEqual(*retrieved.CustomerID()))
	suite.Equal("Amina Yusuf", retrieved.CustomerName())
	suite.Equal("+2348012345678", retrieved.Phone())
	suite.Equal("12 Marina Road", retrieved.Address())
	suite.Equal("ring twice", retrieved.Instructions())
	suite.Len(retrieved.Items(), len(items))
	suite.True(originalOrder.Subtotal().IsEqual(retrieved.Subtotal()))
	suite.True(originalOrder.FinalAmount().IsEqual(retrieved.FinalAmount()))
	suite.Equal(order.PaymentCard, retrieved.PaymentMethod())
	suite.Equal(order.PendingPayment, retrieved.Status())
	suite.Nil(retrieved.Rider())
	suite.True(placedAt.Equal(retrieved.PlacedAt()))
	suite.Equal(originalOrder.Version(), retrieved.Version())
	suite.Equal(retrieved.Version(), retrieved.PersistedVersion())

	statusTimes := retrieved.StatusTimes()
	suite.Require().Contains(statusTimes, order.PendingPayment)
	suite.True(placedAt.Equal(statusTimes[order.PendingPayment]))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_FreshVersion_PersistsChanges() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	testOrder := suite.createTestOrder(order.PaymentCard, now)
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	confirmedAt := now.Add(time.Minute)
	suite.Require().NoError(loaded.ConfirmPayment(confirmedAt))

	err = suite.repository.Update(ctx, loaded)
	suite.Require().NoError(err)

	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, reloaded.Status())
	suite.Equal(loaded.Version(), reloaded.Version())
	suite.True(confirmedAt.Equal(reloaded.StatusTimes()[order.Pending]))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsStaleStateError() {
	ctx := context.Background()
	now := time.Now().UTC()

	testOrder := suite.createTestOrder(order.PaymentCard, now)
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two workers load the same order.
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	// First worker confirms payment and wins the write.
	suite.Require().NoError(first.ConfirmPayment(now))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// Second worker cancels against the version it loaded and must lose.
	suite.Require().NoError(second.Cancel(now))
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrStaleState)

	// The winner's state stands.
	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, reloaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsStaleStateError() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(order.PaymentCard, time.Now().UTC())

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrStaleState)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetExpiredPendingPayment_FiltersByStatusAndDeadline() {
	ctx := context.Background()
	now := time.Now().UTC()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	// Placed half an hour ago and still unpaid: expired.
	expired := suite.createTestOrder(order.PaymentCard, now.Add(-30*time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, expired))

	// Placed just now and unpaid: inside the window.
	fresh := suite.createTestOrder(order.PaymentCard, now)
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	// Old but cash, so it never sat in pending payment.
	cash := suite.createTestOrder(order.PaymentCash, now.Add(-30*time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, cash))

	deadline := now.Add(-15 * time.Minute)
	results, err := suite.repository.GetExpiredPendingPayment(ctx, deadline)
	suite.Require().NoError(err)

	suite.Require().Len(results, 1)
	suite.Equal(expired.ID(), results[0].ID())
	suite.Equal(order.PendingPayment, results[0].Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetExpiredPendingPayment_NoExpiredOrders_ReturnsEmptySlice() {
	ctx := context.Background()
	now := time.Now().UTC()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	fresh := suite.createTestOrder(order.PaymentCard, now)
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	results, err := suite.repository.GetExpiredPendingPayment(ctx, now.Add(-15*time.Minute))
	suite.Require().NoError(err)
	suite.Empty(results)
}

// createTestItems builds a small two-line order.
func (suite *OrderRepositoryIntegrationTestSuite) createTestItems() []order.Item {
	burger, err := order.NewItem(kernel.NewUUID(), "Beef Burger", kernel.MustMoney(450), 2, []string{"no onions"})
	suite.Require().NoError(err)
	fries, err := order.NewItem(kernel.NewUUID(), "Fries", kernel.MustMoney(150), 1, nil)
	suite.Require().NoError(err)
	return []order.Item{burger, fries}
}

// createTestOrder creates a guest order with the given payment method.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(
	method order.PaymentMethod, placedAt time.Time,
) *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(), nil,
		"Test Customer", "+2348000000000", "1 Test Street", "",
		suite.createTestItems(),
		kernel.MustMoney(150), kernel.MustMoney(0), kernel.MustMoney(0),
		method,
		placedAt,
	)
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
