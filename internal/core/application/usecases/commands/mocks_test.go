package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetExpiredPendingPayment(ctx context.Context, deadline time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) Add(ctx context.Context, t *kitchen.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) Update(ctx context.Context, t *kitchen.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) UpdateItemStatus(
	ctx context.Context, orderID, menuItemID kernel.UUID,
	from, to kitchen.ItemStatus,
) (int, error) {
	args := m.Called(ctx, orderID, menuItemID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*kitchen.Ticket, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchen.Ticket), args.Error(1)
}

// MockUoW serves every unit-of-work interface the handlers use.
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

func (m *MockUoW) KitchenTicketRepository() ports.KitchenTicketRepository {
	args := m.Called()
	return args.Get(0).(ports.KitchenTicketRepository)
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

type MockTicketUoWFactory struct{ mock.Mock }

func (m *MockTicketUoWFactory) Create() commands.TicketUoW {
	args := m.Called()
	return args.Get(0).(commands.TicketUoW)
}

// RecordingPublisher captures published events for assertions.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []ports.StateChangedEvent
}

func (p *RecordingPublisher) Publish(_ context.Context, event ports.StateChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *RecordingPublisher) Events() []ports.StateChangedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.StateChangedEvent(nil), p.events...)
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	burger, err := order.NewItem(kernel.NewUUID(), "Chicken Burger", kernel.MustMoney(450), 2, nil)
	require.NoError(t, err)
	fries, err := order.NewItem(kernel.NewUUID(), "Fries", kernel.MustMoney(150), 1, nil)
	require.NoError(t, err)
	return []order.Item{burger, fries}
}

func testZone(t *testing.T) zone.DeliveryZone {
	t.Helper()
	z, err := zone.NewFlatFeeZone("Lakeside", kernel.MustMoney(150), kernel.Money{}, nil, "30-45 min")
	require.NoError(t, err)
	return z
}

func testOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), nil,
		"Amina", "+9771234567", "12 Lakeside Road", "",
		testItems(t),
		kernel.MustMoney(150), kernel.Money{}, kernel.Money{},
		method, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func testTicket(t *testing.T, o *order.Order) *kitchen.Ticket {
	t.Helper()
	items := make([]kitchen.TicketItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		ticketItem, err := kitchen.NewTicketItem(item.MenuItemID(), item.Name(), item.Quantity())
		require.NoError(t, err)
		items = append(items, ticketItem)
	}
	ticket, err := kitchen.NewTicket(o.ID(), o.ShortCode(), o.CustomerName(), o.Instructions(), items, time.Now())
	require.NoError(t, err)
	return ticket
}
