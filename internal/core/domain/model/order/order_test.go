package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T) []order.Item {
	t.Helper()
	burger, err := order.NewItem(kernel.NewUUID(), "Chicken Burger", kernel.MustMoney(450), 2, []string{"extra cheese"})
	require.NoError(t, err)
	fries, err := order.NewItem(kernel.NewUUID(), "Fries", kernel.MustMoney(150), 1, nil)
	require.NoError(t, err)
	return []order.Item{burger, fries}
}

func newTestOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), nil,
		"Amina", "+9771234567", "12 Lakeside Road", "ring the bell",
		testItems(t),
		kernel.MustMoney(150), kernel.Money{}, kernel.Money{},
		method, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order with derived amounts", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentCash)

		require.NoError(t, o.Validate())
		require.NoError(t, o.ShortCode().Validate())
		assert.Equal(t, int64(1050), o.Subtotal().Amount())
		assert.Equal(t, int64(150), o.DeliveryFee().Amount())
		assert.Equal(t, int64(1200), o.FinalAmount().Amount())
		assert.Equal(t, 1, o.Version())
		assert.Equal(t, 0, o.PersistedVersion())
		assert.Nil(t, o.Rider())
	})

	t.Run("cash starts in pending", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentCash)

		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("card starts in pending_payment", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentCard)

		assert.Equal(t, order.PendingPayment, o.Status())
	})

	t.Run("fully wallet-covered card order starts in pending", func(t *testing.T) {
		items := testItems(t)
		o, err := order.NewOrder(
			kernel.NewUUID(), nil,
			"Amina", "+9771234567", "12 Lakeside Road", "",
			items,
			kernel.MustMoney(150), kernel.Money{}, kernel.MustMoney(1200),
			order.PaymentCard, time.Now(),
		)

		require.NoError(t, err)
		assert.True(t, o.FinalAmount().IsZero())
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("amount invariant holds with discount and wallet", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), nil,
			"Amina", "+9771234567", "12 Lakeside Road", "",
			testItems(t),
			kernel.MustMoney(150), kernel.MustMoney(100), kernel.MustMoney(200),
			order.PaymentCard, time.Now(),
		)

		require.NoError(t, err)
		// 1050 + 150 - 100 - 200
		assert.Equal(t, int64(900), o.FinalAmount().Amount())
	})

	t.Run("rejects wallet exceeding total", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), nil,
			"Amina", "+9771234567", "12 Lakeside Road", "",
			testItems(t),
			kernel.Money{}, kernel.Money{}, kernel.MustMoney(5000),
			order.PaymentCard, time.Now(),
		)

		require.Error(t, err)
		assert.Equal(t, order.ErrWalletExceedsTotal, err)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), nil,
			"", "", "", "",
			nil,
			kernel.Money{}, kernel.Money{}, kernel.Money{},
			order.PaymentCash, time.Now(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "customer name")
		assert.Contains(t, err.Error(), "phone")
		assert.Contains(t, err.Error(), "address")
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("rejects invalid payment method", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), nil,
			"Amina", "+9771234567", "12 Lakeside Road", "",
			testItems(t),
			kernel.Money{}, kernel.Money{}, kernel.Money{},
			order.PaymentUnknown, time.Now(),
		)

		require.Error(t, err)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	now := time.Now()

	t.Run("full happy path walks the graph and bumps versions", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentCard)
		require.Equal(t, order.PendingPayment, o.Status())

		require.NoError(t, o.ConfirmPayment(now))
		assert.Equal(t, order.Pending, o.Status())

		require.NoError(t, o.Accept(now))
		assert.Equal(t, order.Confirmed, o.Status())

		require.NoError(t, o.StartPreparing(now))
		assert.Equal(t, order.Preparing, o.Status())

		require.NoError(t, o.Dispatch(now))
		assert.Equal(t, order.OutForDelivery, o.Status())

		require.NoError(t, o.Deliver(now))
		assert.Equal(t, order.Delivered, o.Status())

		// one bump per transition on top of the initial version
		assert.Equal(t, 6, o.Version())
		assert.Contains(t, o.StatusTimes(), order.Delivered)
	})

	t.Run("illegal edge leaves state untouched", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentCard)

		err := o.Deliver(now)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Equal(t, order.PendingPayment, o.Status())
		assert.Equal(t, 1, o.Version())
	})

	t.Run("terminal orders refuse all mutations", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentCard)
		require.NoError(t, o.Cancel(now))

		require.ErrorIs(t, o.ConfirmPayment(now), errs.ErrTerminalState)
		require.ErrorIs(t, o.Accept(now), errs.ErrTerminalState)
		require.ErrorIs(t, o.Cancel(now), errs.ErrTerminalState)
		require.ErrorIs(t, o.Reject("late", "", now), errs.ErrTerminalState)
		require.ErrorIs(t, o.AssignRider(kernel.NewUUID()), errs.ErrTerminalState)
	})

	t.Run("reject records reason and note", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentCash)

		require.NoError(t, o.Reject("out of stock", "no chicken left", now))

		assert.Equal(t, order.Rejected, o.Status())
		assert.Equal(t, "out of stock", o.RejectReason())
		assert.Equal(t, "no chicken left", o.RejectNote())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentCash)

		err := o.Reject("", "", now)

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("rider assignment is a field mutation, not a status edge", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentCash)
		riderID := kernel.NewUUID()

		require.NoError(t, o.AssignRider(riderID))

		assert.Equal(t, order.Pending, o.Status())
		require.NotNil(t, o.Rider())
		assert.True(t, o.Rider().IsEqual(riderID))
		assert.Equal(t, 2, o.Version())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round-trips an order through restore", func(t *testing.T) {
		original := newTestOrder(t, order.PaymentCard)
		require.NoError(t, original.ConfirmPayment(time.Now()))

		restored, err := order.RestoreOrder(
			original.ID(), original.ShortCode(), original.CustomerID(),
			original.CustomerName(), original.Phone(), original.Address(), original.Instructions(),
			original.Items(),
			original.DeliveryFee(), original.Discount(), original.WalletUsed(),
			original.PaymentMethod(), original.Status(),
			original.RejectReason(), original.RejectNote(), original.Rider(),
			original.PlacedAt(), original.StatusTimes(), original.Version(),
		)

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, original.Status(), restored.Status())
		assert.Equal(t, original.FinalAmount().Amount(), restored.FinalAmount().Amount())
		assert.Equal(t, original.Version(), restored.Version())
		assert.Equal(t, original.Version(), restored.PersistedVersion())
	})

	t.Run("rejects invalid version", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentCash)

		_, err := order.RestoreOrder(
			o.ID(), o.ShortCode(), nil,
			o.CustomerName(), o.Phone(), o.Address(), "",
			o.Items(),
			o.DeliveryFee(), o.Discount(), o.WalletUsed(),
			o.PaymentMethod(), o.Status(), "", "", nil,
			o.PlacedAt(), o.StatusTimes(), 0,
		)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order

		require.Error(t, o.Validate())
	})

	t.Run("nil order fails validation", func(t *testing.T) {
		var o *order.Order

		require.Error(t, o.Validate())
	})
}
