package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(t *testing.T, n int) []order.Item {
	t.Helper()
	items := make([]order.Item, 0, n)
	for i := 0; i < n; i++ {
		item, err := order.NewItem(kernel.NewUUID(), i+1, int64(1000*(i+1)))
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func TestNewItem(t *testing.T) {
	t.Run("should create valid item", func(t *testing.T) {
		productID := kernel.NewUUID()
		item, err := order.NewItem(productID, 3, 2500)

		require.NoError(t, err)
		assert.True(t, productID.IsEqual(item.ProductID()))
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, int64(2500), item.PriceCents())
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 0, 2500)
		require.Error(t, err)
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 1, -1)
		require.Error(t, err)
	})

	t.Run("should reject zero-value product id", func(t *testing.T) {
		_, err := order.NewItem(kernel.UUID{}, 1, 2500)
		require.Error(t, err)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order in pending status", func(t *testing.T) {
		id := kernel.NewUUID()
		o, err := order.NewOrder(id, makeItems(t, 2))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, id.IsEqual(o.ID()))
		assert.Equal(t, order.Pending, o.Status())
		assert.Len(t, o.Items(), 2)
		assert.Nil(t, o.ProcessedAt())
		assert.Nil(t, o.ShippedAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("should create order awaiting payment", func(t *testing.T) {
		o, err := order.NewOrderAwaitingPayment(kernel.NewUUID(), makeItems(t, 1))

		require.NoError(t, err)
		assert.Equal(t, order.AwaitingPayment, o.Status())
	})

	t.Run("should reject order without items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), nil)

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderHasNoItems, err)
	})

	t.Run("should reject zero-value id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, makeItems(t, 1))
		require.Error(t, err)
	})

	t.Run("zero-value order fails validation", func(t *testing.T) {
		var o order.Order
		require.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore persisted order", func(t *testing.T) {
		id := kernel.NewUUID()
		o, err := order.RestoreOrder(id, makeItems(t, 1), order.Processing, 4, nil, nil, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, order.Processing, o.Status())
		assert.Equal(t, int64(4), o.Version())
	})

	t.Run("should hard-error on corrupt status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), makeItems(t, 1), order.Status(42), 1, nil, nil, nil, nil)
		require.Error(t, err)
	})
}

func TestOrder_Apply(t *testing.T) {
	t.Run("pending order can be processed and processedAt is set", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), makeItems(t, 1))
		require.NoError(t, err)

		res := o.Apply(order.ActionProcess)

		assert.True(t, res.Success)
		assert.Equal(t, order.Processing, o.Status())
		assert.NotNil(t, o.ProcessedAt())
		assert.Nil(t, o.ShippedAt())
	})

	t.Run("full happy path sets each timestamp exactly once", func(t *testing.T) {
		o, err := order.NewOrderAwaitingPayment(kernel.NewUUID(), makeItems(t, 1))
		require.NoError(t, err)

		require.True(t, o.Apply(order.ActionPending).Success)
		require.True(t, o.Apply(order.ActionProcess).Success)
		processedAt := o.ProcessedAt()
		require.NotNil(t, processedAt)

		require.True(t, o.Apply(order.ActionShip).Success)
		require.NotNil(t, o.ShippedAt())

		require.True(t, o.Apply(order.ActionDeliver).Success)
		require.NotNil(t, o.DeliveredAt())

		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, processedAt, o.ProcessedAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("shipped order rejects a subsequent process call", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), makeItems(t, 1), order.Processing, 1, nil, nil, nil, nil)
		require.NoError(t, err)

		require.True(t, o.Apply(order.ActionShip).Success)
		require.Equal(t, order.Shipped, o.Status())
		require.NotNil(t, o.ShippedAt())

		res := o.Apply(order.ActionProcess)

		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "not allowed")
		assert.Equal(t, order.Shipped, o.Status())
		assert.Nil(t, o.ProcessedAt())
	})

	t.Run("cancel sets cancelledAt once", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), makeItems(t, 3))
		require.NoError(t, err)

		res := o.Apply(order.ActionCancel)

		require.True(t, res.Success)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.NotNil(t, o.CancelledAt())
	})

	t.Run("terminal statuses absorb every action", func(t *testing.T) {
		actions := []order.Action{
			order.ActionPending, order.ActionProcess, order.ActionShip,
			order.ActionDeliver, order.ActionCancel, order.ActionAwait,
		}

		for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
			o, err := order.RestoreOrder(kernel.NewUUID(), makeItems(t, 1), terminal, 1, nil, nil, nil, nil)
			require.NoError(t, err)

			for _, action := range actions {
				res := o.Apply(action)

				assert.False(t, res.Success, "%s must reject %s", terminal, action)
				assert.Equal(t, terminal, o.Status())
			}
		}
	})

	t.Run("rejected action leaves all timestamps unchanged", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), makeItems(t, 1))
		require.NoError(t, err)

		res := o.Apply(order.ActionDeliver)

		assert.False(t, res.Success)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.ProcessedAt())
		assert.Nil(t, o.ShippedAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("await parks a pending order until payment confirms", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), makeItems(t, 1))
		require.NoError(t, err)

		require.True(t, o.Apply(order.ActionAwait).Success)
		assert.Equal(t, order.AwaitingPayment, o.Status())

		require.True(t, o.Apply(order.ActionPending).Success)
		assert.Equal(t, order.Pending, o.Status())
	})
}
