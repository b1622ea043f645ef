package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSyncOrderWithDeliveryCommand(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewSyncOrderWithDeliveryCommand(id, delivery.Shipping)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, delivery.Shipping, cmd.DeliveryStatus())
	assert.NoError(t, cmd.Validate())

	_, err = commands.NewSyncOrderWithDeliveryCommand(kernel.UUID{}, delivery.Shipping)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = commands.NewSyncOrderWithDeliveryCommand(id, delivery.Unknown)
	require.Error(t, err)

	var zero commands.SyncOrderWithDeliveryCommand
	assert.ErrorIs(t, zero.Validate(), commands.ErrSyncOrderWithDeliveryCommandIsNotConstructed)
}

func TestNewSyncDeliveryWithOrderCommand(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewSyncDeliveryWithOrderCommand(id, order.Shipped)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.DeliveryID())
	assert.Equal(t, order.Shipped, cmd.OrderStatus())
	assert.NoError(t, cmd.Validate())

	_, err = commands.NewSyncDeliveryWithOrderCommand(kernel.UUID{}, order.Shipped)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = commands.NewSyncDeliveryWithOrderCommand(id, order.Unknown)
	require.Error(t, err)

	var zero commands.SyncDeliveryWithOrderCommand
	assert.ErrorIs(t, zero.Validate(), commands.ErrSyncDeliveryWithOrderCommandIsNotConstructed)
}
