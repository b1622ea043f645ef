package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

func TestSyncDeliveryWithOrderCommandHandler_Handle_TwoHopsToDelivered(t *testing.T) {
	ctx := t.Context()
	d := deliveryForOrder(t, kernel.NewUUID(), delivery.Pending)
	cmd, err := commands.NewSyncDeliveryWithOrderCommand(d.ID(), order.Delivered)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, d.ID()).Return(d, nil).Once(),
		deliveryRepo.On("Update", ctx, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSyncDeliveryWithOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.Partial)
	assert.Equal(t, delivery.Delivered, d.Status())
	assert.NotNil(t, d.ShippingStartedAt())
	assert.NotNil(t, d.DeliveredAt())
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSyncDeliveryWithOrderCommandHandler_Handle_AlreadyInSync(t *testing.T) {
	ctx := t.Context()
	d := deliveryForOrder(t, kernel.NewUUID(), delivery.Shipping)
	cmd, err := commands.NewSyncDeliveryWithOrderCommand(d.ID(), order.Shipped)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, d.ID()).Return(d, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSyncDeliveryWithOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, delivery.Shipping, d.Status())
	deliveryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSyncDeliveryWithOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SyncDeliveryWithOrderCommand{} // not constructed properly
	factory := new(MockDeliveryUoWFactory)
	h := commands.NewSyncDeliveryWithOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
