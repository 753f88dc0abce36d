package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkDeliveredCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	onRoute := orderInStatus(t, order.StatusOnRoute, &courierID)
	cmd, err := commands.NewMarkDeliveredCommand(courierID, onRoute.ID(), "4321")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, onRoute.ID()).Return(onRoute, nil).Once(),
		orderRepo.On("Update", ctx, onRoute, order.StatusOnRoute, &courierID).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := commands.NewMarkDeliveredCommandHandler(factory, newTestRouter(notifier))
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusDelivered, got.Status())
	require.NotNil(t, got.DeliveredAt())

	pushes := notifier.recorded()
	require.Len(t, pushes, 2)
	assert.Equal(t, ports.EventOrderStatusChange, pushes[0].event)
}

func TestMarkDeliveredCommandHandler_Handle_WrongCode(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	onRoute := orderInStatus(t, order.StatusOnRoute, &courierID)
	cmd, _ := commands.NewMarkDeliveredCommand(courierID, onRoute.ID(), "0000")

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, onRoute.ID()).Return(onRoute, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := commands.NewMarkDeliveredCommandHandler(factory, newTestRouter(notifier))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrCodeMismatch)
	assert.Equal(t, order.StatusOnRoute, onRoute.Status())
	assert.Nil(t, onRoute.DeliveredAt())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, notifier.recorded())
}

func TestMarkDeliveredCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()
	assignee := kernel.NewUUID()
	stranger := kernel.NewUUID()
	onRoute := orderInStatus(t, order.StatusOnRoute, &assignee)
	cmd, _ := commands.NewMarkDeliveredCommand(stranger, onRoute.ID(), "4321")

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, onRoute.ID()).Return(onRoute, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkDeliveredCommandHandler(factory, newTestRouter(&recordingNotifier{}))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.StatusOnRoute, onRoute.Status())
}
