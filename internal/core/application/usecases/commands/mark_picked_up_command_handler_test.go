package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkPickedUpCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	accepted := orderInStatus(t, order.StatusAccepted, &courierID)
	cmd, err := commands.NewMarkPickedUpCommand(courierID, accepted.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, accepted.ID()).Return(accepted, nil).Once(),
		orderRepo.On("Update", ctx, accepted, order.StatusAccepted, &courierID).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := commands.NewMarkPickedUpCommandHandler(factory, newTestRouter(notifier))
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusOnRoute, got.Status())
	require.NotNil(t, got.PickedUpAt())
	assert.Len(t, notifier.recorded(), 2)
}

func TestMarkPickedUpCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()
	assignee := kernel.NewUUID()
	stranger := kernel.NewUUID()
	accepted := orderInStatus(t, order.StatusAccepted, &assignee)
	cmd, _ := commands.NewMarkPickedUpCommand(stranger, accepted.ID())

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, accepted.ID()).Return(accepted, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkPickedUpCommandHandler(factory, newTestRouter(&recordingNotifier{}))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.StatusAccepted, accepted.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkPickedUpCommandHandler_Handle_NotClaimed(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	ready := orderInStatus(t, order.StatusReady, nil)
	cmd, _ := commands.NewMarkPickedUpCommand(courierID, ready.ID())

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ready.ID()).Return(ready, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkPickedUpCommandHandler(factory, newTestRouter(&recordingNotifier{}))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
}
