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

func restaurantCmd(t *testing.T, o *order.Order, action commands.TransitionAction) commands.RestaurantTransitionCommand {
	t.Helper()
	cmd, err := commands.NewRestaurantTransitionCommand(o.RestaurantID(), o.ID(), action)
	require.NoError(t, err)
	return cmd
}

func runTransition(
	t *testing.T,
	o *order.Order,
	cmd commands.RestaurantTransitionCommand,
	expectedPrev order.Status,
	notifier *recordingNotifier,
) (*order.Order, error) {
	t.Helper()

	ctx := t.Context()
	expectedCourier := o.CourierID()
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o, expectedPrev, expectedCourier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRestaurantTransitionCommandHandler(factory, newTestRouter(notifier))
	return handler.Handle(ctx, cmd)
}

func TestRestaurantTransitionCommandHandler_Handle_Accept(t *testing.T) {
	o := orderInStatus(t, order.StatusNew, nil)
	notifier := &recordingNotifier{}

	got, err := runTransition(t, o, restaurantCmd(t, o, commands.ActionAccept), order.StatusNew, notifier)

	require.NoError(t, err)
	assert.Equal(t, order.StatusAccepted, got.Status())
	assert.Len(t, notifier.recorded(), 2)
}

func TestRestaurantTransitionCommandHandler_Handle_Reject(t *testing.T) {
	o := orderInStatus(t, order.StatusNew, nil)

	got, err := runTransition(t, o, restaurantCmd(t, o, commands.ActionReject), order.StatusNew, &recordingNotifier{})

	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, got.Status())
}

func TestRestaurantTransitionCommandHandler_Handle_ReadyBroadcasts(t *testing.T) {
	o := orderInStatus(t, order.StatusAccepted, nil)
	notifier := &recordingNotifier{}

	got, err := runTransition(t, o, restaurantCmd(t, o, commands.ActionReady), order.StatusAccepted, notifier)

	require.NoError(t, err)
	assert.Equal(t, order.StatusReady, got.Status())

	pushes := notifier.recorded()
	require.Len(t, pushes, 3)
	assert.Equal(t, ports.EventNotification, pushes[2].event)
	assert.Equal(t, "broadcast", pushes[2].target)
}

func TestRestaurantTransitionCommandHandler_Handle_ForeignRestaurant(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.StatusNew, nil)
	cmd, _ := commands.NewRestaurantTransitionCommand(kernel.NewUUID(), o.ID(), commands.ActionAccept)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := commands.NewRestaurantTransitionCommandHandler(factory, newTestRouter(notifier))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.StatusNew, o.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, notifier.recorded())
}

func TestRestaurantTransitionCommandHandler_Handle_ReadyOnClaimedOrder(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	o := orderInStatus(t, order.StatusAccepted, &courierID)
	cmd := restaurantCmd(t, o, commands.ActionReady)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRestaurantTransitionCommandHandler(factory, newTestRouter(&recordingNotifier{}))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, order.StatusAccepted, o.Status())
}

func TestRestaurantTransitionCommandHandler_Handle_InvalidAction(t *testing.T) {
	_, err := commands.NewRestaurantTransitionCommand(kernel.NewUUID(), kernel.NewUUID(), "explode")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
