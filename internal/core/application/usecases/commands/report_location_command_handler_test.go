package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLocationCache struct{ mock.Mock }

func (m *MockLocationCache) Set(courierID kernel.UUID, location kernel.Location, at time.Time) {
	m.Called(courierID, location, at)
}

func (m *MockLocationCache) Get(courierID kernel.UUID) (kernel.Location, time.Time, bool) {
	args := m.Called(courierID)
	return args.Get(0).(kernel.Location), args.Get(1).(time.Time), args.Bool(2)
}

func (m *MockLocationCache) PruneOlderThan(cutoff time.Time) int {
	args := m.Called(cutoff)
	return args.Int(0)
}

func TestReportLocationCommandHandler_Handle_RelaysToCustomer(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	location, err := kernel.NewLocation(55.75, 37.61)
	require.NoError(t, err)
	cmd, err := commands.NewReportLocationCommand(courierID, location)
	require.NoError(t, err)

	active := orderInStatus(t, order.StatusOnRoute, &courierID)

	cache := new(MockLocationCache)
	cache.On("Set", courierID, location, mock.AnythingOfType("time.Time")).Once()

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByCourier", ctx, courierID).Return(active, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := commands.NewReportLocationCommandHandler(factory, cache, newTestRouter(notifier))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	cache.AssertExpectations(t)

	pushes := notifier.recorded()
	require.Len(t, pushes, 1)
	assert.Equal(t, ports.EventCourierLocation, pushes[0].event)
	assert.Equal(t, "user:"+active.CustomerID().String(), pushes[0].target)
}

func TestReportLocationCommandHandler_Handle_NoActiveOrder(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	location, _ := kernel.NewLocation(55.75, 37.61)
	cmd, _ := commands.NewReportLocationCommand(courierID, location)

	cache := new(MockLocationCache)
	cache.On("Set", courierID, location, mock.AnythingOfType("time.Time")).Once()

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByCourier", ctx, courierID).
			Return(nil, errs.NewObjectNotFoundError("courierID", courierID)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := commands.NewReportLocationCommandHandler(factory, cache, newTestRouter(notifier))
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	cache.AssertExpectations(t)
	assert.Empty(t, notifier.recorded())
}

func TestReportLocationCommandHandler_Handle_OutOfRange(t *testing.T) {
	_, err := kernel.NewLocation(120, 0)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
