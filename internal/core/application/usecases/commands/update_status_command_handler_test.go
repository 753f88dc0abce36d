package commands_test

import (
	"io"
	"log/slog"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpdateStatusCommandHandler_Handle_GraphLegalMove(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.StatusNew, nil)
	cmd, err := commands.NewUpdateStatusCommand(o.ID(), order.StatusAccepted)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o, order.StatusNew, (*kernel.UUID)(nil)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateStatusCommandHandler(factory, newTestRouter(&recordingNotifier{}), discardLogger())
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusAccepted, got.Status())
}

func TestUpdateStatusCommandHandler_Handle_ForcesOffGraphMove(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.StatusDelivered, nil)
	cmd, _ := commands.NewUpdateStatusCommand(o.ID(), order.StatusNew)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o, order.StatusDelivered, (*kernel.UUID)(nil)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := commands.NewUpdateStatusCommandHandler(factory, newTestRouter(notifier), discardLogger())
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusNew, got.Status())
	assert.Len(t, notifier.recorded(), 2)
}

func TestUpdateStatusCommandHandler_Handle_UnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateStatusCommand(kernel.NewUUID(), order.Status("EXPLODED"))
	require.Error(t, err)
}
