package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, "John Doe")
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Add", mock.Anything, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateCourierCommandHandler(factory)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.ID().IsEqual(courierID))
	assert.True(t, got.IsAvailable())
	courierRepo.AssertExpectations(t)
}

func TestCreateCourierCommandHandler_Handle_EmptyName(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "")
	require.NoError(t, err)

	factory := new(MockCourierUoWFactory)
	handler := commands.NewCreateCourierCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, courier.ErrNameIsRequired)
	factory.AssertNotCalled(t, "Create")
}
