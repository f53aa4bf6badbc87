package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type markReadyFixture struct {
	f        orderFixture
	order    *order.Order
	repo     *MockOrderRepository
	uow      *MockUoW
	factory  *MockUoWFactory
	matching *MockCourierMatching
	logs     *test.Hook
	handler  commands.MarkOrderReadyCommandHandler
}

func newMarkReadyFixture(t *testing.T, fulfillment order.FulfillmentMode) *markReadyFixture {
	t.Helper()

	ctx := t.Context()
	fx := &markReadyFixture{
		f:        newOrderFixture(),
		repo:     new(MockOrderRepository),
		uow:      new(MockUoW),
		factory:  new(MockUoWFactory),
		matching: new(MockCourierMatching),
	}
	fx.order = fx.f.restore(t, order.Preparing, fulfillment, nil)

	logger, hook := test.NewNullLogger()
	fx.logs = hook

	fx.factory.On("Create").Return(fx.uow).Once()
	fx.uow.On("Begin", ctx).Return(nil).Once()
	fx.uow.On("OrderRepository").Return(fx.repo).Once()
	fx.repo.On("Get", ctx, fx.f.id).Return(fx.order, nil).Once()
	fx.repo.On("Update", ctx, fx.order).Return(nil).Once()
	fx.uow.On("Commit", ctx).Return(nil).Once()
	fx.uow.On("Rollback", ctx).Return(nil).Once()

	fx.handler = commands.NewMarkOrderReadyCommandHandler(orderUoWFactory{fx.factory}, fx.matching, logger)
	return fx
}

func (fx *markReadyFixture) command(t *testing.T) commands.MarkOrderReadyCommand {
	t.Helper()

	cmd, err := commands.NewMarkOrderReadyCommand(fx.f.id, fx.f.vendor)
	require.NoError(t, err)
	return cmd
}

func TestMarkOrderReadyCommandHandler_Handle_MatchesAfterCommit(t *testing.T) {
	ctx := t.Context()
	fx := newMarkReadyFixture(t, order.Delivery)
	courierID := kernel.NewUUID()

	fx.matching.On("Handle", ctx, mock.AnythingOfType("commands.MatchCourierCommand")).
		Run(func(mock.Arguments) {
			fx.uow.AssertCalled(t, "Commit", ctx)
		}).
		Return(courierID, nil).
		Once()

	got, err := fx.handler.Handle(ctx, fx.command(t))

	require.NoError(t, err)
	assert.Equal(t, order.Ready, got.Order.Status())
	require.NotNil(t, got.CourierID)
	assert.Equal(t, courierID, *got.CourierID)

	match := fx.matching.Calls[0].Arguments.Get(1).(commands.MatchCourierCommand)
	assert.Equal(t, fx.f.id, match.OrderID())
	assert.Nil(t, match.RequestedBy())
	fx.matching.AssertExpectations(t)
	fx.uow.AssertExpectations(t)
}

func TestMarkOrderReadyCommandHandler_Handle_NoCourierIsNotAnError(t *testing.T) {
	ctx := t.Context()
	fx := newMarkReadyFixture(t, order.Delivery)

	fx.matching.On("Handle", ctx, mock.Anything).Return(kernel.UUID{}, services.ErrNoCourierAvailable).Once()

	got, err := fx.handler.Handle(ctx, fx.command(t))

	require.NoError(t, err)
	assert.Equal(t, order.Ready, got.Order.Status())
	assert.Nil(t, got.Order.Courier())
	assert.Nil(t, got.CourierID)

	entry := fx.logs.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, fx.f.id.String(), entry.Data["order_id"])
}

func TestMarkOrderReadyCommandHandler_Handle_MatchingFailureIsLogged(t *testing.T) {
	ctx := t.Context()
	fx := newMarkReadyFixture(t, order.Delivery)

	fx.matching.On("Handle", ctx, mock.Anything).Return(kernel.UUID{}, errors.New("connection reset")).Once()

	got, err := fx.handler.Handle(ctx, fx.command(t))

	require.NoError(t, err)
	assert.Equal(t, order.Ready, got.Order.Status())

	entry := fx.logs.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
}

func TestMarkOrderReadyCommandHandler_Handle_PickupSkipsMatching(t *testing.T) {
	ctx := t.Context()
	fx := newMarkReadyFixture(t, order.Pickup)

	got, err := fx.handler.Handle(ctx, fx.command(t))

	require.NoError(t, err)
	assert.Equal(t, order.Ready, got.Order.Status())
	fx.matching.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestMarkOrderReadyCommandHandler_Handle_WrongVendor(t *testing.T) {
	ctx := t.Context()
	f := newOrderFixture()
	testOrder := f.restore(t, order.Preparing, order.Delivery, nil)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	matching := new(MockCourierMatching)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, f.id).Return(testOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	logger, _ := test.NewNullLogger()
	handler := commands.NewMarkOrderReadyCommandHandler(orderUoWFactory{factory}, matching, logger)

	cmd, err := commands.NewMarkOrderReadyCommand(f.id, kernel.NewUUID())
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	matching.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestMarkOrderReadyCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.MarkOrderReadyCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrMarkOrderReadyCommandIsNotConstructed)
}
