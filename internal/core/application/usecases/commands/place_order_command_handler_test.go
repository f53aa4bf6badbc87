package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type menu struct {
	vendor catalog.Vendor
	jollof catalog.MenuItem
	suya   catalog.MenuItem
}

func newMenu() menu {
	vendorID := kernel.NewUUID()
	return menu{
		vendor: catalog.Vendor{ID: vendorID, Name: "Mama Put", IsOpen: true, Location: vendorLocation},
		jollof: catalog.MenuItem{ID: kernel.NewUUID(), VendorID: vendorID, Name: "Jollof rice", Price: d("2500"), IsAvailable: true},
		suya:   catalog.MenuItem{ID: kernel.NewUUID(), VendorID: vendorID, Name: "Suya", Price: d("1500"), IsAvailable: true},
	}
}

func placeOrderHandler(factory *MockUoWFactory) commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(
		checkoutUoWFactory{factory},
		services.NewDefaultPaymentAllocator(),
		d("1000"),
		clock,
	)
}

func placeOrderCommand(
	t *testing.T,
	m menu,
	items []commands.OrderItem,
	fulfillment order.FulfillmentMode,
	payment order.PaymentMode,
) commands.PlaceOrderCommand {
	t.Helper()

	loc := dropOff
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), m.vendor.ID,
		items, fulfillment, payment,
		"12 Admiralty Way, Lekki", &loc,
	)
	require.NoError(t, err)
	return cmd
}

func TestPlaceOrderCommandHandler_Handle_PricesFromCatalog(t *testing.T) {
	ctx := t.Context()
	m := newMenu()
	cmd := placeOrderCommand(t, m, []commands.OrderItem{
		{MenuItemID: m.jollof.ID, Quantity: 2},
		{MenuItemID: m.suya.ID, Quantity: 1},
	}, order.Delivery, order.PartialCourier)

	catalogRepo := new(MockCatalogRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(catalogRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		catalogRepo.On("GetVendor", ctx, m.vendor.ID).Return(m.vendor, nil).Once(),
		catalogRepo.On("GetMenuItems", ctx, []kernel.UUID{m.jollof.ID, m.suya.ID}).
			Return([]catalog.MenuItem{m.suya, m.jollof}, nil).
			Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	got, err := placeOrderHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Placed, got.Status())
	assert.Equal(t, cmd.OrderID(), got.ID())
	assert.Equal(t, cmd.CustomerID(), got.CustomerID())
	assert.True(t, got.PickupLocation().IsEqual(vendorLocation))
	assert.Equal(t, fixedNow, got.CreatedAt())

	charges := got.Charges()
	assert.True(t, charges.Subtotal().Equal(d("6500")), charges.Subtotal().String())
	assert.True(t, charges.Tax().Equal(d("487.5")), charges.Tax().String())
	assert.True(t, charges.DeliveryFee().Equal(d("1000")))
	assert.True(t, charges.PaidUpfront().Equal(d("6987.5")))
	assert.True(t, charges.DueOnDelivery().Equal(d("1000")))

	items := got.Items()
	require.Len(t, items, 2)
	assert.Equal(t, m.jollof.ID, items[0].MenuItemID())
	assert.True(t, items[0].UnitPrice().Equal(d("2500")))
	assert.Equal(t, 2, items[0].Quantity())

	events := got.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, order.EventOrderPlaced, events[0].EventName())

	catalogRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_PickupHasNoFeeOrDestination(t *testing.T) {
	ctx := t.Context()
	m := newMenu()
	cmd := placeOrderCommand(t, m, []commands.OrderItem{{MenuItemID: m.jollof.ID, Quantity: 2}}, order.Pickup, order.FullPrepaid)

	catalogRepo := new(MockCatalogRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CatalogRepository").Return(catalogRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	catalogRepo.On("GetVendor", ctx, m.vendor.ID).Return(m.vendor, nil).Once()
	catalogRepo.On("GetMenuItems", ctx, mock.Anything).Return([]catalog.MenuItem{m.jollof}, nil).Once()
	orderRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	got, err := placeOrderHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.Charges().DeliveryFee().IsZero())
	assert.True(t, got.Charges().PaidUpfront().Equal(d("5375")))
	assert.Nil(t, got.DeliveryLocation())
	assert.Empty(t, got.DeliveryAddress())
}

func TestPlaceOrderCommandHandler_Handle_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		menu    func(m *menu) []catalog.MenuItem
		wantErr error
	}{
		{
			name: "vendor closed",
			menu: func(m *menu) []catalog.MenuItem {
				m.vendor.IsOpen = false
				return nil
			},
			wantErr: errs.ErrInvalidState,
		},
		{
			name:    "unknown item",
			menu:    func(m *menu) []catalog.MenuItem { return []catalog.MenuItem{} },
			wantErr: errs.ErrObjectNotFound,
		},
		{
			name: "unavailable item",
			menu: func(m *menu) []catalog.MenuItem {
				m.jollof.IsAvailable = false
				return []catalog.MenuItem{m.jollof}
			},
			wantErr: errs.ErrObjectNotFound,
		},
		{
			name: "item of another vendor",
			menu: func(m *menu) []catalog.MenuItem {
				m.jollof.VendorID = kernel.NewUUID()
				return []catalog.MenuItem{m.jollof}
			},
			wantErr: errs.ErrValueIsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			m := newMenu()
			items := tt.menu(&m)
			cmd := placeOrderCommand(t, m, []commands.OrderItem{{MenuItemID: m.jollof.ID, Quantity: 1}}, order.Delivery, order.FullPrepaid)

			catalogRepo := new(MockCatalogRepository)
			orderRepo := new(MockOrderRepository)
			uow := new(MockUoW)
			factory := new(MockUoWFactory)

			factory.On("Create").Return(uow).Once()
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("CatalogRepository").Return(catalogRepo).Once()
			uow.On("OrderRepository").Return(orderRepo).Once()
			catalogRepo.On("GetVendor", ctx, m.vendor.ID).Return(m.vendor, nil).Once()
			catalogRepo.On("GetMenuItems", ctx, mock.Anything).Return(items, nil).Maybe()
			uow.On("Rollback", ctx).Return(nil).Once()

			_, err := placeOrderHandler(factory).Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestPlaceOrderCommandHandler_Handle_DeliveryNeedsDestination(t *testing.T) {
	ctx := t.Context()
	m := newMenu()
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), m.vendor.ID,
		[]commands.OrderItem{{MenuItemID: m.jollof.ID, Quantity: 1}},
		order.Delivery, order.PartialCourier, "", nil,
	)
	require.NoError(t, err)

	catalogRepo := new(MockCatalogRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CatalogRepository").Return(catalogRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	catalogRepo.On("GetVendor", ctx, m.vendor.ID).Return(m.vendor, nil).Once()
	catalogRepo.On("GetMenuItems", ctx, mock.Anything).Return([]catalog.MenuItem{m.jollof}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = placeOrderHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestNewPlaceOrderCommand_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		items   []commands.OrderItem
		payment order.PaymentMode
		wantErr error
	}{
		{"no items", nil, order.FullPrepaid, errs.ErrValueIsRequired},
		{"zero quantity", []commands.OrderItem{{MenuItemID: kernel.NewUUID(), Quantity: 0}}, order.FullPrepaid, errs.ErrValueIsInvalid},
		{"unknown payment", []commands.OrderItem{{MenuItemID: kernel.NewUUID(), Quantity: 1}}, "BARTER", errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewPlaceOrderCommand(
				kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
				tt.items, order.Delivery, tt.payment, "addr", nil,
			)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
