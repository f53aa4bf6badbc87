package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/groupcart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListUnmatchedReady(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllAvailable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) UpdatePresence(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Claim(ctx context.Context, courierID, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, courierID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCourierRepository) ApplySettlement(ctx context.Context, courierID kernel.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, courierID, delta)
	return args.Error(0)
}

type MockGroupCartRepository struct{ mock.Mock }

func (m *MockGroupCartRepository) Add(ctx context.Context, cart *groupcart.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockGroupCartRepository) CodeExists(ctx context.Context, code groupcart.Code) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupCartRepository) Get(ctx context.Context, id kernel.UUID) (*groupcart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*groupcart.Cart), args.Error(1)
}

func (m *MockGroupCartRepository) GetByCode(ctx context.Context, code groupcart.Code) (*groupcart.Cart, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*groupcart.Cart), args.Error(1)
}

func (m *MockGroupCartRepository) AddContribution(ctx context.Context, cartID kernel.UUID, item groupcart.Contribution) error {
	args := m.Called(ctx, cartID, item)
	return args.Error(0)
}

func (m *MockGroupCartRepository) Deactivate(ctx context.Context, cartID kernel.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type MockSettlementRepository struct{ mock.Mock }

func (m *MockSettlementRepository) Add(ctx context.Context, entry settlement.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetVendor(ctx context.Context, id kernel.UUID) (catalog.Vendor, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Vendor), args.Error(1)
}

func (m *MockCatalogRepository) GetMenuItem(ctx context.Context, id kernel.UUID) (catalog.MenuItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.MenuItem), args.Error(1)
}

func (m *MockCatalogRepository) GetMenuItems(ctx context.Context, ids []kernel.UUID) ([]catalog.MenuItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.MenuItem), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) GroupCartRepository() ports.GroupCartRepository {
	args := m.Called()
	return args.Get(0).(ports.GroupCartRepository)
}

func (m *MockUoW) SettlementRepository() ports.SettlementRepository {
	args := m.Called()
	return args.Get(0).(ports.SettlementRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

// MockUoWFactory hands out MockUoW for every factory interface.
type MockUoWFactory struct{ mock.Mock }

// create records the call as Create, the name every wrapper exposes.
func (m *MockUoWFactory) create() *MockUoW {
	args := m.MethodCalled("Create")
	return args.Get(0).(*MockUoW)
}

type (
	orderUoWFactory         struct{ *MockUoWFactory }
	courierUoWFactory       struct{ *MockUoWFactory }
	matchUoWFactory         struct{ *MockUoWFactory }
	deliveryUoWFactory      struct{ *MockUoWFactory }
	checkoutUoWFactory      struct{ *MockUoWFactory }
	groupCartUoWFactory     struct{ *MockUoWFactory }
	groupCheckoutUoWFactory struct{ *MockUoWFactory }
)

func (f orderUoWFactory) Create() commands.OrderUoW                 { return f.create() }
func (f courierUoWFactory) Create() commands.CourierUoW             { return f.create() }
func (f matchUoWFactory) Create() commands.MatchUoW                 { return f.create() }
func (f deliveryUoWFactory) Create() commands.DeliveryUoW           { return f.create() }
func (f checkoutUoWFactory) Create() commands.CheckoutUoW           { return f.create() }
func (f groupCartUoWFactory) Create() commands.GroupCartUoW         { return f.create() }
func (f groupCheckoutUoWFactory) Create() commands.GroupCheckoutUoW { return f.create() }

type MockCourierMatching struct{ mock.Mock }

func (m *MockCourierMatching) Handle(ctx context.Context, command commands.MatchCourierCommand) (kernel.UUID, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

var (
	vendorLocation = kernel.MustNewLocation(6.4281, 3.4219)
	dropOff        = kernel.MustNewLocation(6.4474, 3.4723)
	fixedNow       = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
)

func clock() time.Time { return fixedNow }

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// orderFixture is a restored order of 2 x 2500 from vendor at vendorLocation.
type orderFixture struct {
	id       kernel.UUID
	customer kernel.UUID
	vendor   kernel.UUID
}

func newOrderFixture() orderFixture {
	return orderFixture{id: kernel.NewUUID(), customer: kernel.NewUUID(), vendor: kernel.NewUUID()}
}

func (f orderFixture) restore(
	t *testing.T,
	status order.Status,
	fulfillment order.FulfillmentMode,
	courierID *kernel.UUID,
) *order.Order {
	t.Helper()

	item, err := order.NewLineItem(kernel.NewUUID(), 2, d("2500"), "")
	require.NoError(t, err)

	charges, err := order.NewCharges(d("5000"), d("375"), d("1000"), d("5375"), d("1000"))
	if fulfillment == order.Pickup {
		charges, err = order.NewCharges(d("5000"), d("375"), d("0"), d("5375"), d("0"))
	}
	require.NoError(t, err)

	draft := order.Draft{
		ID:             f.id,
		CustomerID:     f.customer,
		VendorID:       f.vendor,
		Items:          []order.LineItem{item},
		Charges:        charges,
		Fulfillment:    fulfillment,
		Payment:        order.PartialCourier,
		PickupLocation: vendorLocation,
		CreatedAt:      fixedNow,
	}
	if fulfillment == order.Delivery {
		loc := dropOff
		draft.DeliveryAddress = "12 Admiralty Way, Lekki"
		draft.DeliveryLocation = &loc
	}

	o, err := order.RestoreOrder(order.Snapshot{
		Draft:     draft,
		CourierID: courierID,
		Status:    status,
		Version:   3,
		UpdatedAt: fixedNow,
	})
	require.NoError(t, err)
	return o
}

func onlineCourierAt(t *testing.T, lat, lng float64) *courier.Courier {
	t.Helper()

	loc := kernel.MustNewLocation(lat, lng)
	c, err := courier.RestoreCourier(kernel.NewUUID(), "Tunde", true, &loc, decimal.Zero, nil)
	require.NoError(t, err)
	return c
}
