package orderrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Reset())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.pg.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(f order.FulfillmentMode, p order.PaymentMode) *order.Order {
	price := decimal.NewFromInt(int64(gofakeit.IntRange(500, 5000)))
	first, err := order.NewLineItem(kernel.NewUUID(), 2, price, "Ada")
	suite.Require().NoError(err)
	second, err := order.NewLineItem(kernel.NewUUID(), 1, decimal.RequireFromString("250.50"), "")
	suite.Require().NoError(err)

	subtotal := first.Total().Add(second.Total())
	tax := subtotal.Mul(decimal.RequireFromString("0.075")).Round(2)
	fee, upfront, due := decimal.NewFromInt(1000), subtotal.Add(tax), decimal.NewFromInt(1000)
	switch {
	case f == order.Pickup:
		fee, due = decimal.Zero, decimal.Zero
	case p == order.FullPrepaid:
		upfront, due = upfront.Add(fee), decimal.Zero
	}
	charges, err := order.NewCharges(subtotal, tax, fee, upfront, due)
	suite.Require().NoError(err)

	draft := order.Draft{
		ID:             kernel.NewUUID(),
		CustomerID:     kernel.NewUUID(),
		VendorID:       kernel.NewUUID(),
		Items:          []order.LineItem{first, second},
		Charges:        charges,
		Fulfillment:    f,
		Payment:        p,
		PickupLocation: kernel.MustNewLocation(6.4281, 3.4219),
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
	if f == order.Delivery {
		dest := kernel.MustNewLocation(gofakeit.Float64Range(6.40, 6.50), gofakeit.Float64Range(3.38, 3.48))
		draft.DeliveryLocation = &dest
		draft.DeliveryAddress = gofakeit.Street()
	}

	o, err := order.NewOrder(draft)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) readyOrder(ctx context.Context) *order.Order {
	o := suite.newOrder(order.Delivery, order.PartialCourier)
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(o.Accept(o.VendorID()))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Require().NoError(o.MarkReady(o.VendorID()))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()
	original := suite.newOrder(order.Delivery, order.PartialCourier)

	suite.Require().NoError(suite.repository.Add(ctx, original))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", original.ID(), original)

	loaded, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(original.ID()))
	suite.Equal(order.Placed, loaded.Status())
	suite.Equal(order.Delivery, loaded.Fulfillment())
	suite.Equal(order.PartialCourier, loaded.Payment())
	suite.Nil(loaded.Courier())
	suite.Equal(original.DeliveryAddress(), loaded.DeliveryAddress())
	suite.Require().NotNil(loaded.DeliveryLocation())
	suite.InDelta(original.DeliveryLocation().Lat(), loaded.DeliveryLocation().Lat(), 1e-9)
	suite.True(original.Charges().PaidUpfront().Equal(loaded.Charges().PaidUpfront()))
	suite.True(original.Charges().DueOnDelivery().Equal(loaded.Charges().DueOnDelivery()))
	suite.True(original.CreatedAt().Equal(loaded.CreatedAt()))
	suite.Empty(loaded.DomainEvents())

	suite.Require().Len(loaded.Items(), 2)
	for i, item := range loaded.Items() {
		suite.True(item.MenuItemID().IsEqual(original.Items()[i].MenuItemID()))
		suite.Equal(original.Items()[i].Quantity(), item.Quantity())
		suite.True(item.UnitPrice().Equal(original.Items()[i].UnitPrice()))
		suite.Equal(original.Items()[i].Contributor(), item.Contributor())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PickupOrderHasNoDestination() {
	ctx := context.Background()
	original := suite.newOrder(order.Pickup, order.FullPrepaid)

	suite.Require().NoError(suite.repository.Add(ctx, original))

	loaded, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Nil(loaded.DeliveryLocation())
	suite.True(loaded.Charges().DeliveryFee().IsZero())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownOrder_ReturnsNotFound() {
	loaded, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(loaded)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivery, order.FullPrepaid)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Accept(o.VendorID()))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(1, o.Version())

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, loaded.Status())
	suite.Equal(1, loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsInvalidState() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivery, order.FullPrepaid)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	stale, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(o.Accept(o.VendorID()))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	suite.Require().NoError(stale.Reject(stale.VendorID()))
	err = suite.repository.Update(ctx, stale)

	suite.Require().ErrorIs(err, errs.ErrInvalidState)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ConcurrentReady_OneWins() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivery, order.FullPrepaid)
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(o.Accept(o.VendorID()))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	const racers = 2
	results := make([]error, racers)
	copies := make([]*order.Order, racers)
	for i := range copies {
		c, err := suite.repository.Get(ctx, o.ID())
		suite.Require().NoError(err)
		copies[i] = c
	}

	var wg sync.WaitGroup
	for i := range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := copies[i].MarkReady(copies[i].VendorID()); err != nil {
				results[i] = err
				return
			}
			results[i] = suite.repository.Update(ctx, copies[i])
		}()
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrInvalidState):
			conflicted++
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, conflicted)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListUnmatchedReady() {
	ctx := context.Background()

	unmatched := suite.readyOrder(ctx)
	matched := suite.readyOrder(ctx)
	suite.Require().NoError(matched.AssignCourier(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, matched))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(order.Delivery, order.FullPrepaid)))

	pickup := suite.newOrder(order.Pickup, order.FullPrepaid)
	suite.Require().NoError(suite.repository.Add(ctx, pickup))
	suite.Require().NoError(pickup.Accept(pickup.VendorID()))
	suite.Require().NoError(suite.repository.Update(ctx, pickup))
	suite.Require().NoError(pickup.MarkReady(pickup.VendorID()))
	suite.Require().NoError(suite.repository.Update(ctx, pickup))

	orders, err := suite.repository.ListUnmatchedReady(ctx, 10)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 1)
	suite.True(orders[0].ID().IsEqual(unmatched.ID()))
	suite.Len(orders[0].Items(), 2)
}
