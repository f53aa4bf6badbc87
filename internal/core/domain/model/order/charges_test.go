package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestNewCharges(t *testing.T) {
	t.Run("computes total", func(t *testing.T) {
		c, err := order.NewCharges(d("5000"), d("375"), d("1000"), d("5375"), d("1000"))

		require.NoError(t, err)
		assert.True(t, c.Total().Equal(d("6375")))
		require.NoError(t, c.ValidateFor(order.Delivery, order.PartialCourier))
	})

	t.Run("split must add up to total", func(t *testing.T) {
		_, err := order.NewCharges(d("5000"), d("375"), d("1000"), d("5375"), d("0"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "!= total 6375")
	})

	t.Run("negative amounts", func(t *testing.T) {
		_, err := order.NewCharges(d("-1"), d("0"), d("0"), d("-1"), d("0"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("cash due only for partial courier delivery", func(t *testing.T) {
		c, err := order.NewCharges(d("5000"), d("375"), d("1000"), d("5375"), d("1000"))
		require.NoError(t, err)

		require.Error(t, c.ValidateFor(order.Delivery, order.FullPrepaid))
		require.Error(t, c.ValidateFor(order.Pickup, order.PartialCourier))
	})

	t.Run("pickup carries no fee", func(t *testing.T) {
		c, err := order.NewCharges(d("5000"), d("375"), d("1000"), d("6375"), d("0"))
		require.NoError(t, err)

		require.Error(t, c.ValidateFor(order.Pickup, order.FullPrepaid))
	})

	t.Run("zero value", func(t *testing.T) {
		var c order.Charges
		require.ErrorIs(t, c.Validate(), order.ErrChargesAreNotConstructed)
	})
}

func TestParseModes(t *testing.T) {
	f, err := order.ParseFulfillmentMode("delivery")
	require.NoError(t, err)
	assert.Equal(t, order.Delivery, f)

	p, err := order.ParsePaymentMode("PARTIAL_COURIER")
	require.NoError(t, err)
	assert.Equal(t, order.PartialCourier, p)

	_, err = order.ParseFulfillmentMode("drone")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.ParsePaymentMode("WALLET")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
