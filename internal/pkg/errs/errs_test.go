package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "object not found: 123", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("courier", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: courier, ID is: 123 (cause: connection reset)",
			err.Error())
	})

	t.Run("non string id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("cart", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("must be positive"))

		assert.Equal(t, "value is invalid: quantity (cause: must be positive)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "value is invalid: quantity", errs.NewValueIsInvalidError("quantity").Error())
	})

	t.Run("out of range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("lat", 91.5, -90, 90)

		assert.Equal(t, "value is invalid: 91.5 is lat, min value is -90, max value is 90", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("out of range sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("label", "a\nb", 1, 3, errors.New("too long"))

		assert.Contains(t, err.Error(), "a b")
		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "(cause: too long)")
	})

	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("vendorID")

		assert.Equal(t, "value is required: vendorID", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidErrorWithCause("order", errors.New("expected 3"))

	assert.Equal(t, "version is invalid: order (cause: expected 3)", err.Error())
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	assert.Equal(t, "version is invalid: order", errs.NewVersionIsInvalidError("order").Error())
}

func TestInvalidStateError(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		err := errs.NewInvalidStateError("order", "PLACED", "mark ready")

		assert.Equal(t, "invalid state: cannot mark ready order in state PLACED", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("cause is reachable", func(t *testing.T) {
		cause := errs.NewVersionIsInvalidError("order")
		err := errs.NewInvalidStateErrorWithCause("order", "READY", "update", cause)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("ready: %w", errs.NewInvalidStateError("order", "DELIVERED", "cancel"))

		var target *errs.InvalidStateError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "DELIVERED", target.State)
	})
}

func TestForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("vendor", "accept order")

	assert.Equal(t, "forbidden: vendor may not accept order", err.Error())
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestSentinelMessages(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
	assert.Equal(t, "invalid state", errs.ErrInvalidState.Error())
	assert.Equal(t, "forbidden", errs.ErrForbidden.Error())
}
