package guard_test

import (
	"errors"
	"sync"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("Command must be created via NewCommand")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type acceptCommand struct {
		orderID string
		guard   guard.ConstructorGuard
	}
	errAcceptNotConstructed := errors.New("acceptCommand must be created via newAcceptCommand")

	newAcceptCommand := func(orderID string) (acceptCommand, error) {
		if orderID == "" {
			return acceptCommand{}, errors.New("order id is required")
		}
		return acceptCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}

	cmd, err := newAcceptCommand("42")
	require.NoError(t, err)
	require.NoError(t, cmd.guard.Validate(errAcceptNotConstructed))

	var zero acceptCommand
	require.ErrorIs(t, zero.guard.Validate(errAcceptNotConstructed), errAcceptNotConstructed)

	_, err = newAcceptCommand("")
	require.Error(t, err)
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	errNotConstructed := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(errNotConstructed))
		}()
	}
	wg.Wait()
}
