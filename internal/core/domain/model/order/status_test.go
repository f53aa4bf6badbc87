package order_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.Placed,
	order.Preparing,
	order.Ready,
	order.Assigned,
	order.PickedUp,
	order.OnWay,
	order.Delivered,
	order.Cancelled,
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range allStatuses {
		t.Run(s.String(), func(t *testing.T) {
			require.NoError(t, s.Validate())
		})
	}

	for _, s := range []order.Status{order.Unknown, order.Status(99), order.Status(-1)} {
		t.Run(fmt.Sprintf("rejects %d", s), func(t *testing.T) {
			err := s.Validate()
			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		})
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]order.Status{
		"PLACED":           order.Placed,
		"preparing":        order.Preparing,
		"ACCEPTED":         order.Preparing,
		"READY_FOR_PICKUP": order.Ready,
		" on_way ":         order.OnWay,
		"DELIVERED":        order.Delivered,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			got, err := order.ParseStatus(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := order.ParseStatus("UNKNOWN")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, s := range allStatuses {
		terminal := s == order.Delivered || s == order.Cancelled
		assert.Equal(t, terminal, s.IsTerminal(), s.String())
		if terminal {
			assert.Empty(t, s.Next(), "terminal %s must have no successors", s)
		}
	}
}

func TestStatus_TransitionsFormDAGWithoutPathToPlaced(t *testing.T) {
	// depth-first search from every status; a repeated status on the current path is a cycle
	var visit func(s order.Status, path map[order.Status]bool)
	visit = func(s order.Status, path map[order.Status]bool) {
		require.False(t, path[s], "cycle through %s", s)
		path[s] = true
		for _, next := range s.Next() {
			require.NotEqual(t, order.Placed, next, "%s leads back to PLACED", s)
			visit(next, path)
		}
		delete(path, s)
	}

	for _, s := range allStatuses {
		visit(s, map[order.Status]bool{})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[[2]order.Status]bool{
		{order.Placed, order.Preparing}:    true,
		{order.Placed, order.Cancelled}:    true,
		{order.Preparing, order.Ready}:     true,
		{order.Preparing, order.Cancelled}: true,
		{order.Ready, order.Assigned}:      true,
		{order.Ready, order.PickedUp}:      true,
		{order.Ready, order.Delivered}:     true,
		{order.Assigned, order.PickedUp}:   true,
		{order.PickedUp, order.OnWay}:      true,
		{order.OnWay, order.Delivered}:     true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, allowed[[2]order.Status{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}
