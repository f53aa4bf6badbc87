package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSweepUnmatchedOrdersCommandIsNotConstructed = errors.New(
	"SweepUnmatchedOrdersCommand must be created via NewSweepUnmatchedOrdersCommand constructor",
)

// SweepUnmatchedOrdersCommand retries matching for up to limit orders.
type SweepUnmatchedOrdersCommand struct {
	limit int

	guard guard.ConstructorGuard
}

func NewSweepUnmatchedOrdersCommand(limit int) (SweepUnmatchedOrdersCommand, error) {
	if limit <= 0 {
		return SweepUnmatchedOrdersCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "+Inf")
	}
	return SweepUnmatchedOrdersCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c SweepUnmatchedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepUnmatchedOrdersCommandIsNotConstructed)
}

func (c SweepUnmatchedOrdersCommand) Limit() int { return c.limit }
