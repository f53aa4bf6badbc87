package http

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func parseID(field, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return id, nil
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	return parseID(name, c.Param(name))
}

// includeTerminal reads ?all=true, which adds delivered and cancelled orders.
func includeTerminal(c echo.Context) (bool, error) {
	var all bool
	if err := echo.QueryParamsBinder(c).Bool("all", &all).BindError(); err != nil {
		return false, errs.NewValueIsInvalidErrorWithCause("all", err)
	}
	return all, nil
}
