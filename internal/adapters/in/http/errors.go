package http

import (
	"errors"
	"fmt"
	"net/http"

	"fulfillment/internal/core/domain/model/groupcart"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps domain error categories to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, groupcart.ErrCartClosed),
		errors.Is(err, services.ErrNoCourierAvailable):
		return http.StatusConflict
	case errors.Is(err, groupcart.ErrCartEmpty),
		errors.Is(err, groupcart.ErrMixedVendors):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := statusOf(err)
		message := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			message = fmt.Sprint(he.Message)
		}
		if status >= http.StatusInternalServerError {
			logger.WithError(err).WithField("path", c.Path()).Error("request failed")
			message = http.StatusText(status)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, errorResponse{Code: status, Message: message})
		}
		if err != nil {
			logger.WithError(err).Warn("failed to write error response")
		}
	}
}
