package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// requestLogger writes one entry per request. Errors are rendered first so
// the logged status is the one the client sees.
func requestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req, res := c.Request(), c.Response()
			entry := logger.WithFields(logrus.Fields{
				"method":     req.Method,
				"path":       c.Path(),
				"uri":        req.RequestURI,
				"status":     res.Status,
				"latency_ms": time.Since(start).Milliseconds(),
				"remote_ip":  c.RealIP(),
				"request_id": res.Header().Get(echo.HeaderXRequestID),
			})
			if identity, ok := identityOf(c); ok {
				entry = entry.WithFields(logrus.Fields{"caller": identity.ID.String(), "role": identity.Role})
			}

			switch {
			case res.Status >= http.StatusInternalServerError:
				entry.Error("request handled")
			case res.Status >= http.StatusBadRequest:
				entry.Warn("request handled")
			default:
				entry.Info("request handled")
			}
			return nil
		}
	}
}
