package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every handled request with its status and latency
func RequestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// status is known only after error handler wrote response
				c.Error(err)
			}

			req := c.Request()
			entry := logger.WithFields(logrus.Fields{
				"method":  req.Method,
				"path":    req.URL.Path,
				"status":  c.Response().Status,
				"latency": time.Since(start).String(),
			})

			if c.Response().Status >= 500 {
				entry.Error("request handled")
			} else {
				entry.Info("request handled")
			}
			return nil
		}
	}
}
