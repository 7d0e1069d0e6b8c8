package logger

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware logs every HTTP request handled by Echo
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			start := time.Now()

			err := next(c)

			latency := time.Since(start)
			status := c.Response().Status
			viewerID := "anonymous"
			if v := c.Get("viewer_id"); v != nil {
				viewerID = fmt.Sprintf("%v", v)
			}

			if txn != nil {
				txn.AddAttribute("viewer_id", viewerID)
				if err != nil {
					txn.NoticeError(err)
				}
			}

			fields := []Field{
				Int("status", status),
				String("method", c.Request().Method),
				String("path", c.Request().URL.Path),
				String("client_ip", c.RealIP()),
				String("viewer_id", viewerID),
				Duration("latency", latency),
			}
			switch {
			case status >= 500:
				logger.Error("Server error", append(fields, Err(err))...)
			case status >= 400:
				logger.Warn("Client error", fields...)
			default:
				logger.Info("Request processed", fields...)
			}
			return err
		}
	}
}
