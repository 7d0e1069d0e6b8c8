package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// AddAttribute adds a custom attribute to the current transaction
func AddAttribute(c echo.Context, key string, value interface{}) {
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.AddAttribute(key, value)
	}
}

// NoticeError reports an error to New Relic
func NoticeError(c echo.Context, err error) {
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.NoticeError(err)
	}
}

// SetViewer tags the current transaction with the map viewer
func SetViewer(c echo.Context, viewerID, role string) {
	c.Set("viewer_id", viewerID)
	AddAttribute(c, "viewer.id", viewerID)
	AddAttribute(c, "viewer.role", role)
}
