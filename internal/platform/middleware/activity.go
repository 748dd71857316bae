package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Action labels recorded in the activity trail.
const (
	ActionCreate   = "CREATE"
	ActionReadAll  = "READ_ALL"
	ActionReadOne  = "READ_ONE"
	ActionReadLogs = "READ_LOGS"
	ActionRead     = "READ"
	ActionUpload   = "UPLOAD"
	ActionUpdate   = "UPDATE"
	ActionDelete   = "DELETE"
	ActionUnknown  = "UNKNOWN"
)

// ActivityEntry is what the middleware hands to the recorder after each
// request completes.
type ActivityEntry struct {
	OrderID  *int64
	Action   string
	Endpoint string
	Method   string
	Details  string
}

// ActivityRecorder persists activity entries. Decouples the middleware from
// the concrete log store so tests can substitute it.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, entry ActivityEntry) error
}

// ActivityRecorderFunc is a function adapter for ActivityRecorder.
type ActivityRecorderFunc func(ctx context.Context, entry ActivityEntry) error

func (f ActivityRecorderFunc) RecordActivity(ctx context.Context, entry ActivityEntry) error {
	return f(ctx, entry)
}

// Activity returns middleware that appends one audit entry per request after
// the response is determined. The root health check is exempt. Recorder
// failures are logged and never fail the original request.
func Activity(logger zerolog.Logger, recorder ActivityRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if path == "/" {
				return next(c)
			}

			method := c.Request().Method
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			entry := ActivityEntry{
				OrderID:  orderIDFromPath(path),
				Action:   DeriveAction(method, path),
				Endpoint: path,
				Method:   method,
				Details:  fmt.Sprintf("status=%d response_time=%.3fs", status, time.Since(start).Seconds()),
			}

			// The entry is written on an independent context so a cancelled
			// request cannot lose it and a slow store cannot block forever.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if recErr := recorder.RecordActivity(ctx, entry); recErr != nil {
				rid, _ := c.Get("request_id").(string)
				logger.Error().Err(recErr).
					Str("request_id", rid).
					Str("action", entry.Action).
					Str("path", path).
					Msg("failed to record activity entry")
			}

			return err
		}
	}
}

// DeriveAction maps an HTTP method and path to an activity label.
func DeriveAction(method, path string) string {
	switch method {
	case http.MethodGet:
		switch {
		case path == "/orders":
			return ActionReadAll
		case strings.HasPrefix(path, "/orders/"):
			return ActionReadOne
		case path == "/activity-logs" || strings.HasPrefix(path, "/activity-logs/"):
			return ActionReadLogs
		default:
			return ActionRead
		}
	case http.MethodPost:
		if path == "/upload" {
			return ActionUpload
		}
		return ActionCreate
	case http.MethodPut:
		return ActionUpdate
	case http.MethodDelete:
		return ActionDelete
	default:
		return ActionUnknown
	}
}

// orderIDFromPath extracts an order id from /orders/{id} and
// /activity-logs/order/{id} paths so the entry can be correlated with the
// order it touched. Returns nil when the path carries no id.
func orderIDFromPath(path string) *int64 {
	var raw string
	switch {
	case strings.HasPrefix(path, "/orders/"):
		raw = strings.TrimPrefix(path, "/orders/")
	case strings.HasPrefix(path, "/activity-logs/order/"):
		raw = strings.TrimPrefix(path, "/activity-logs/order/")
	default:
		return nil
	}
	raw = strings.SplitN(raw, "/", 2)[0]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
