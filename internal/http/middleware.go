package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"smilescript/backend/internal/logger"
)

// RequestIDMiddleware assigns a UUID to every request so that log lines
// belonging to one summarization can be correlated.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLoggerMiddleware logs HTTP requests using logger.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := []any{
				"module", "http",
				"action", "request",
				"resource", "http",
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", res.Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
			}

			switch {
			case res.Status >= 500:
				logger.Error("http request", append(fields, "result", "failed")...)
			case res.Status >= 400:
				logger.Warn("http request", append(fields, "result", "failed")...)
			default:
				logger.Debug("http request", append(fields, "result", "ok")...)
			}

			return nil
		}
	}
}
