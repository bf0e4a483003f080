package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger returns a middleware that wraps a handler invocation,
// measures its latency and writes one line per request tagged with the
// endpoint label. Responses with a 5xx status (or a handler error, which
// Echo turns into one) are logged on the error variant so failures stand
// out in the console.
func RequestLogger(label string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			dur := time.Since(start)
			status := c.Response().Status
			if err != nil || status >= 500 {
				log.Printf("[ERROR] [%s] %s %s %d - %s (err=%v)",
					label, req.Method, req.URL.Path, status, dur, err)
				return err
			}
			log.Printf("[LOG] [%s] %s %s %d - %s",
				label, req.Method, req.URL.Path, status, dur)
			return nil
		}
	}
}
