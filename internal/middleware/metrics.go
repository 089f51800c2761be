package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/radheshyamgupta01/TLF-sub001/prometheus"
)

// Metrics records request counts and latencies per method/path/status.
func Metrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		duration := time.Since(start).Seconds()
		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		prometheus.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		prometheus.HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)

		return err
	}
}
