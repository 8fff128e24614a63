package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edsis/inventory-service/pkg/metrics"
)

// MetricsMiddleware creates middleware that records HTTP metrics
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid recursion
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		// Track in-flight requests
		m.IncrementHTTPRequestsInFlight()
		defer m.DecrementHTTPRequestsInFlight()

		// Record start time
		start := time.Now()

		// Process request
		c.Next()

		// Record metrics after request completes
		duration := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		path := c.FullPath() // Use route pattern, not actual path

		// If no route matched, use the raw path
		if path == "" {
			path = c.Request.URL.Path
		}

		// Record HTTP request metrics
		m.RecordHTTPRequest(method, path, status, duration)
	}
}

// MetricsEndpoint returns a handler for the /metrics endpoint
func MetricsEndpoint(m *metrics.Metrics) gin.HandlerFunc {
	handler := m.Handler()
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// BusinessMetrics provides helpers for recording business-specific metrics
type BusinessMetrics struct {
	metrics *metrics.Metrics
}

// NewBusinessMetrics creates a new BusinessMetrics helper
func NewBusinessMetrics(m *metrics.Metrics) *BusinessMetrics {
	return &BusinessMetrics{metrics: m}
}

// RecordItemBooked records a booking event
func (b *BusinessMetrics) RecordItemBooked() {
	b.metrics.RecordItemBooked()
}

// RecordItemReleased records a release event
func (b *BusinessMetrics) RecordItemReleased(reason string) {
	b.metrics.RecordItemReleased(reason)
}

// RecordItemSold records a sale event
func (b *BusinessMetrics) RecordItemSold() {
	b.metrics.RecordItemSold()
}

// RecordBookingsExpired records bookings released by the expiry sweep
func (b *BusinessMetrics) RecordBookingsExpired(count int) {
	b.metrics.RecordBookingsExpired(count)
}

// RecordProductsImported records products processed by bulk import
func (b *BusinessMetrics) RecordProductsImported(mode string, count int) {
	b.metrics.RecordProductsImported(mode, count)
}

// RecordExportGenerated records an inventory export
func (b *BusinessMetrics) RecordExportGenerated(success bool) {
	b.metrics.RecordExportGenerated(success)
}
