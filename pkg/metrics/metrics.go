// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// the campaign pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignforge_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaignforge_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	chatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignforge_chat_turns_total",
			Help: "Chat turns processed, by outcome (clarification, campaign_created, error)",
		},
		[]string{"outcome"},
	)

	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignforge_content_generations_total",
			Help: "Per-channel content generation attempts by result",
		},
		[]string{"channel", "result"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaignforge_content_generation_duration_seconds",
			Help:    "Content generation latency by channel",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"channel"},
	)

	launchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignforge_campaign_launches_total",
			Help: "Campaign launch attempts by result (launched, partial, failed)",
		},
		[]string{"result"},
	)
)

// RecordChatTurn counts a processed chat turn by outcome.
func RecordChatTurn(outcome string) {
	chatTurnsTotal.WithLabelValues(outcome).Inc()
}

// RecordGeneration counts one per-channel generation attempt and its latency.
func RecordGeneration(channel, result string, duration time.Duration) {
	generationsTotal.WithLabelValues(channel, result).Inc()
	generationDuration.WithLabelValues(channel).Observe(duration.Seconds())
}

// RecordLaunch counts a launch attempt by result.
func RecordLaunch(result string) {
	launchesTotal.WithLabelValues(result).Inc()
}

// Middleware instruments every request with a counter and latency histogram.
// The route path is used instead of the raw URL to bound cardinality.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() echo.HandlerFunc {
	h := promhttp.Handler()
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
