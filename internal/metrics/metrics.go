// Package metrics exposes Prometheus counters for the HTTP API and the
// outreach pipeline.
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
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	agentCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_calls_total",
			Help: "Total number of agent invocations by outcome",
		},
		[]string{"agent_id", "outcome"},
	)

	agentCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_call_duration_seconds",
			Help:    "Duration of agent invocations in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"agent_id"},
	)

	messagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_messages_total",
			Help: "Total number of outreach messages by delivery status",
		},
		[]string{"channel", "status"},
	)

	engagementSignals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_signals_total",
			Help: "Total number of engagement signals applied to leads",
		},
		[]string{"signal"},
	)

	statusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_status_changes_total",
			Help: "Total number of lead status changes by target status",
		},
		[]string{"status"},
	)
)

// Middleware records request counts and durations by route
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// Handler serves the Prometheus exposition format
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// RecordAgentCall counts one agent invocation
func RecordAgentCall(agentID, outcome string, duration time.Duration) {
	agentCalls.WithLabelValues(agentID, outcome).Inc()
	agentCallDuration.WithLabelValues(agentID).Observe(duration.Seconds())
}

// RecordMessage counts one send attempt
func RecordMessage(channel, status string) {
	messagesSent.WithLabelValues(channel, status).Inc()
}

// RecordEngagementSignal counts one signal applied to a lead
func RecordEngagementSignal(signal string) {
	if signal == "" {
		signal = "none"
	}
	engagementSignals.WithLabelValues(signal).Inc()
}

// RecordStatusChange counts one lead status change
func RecordStatusChange(status string) {
	statusChanges.WithLabelValues(status).Inc()
}
