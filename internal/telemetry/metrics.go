package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/wolfeidau/studiodesk"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	// Access-scope metrics
	GuardChecksTotal metric.Int64Counter
	GuardDeniedTotal metric.Int64Counter
	ScopedReadsTotal metric.Int64Counter

	// Notification fan-out metrics
	NotificationsCreatedTotal metric.Int64Counter
	NotificationsDroppedTotal metric.Int64Counter
	NotificationsReadTotal    metric.Int64Counter
	BroadcastFailuresTotal    metric.Int64Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.GuardChecksTotal, _ = meter.Int64Counter(
		"studiodesk.guard.checks.total",
		metric.WithDescription("Total number of guarded resource lookups"),
		metric.WithUnit("{check}"),
	)

	m.GuardDeniedTotal, _ = meter.Int64Counter(
		"studiodesk.guard.denied.total",
		metric.WithDescription("Total number of guarded lookups that missed (absent or out of scope)"),
		metric.WithUnit("{check}"),
	)

	m.ScopedReadsTotal, _ = meter.Int64Counter(
		"studiodesk.scope.reads.total",
		metric.WithDescription("Total number of successful scoped reads"),
		metric.WithUnit("{read}"),
	)

	m.NotificationsCreatedTotal, _ = meter.Int64Counter(
		"studiodesk.notifications.created.total",
		metric.WithDescription("Total number of notification rows written by fan-out"),
		metric.WithUnit("{notification}"),
	)

	m.NotificationsDroppedTotal, _ = meter.Int64Counter(
		"studiodesk.notifications.dropped.total",
		metric.WithDescription("Total number of notifications dropped due to fan-out errors"),
		metric.WithUnit("{notification}"),
	)

	m.NotificationsReadTotal, _ = meter.Int64Counter(
		"studiodesk.notifications.read.total",
		metric.WithDescription("Total number of notifications marked read by recipients"),
		metric.WithUnit("{notification}"),
	)

	// Counted separately from dropped notifications: when the roster lookup
	// fails the number of rows that would have been written is unknown, so a
	// per-notification drop count would be wrong in either direction.
	m.BroadcastFailuresTotal, _ = meter.Int64Counter(
		"studiodesk.notifications.broadcast_failures.total",
		metric.WithDescription("Total number of broadcasts dropped because the recipient roster could not be resolved"),
		metric.WithUnit("{broadcast}"),
	)

	return m
}
