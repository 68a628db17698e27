package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestMetricsCounters(t *testing.T) {
	ctx := context.Background()

	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	m := GetMetrics()
	require.Same(t, m, GetMetrics())

	m.GuardChecksTotal.Add(ctx, 1)
	m.GuardDeniedTotal.Add(ctx, 1)
	m.NotificationsDroppedTotal.Add(ctx, 3)
	m.BroadcastFailuresTotal.Add(ctx, 1)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Equal(t, meterName, rm.ScopeMetrics[0].Scope.Name)

	sums := map[string]int64{}
	for _, metric := range rm.ScopeMetrics[0].Metrics {
		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok, "metric %s", metric.Name)
		var total int64
		for _, dp := range sum.DataPoints {
			total += dp.Value
		}
		sums[metric.Name] = total
	}

	require.Equal(t, int64(1), sums["studiodesk.guard.checks.total"])
	require.Equal(t, int64(1), sums["studiodesk.guard.denied.total"])
	require.Equal(t, int64(3), sums["studiodesk.notifications.dropped.total"])
	require.Equal(t, int64(1), sums["studiodesk.notifications.broadcast_failures.total"])
}
