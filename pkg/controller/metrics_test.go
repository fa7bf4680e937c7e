package controller_test

import (
	"artisan/pkg/controller"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestMetrics_Wrap(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := controller.NewMetrics(provider.Meter("test"))
	require.NoError(t, err)

	handler := m.Wrap("GET /v1/chats", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	for range 3 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/chats", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	found := map[string]bool{}
	for _, metric := range rm.ScopeMetrics[0].Metrics {
		found[metric.Name] = true
		switch data := metric.Data.(type) {
		case metricdata.Sum[int64]:
			require.Len(t, data.DataPoints, 1)
			require.Equal(t, int64(3), data.DataPoints[0].Value)
			route, ok := data.DataPoints[0].Attributes.Value(attribute.Key("http.route"))
			require.True(t, ok)
			require.Equal(t, "GET /v1/chats", route.AsString())
			status, ok := data.DataPoints[0].Attributes.Value(attribute.Key("http.response.status_code"))
			require.True(t, ok)
			require.Equal(t, "404", status.AsString())
		case metricdata.Histogram[float64]:
			require.Len(t, data.DataPoints, 1)
			require.Equal(t, uint64(3), data.DataPoints[0].Count)
		default:
			t.Fatalf("unexpected metric data %T", data)
		}
	}
	require.True(t, found["http.server.requests"])
	require.True(t, found["http.server.request.duration"])
}
