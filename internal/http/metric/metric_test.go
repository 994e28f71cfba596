package metric

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCollector struct {
	desc *prometheus.Desc
}

func (c failingCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c failingCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.NewInvalidMetric(c.desc, errors.New("sensor offline"))
}

func TestMetrics_Handler(t *testing.T) {
	t.Run("Should expose request metrics", func(t *testing.T) {
		m := New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		m.Observe(http.MethodGet, "/greens", http.StatusOK, 0)

		resp := httptest.NewRecorder()
		m.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `roastery_http_requests_total{method="GET",route="/greens",status="200"} 1`)
	})

	t.Run("Should log gather errors to the service logger", func(t *testing.T) {
		var buf bytes.Buffer
		m := New(slog.New(slog.NewJSONHandler(&buf, nil)))
		m.registry.MustRegister(failingCollector{
			desc: prometheus.NewDesc("roastery_roaster_temperature", "Roaster drum temperature.", nil, nil),
		})

		resp := httptest.NewRecorder()
		m.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
		assert.Contains(t, buf.String(), "sensor offline")
	})
}
