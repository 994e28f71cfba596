package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/config"
)

func TestInitTracer(t *testing.T) {
	t.Run("Should install propagator without collector", func(t *testing.T) {
		cleanup, err := InitTracer(t.Context(), config.Otel{ServiceName: "coffee-roastery"})
		require.NoError(t, err)
		require.NoError(t, cleanup(t.Context()))

		assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
	})
}

func TestResourceAttrs(t *testing.T) {
	attrs := resourceAttrs(config.Otel{
		ServiceName:  "coffee-roastery",
		K8sPodName:   "api-0",
		K8sNamespace: "roastery",
	})

	values := map[string]string{}
	for _, kv := range attrs {
		values[string(kv.Key)] = kv.Value.AsString()
	}
	assert.Equal(t, map[string]string{
		"service.name":       "coffee-roastery",
		"k8s.pod.name":       "api-0",
		"k8s.namespace.name": "roastery",
	}, values)
}
