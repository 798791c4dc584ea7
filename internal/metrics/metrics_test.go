package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabeard21/ao-bin-dumps/internal/metrics"
)

func TestHandlerExposesCollectors(t *testing.T) {
	metrics.PriceRounds.WithLabelValues(metrics.OutcomeMiss).Inc()
	metrics.SlotsSelected.WithLabelValues(metrics.ResultDegraded, "cheapest").Inc()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "ao_selector_price_fetch_rounds_total")
	assert.Contains(t, string(body), `ao_selector_slots_selected_total{result="degraded",strategy="cheapest"}`)
}
