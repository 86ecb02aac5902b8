package metrics_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/metrics"
)

func TestObserveToolCall(t *testing.T) {
	metrics.ObserveToolCall("metrics_test", nil, time.Millisecond)
	metrics.ObserveToolCall("metrics_test", fmt.Errorf("boom"), time.Millisecond)

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "rpg_dice_tool_calls_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["tool"] == "metrics_test" {
				counts[labels["outcome"]] = m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, counts[metrics.OutcomeOK])
	assert.Equal(t, 1.0, counts[metrics.OutcomeError])
}

func TestHandler(t *testing.T) {
	metrics.AddDice("20", 2)
	metrics.IncBatchFailure("bogus")

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `rpg_dice_dice_rolled_total{sides="20"}`)
	assert.Contains(t, body, `rpg_dice_batch_operation_failures_total{type="bogus"}`)
}
