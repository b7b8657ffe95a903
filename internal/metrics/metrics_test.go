package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncRecompute(t *testing.T) {
	m := New()
	m.IncRecompute("task")
	m.IncRecompute("task")
	m.IncRecompute("project")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Recomputes.WithLabelValues("task")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Recomputes.WithLabelValues("project")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncRecompute("task")
		m.IncDecision("allowed")
	})
}
