package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/leave/requests", "POST", 201, 2*time.Millisecond)
	m.RecordRequest("/leave/requests", "POST", 201, 4*time.Millisecond)
	m.RecordError("/leave/requests", "POST", "DATE_OVERLAP")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/leave/requests|POST|201"])
	assert.InDelta(t, 3.0, snap.AvgLatencyMS["/leave/requests|POST|201"], 0.001)
	assert.Equal(t, int64(1), snap.Errors["/leave/requests|POST|DATE_OVERLAP"])

	var nilMetrics *Metrics
	nilMetrics.RecordRequest("/x", "GET", 200, time.Millisecond)
	assert.Empty(t, nilMetrics.Snapshot().Requests)
}
