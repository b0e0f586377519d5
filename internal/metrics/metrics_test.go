package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	return NewCollector()
}

func TestNewCollector(t *testing.T) {
	c := newTestCollector(t)

	assert.NotNil(t, c.heartbeatsOK)
	assert.NotNil(t, c.heartbeatsError)
	assert.NotNil(t, c.jobsSucceeded)
	assert.NotNil(t, c.jobsFailed)
	assert.NotNil(t, c.kills)
	assert.NotNil(t, c.jobDuration)
	assert.NotNil(t, c.runStatus)
}

func TestRecordHeartbeat(t *testing.T) {
	c := newTestCollector(t)

	c.RecordHeartbeat(true)
	c.RecordHeartbeat(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.heartbeatsOK))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.heartbeatsError))
}

func TestRecordJobFinished(t *testing.T) {
	c := newTestCollector(t)

	c.RecordJobFinished(true, 0.5)
	c.RecordJobFinished(false, 1.5)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.jobsSucceeded))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.jobsFailed))
}

func TestRecordKill(t *testing.T) {
	c := newTestCollector(t)

	c.RecordKill()
	c.RecordKill()

	assert.Equal(t, float64(2), testutil.ToFloat64(c.kills))
}

func TestSetRunStatus(t *testing.T) {
	c := newTestCollector(t)

	c.SetRunStatus(RunStatusRunning)
	assert.Equal(t, float64(RunStatusRunning), testutil.ToFloat64(c.runStatus))

	c.SetRunStatus(RunStatusFailed)
	assert.Equal(t, float64(RunStatusFailed), testutil.ToFloat64(c.runStatus))
}

func TestCollectorDuplicateRegistrationPanics(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	first := NewCollector()
	require.NotNil(t, first)

	assert.Panics(t, func() {
		NewCollector()
	}, "a second collector in the same registry should collide on metric names")
}

func TestConcurrentMetricUpdates(t *testing.T) {
	c := newTestCollector(t)

	done := make(chan struct{}, 50)
	for i := 0; i < 50; i++ {
		go func() {
			c.RecordHeartbeat(true)
			c.RecordJobFinished(true, 0.1)
			c.RecordKill()
			c.SetRunStatus(RunStatusRunning)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 50; i++ {
		<-done
	}
}
