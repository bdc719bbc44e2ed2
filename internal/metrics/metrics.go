package metrics

import (
	"sync"
	"time"
)

// Recorder captures lightweight, in-memory metrics about store mutations,
// aggregation runs, and persistence, mirroring them to OpenTelemetry when
// telemetry is enabled. The in-memory counters keep tests and debugging
// independent of an exporter.
type Recorder struct {
	mu              sync.Mutex
	mutations       map[string]int
	aggregations    int
	lastAggLatency  time.Duration
	persistWrites   int
	persistErrors   int
	lastSaveLatency time.Duration
	liveBroadcasts  int
	otel            *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		mutations: make(map[string]int),
		otel:      otel,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordMutation increments the counter for one applied state transition.
func (r *Recorder) RecordMutation(action string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.mutations[action]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordMutation(action)
	}
}

// Mutations returns the total transitions recorded for an action.
func (r *Recorder) Mutations(action string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mutations[action]
}

// RecordAggregation tracks one box-score recomputation.
func (r *Recorder) RecordAggregation(duration time.Duration, eventCount int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.aggregations++
	r.lastAggLatency = duration
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAggregation(duration, eventCount)
	}
}

// Aggregations returns the number of recomputations recorded.
func (r *Recorder) Aggregations() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aggregations
}

// LastAggregationLatency returns the latency of the most recent recomputation.
func (r *Recorder) LastAggregationLatency() time.Duration {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastAggLatency
}

// RecordPersist tracks one document write attempt.
func (r *Recorder) RecordPersist(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.persistWrites++
	r.lastSaveLatency = duration
	if err != nil {
		r.persistErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPersist(duration, err)
	}
}

// PersistWrites returns the number of write attempts recorded.
func (r *Recorder) PersistWrites() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persistWrites
}

// PersistErrors returns the number of failed write attempts recorded.
func (r *Recorder) PersistErrors() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persistErrors
}

// RecordLiveBroadcast tracks one box-score push to live clients.
func (r *Recorder) RecordLiveBroadcast() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.liveBroadcasts++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLiveBroadcast()
	}
}

// LiveBroadcasts returns the number of pushes recorded.
func (r *Recorder) LiveBroadcasts() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.liveBroadcasts
}
