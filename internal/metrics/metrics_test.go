package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCacheCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordCacheHit("courses")
	m.RecordCacheHit("courses")
	m.RecordCacheMiss("faq")

	if got := testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("courses")); got != 2 {
		t.Errorf("cache hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("faq")); got != 1 {
		t.Errorf("cache misses = %v, want 1", got)
	}
}

func TestRecordIntentDecision(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordIntentDecision("fallback")
	m.RecordIntentDecision("course")
	m.RecordIntentDecision("course")

	if got := testutil.ToFloat64(m.IntentDecisionsTotal.WithLabelValues("course")); got != 2 {
		t.Errorf("course decisions = %v, want 2", got)
	}
}

func TestRecordGeneration(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordGeneration("openai", "success", 1.2)
	m.RecordGeneration("gemini", "error", 0.4)

	if got := testutil.ToFloat64(m.GenerationRequestsTotal.WithLabelValues("openai", "success")); got != 1 {
		t.Errorf("openai success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.GenerationRequestsTotal.WithLabelValues("gemini", "error")); got != 1 {
		t.Errorf("gemini error = %v, want 1", got)
	}
}

func TestDoubleRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	defer func() {
		if r := recover(); r == nil {
			t.Error("registering the same metrics twice should panic")
		}
	}()
	New(registry)
}
