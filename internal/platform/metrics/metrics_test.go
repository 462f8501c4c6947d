package metrics

import (
	"testing"
	"time"
)

func TestCollectorSplitsOutcomeClasses(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(404, 5*time.Millisecond)
	c.Record(500, 20*time.Millisecond)
	c.Record(429, 1*time.Millisecond)

	snap := c.Snapshot()
	if got := snap["requestsTotal"].(uint64); got != 4 {
		t.Fatalf("expected 4 requests, got %d", got)
	}
	if got := snap["clientErrorsTotal"].(uint64); got != 1 {
		t.Fatalf("expected 1 client error, got %d", got)
	}
	if got := snap["serverErrorsTotal"].(uint64); got != 1 {
		t.Fatalf("expected 1 server error, got %d", got)
	}
	if got := snap["rateLimitedTotal"].(uint64); got != 1 {
		t.Fatalf("expected 1 rate-limited request, got %d", got)
	}
	if got := snap["totalDurationMs"].(uint64); got != 36 {
		t.Fatalf("expected 36ms total, got %d", got)
	}
	if got := snap["avgDurationMs"].(float64); got != 9 {
		t.Fatalf("expected 9ms average, got %v", got)
	}
}

func TestCollectorEmptySnapshot(t *testing.T) {
	snap := New().Snapshot()
	if got := snap["requestsTotal"].(uint64); got != 0 {
		t.Fatalf("expected 0 requests, got %d", got)
	}
	if got := snap["avgDurationMs"].(float64); got != 0 {
		t.Fatalf("expected 0 average, got %v", got)
	}
}
