package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/georepo/internal/logger"
)

func TestRateLimit(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	h := RateLimit(RateLimitConfig{
		Burst:     2,
		PerMinute: 60,
		Now:       func() time.Time { return now },
	}, logger.NewNop())(okHandler)

	call := func(addr string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := call("10.0.0.1:1000"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, w.Code)
		}
	}

	w := call("10.0.0.1:1000")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status = %d, want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}

	// Buckets are per client.
	if w := call("10.0.0.2:1000"); w.Code != http.StatusOK {
		t.Errorf("other client: status = %d", w.Code)
	}

	now = now.Add(time.Second)
	if w := call("10.0.0.1:1000"); w.Code != http.StatusOK {
		t.Errorf("after refill: status = %d", w.Code)
	}
}

func TestLimiterDropsIdleBuckets(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{
		Burst:     1,
		PerMinute: 1,
		IdleTTL:   time.Minute,
		Now:       func() time.Time { return now },
	})

	l.take("a")
	l.take("b")
	now = now.Add(2 * time.Minute)
	l.take("c")

	if len(l.buckets) != 1 {
		t.Errorf("buckets = %d, want 1", len(l.buckets))
	}
}
