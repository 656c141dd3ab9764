package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/hitoshi/podfeed/internal/model"
)

func newRateLimitedHandler(rl *RateLimiter, calls *int) http.Handler {
	return rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	}))
}

func requestFrom(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/inspect", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 2, Burst: 5, CleanupInterval: time.Minute})
	defer rl.Stop()

	calls := 0
	handler := newRateLimitedHandler(rl, &calls)

	// バースト内の5リクエストは全て通る
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestFrom("192.0.2.1:1234"))
		if w.Result().StatusCode != http.StatusOK {
			t.Errorf("request %d: status = %d, want %d", i, w.Result().StatusCode, http.StatusOK)
		}
	}

	if calls != 5 {
		t.Errorf("handler call count = %d, want 5", calls)
	}
}

func TestRateLimitMiddleware_Returns429WhenLimitExceeded(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 2, CleanupInterval: time.Minute})
	defer rl.Stop()

	calls := 0
	handler := newRateLimitedHandler(rl, &calls)

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), requestFrom("192.0.2.1:1234"))
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("192.0.2.1:5678"))

	resp := w.Result()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusTooManyRequests)
	}
	if calls != 2 {
		t.Errorf("handler call count = %d, want 2", calls)
	}

	retryAfter, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || retryAfter < 1 {
		t.Errorf("Retry-After = %q, want positive integer", resp.Header.Get("Retry-After"))
	}

	var body ErrorResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != ErrCodeRateLimited {
		t.Errorf("code = %q, want %q", body.Code, ErrCodeRateLimited)
	}
	if StatusForAPIError(&model.APIError{Code: body.Code}) != http.StatusTooManyRequests {
		t.Error("RATE_LIMITEDは429に対応するべき")
	}
}

func TestRateLimitMiddleware_IsolatesClients(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1, CleanupInterval: time.Minute})
	defer rl.Stop()

	calls := 0
	handler := newRateLimitedHandler(rl, &calls)

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, requestFrom("192.0.2.1:1234"))
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, requestFrom("198.51.100.7:1234"))

	if w1.Result().StatusCode != http.StatusOK || w2.Result().StatusCode != http.StatusOK {
		t.Error("異なるIPのレート制限は独立しているべき")
	}
	if rl.LimiterCount() != 2 {
		t.Errorf("LimiterCount() = %d, want 2", rl.LimiterCount())
	}
}

func TestRateLimiter_CleanupRemovesExpiredEntries(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 2, Burst: 5, CleanupInterval: 50 * time.Millisecond})
	defer rl.Stop()

	calls := 0
	handler := newRateLimitedHandler(rl, &calls)
	handler.ServeHTTP(httptest.NewRecorder(), requestFrom("192.0.2.1:1234"))

	if rl.LimiterCount() == 0 {
		t.Fatal("expected at least one limiter entry")
	}

	// TTLはCleanupIntervalの2倍（100ms）なので200ms待てば削除される
	time.Sleep(200 * time.Millisecond)

	if count := rl.LimiterCount(); count != 0 {
		t.Errorf("expected 0 limiter entries after cleanup, got %d", count)
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(requestFrom("192.0.2.1:1234")); got != "192.0.2.1" {
		t.Errorf("ClientIP = %q, want 192.0.2.1", got)
	}
	// RealIPミドルウェア適用後はポートがない
	if got := ClientIP(requestFrom("203.0.113.9")); got != "203.0.113.9" {
		t.Errorf("ClientIP = %q, want 203.0.113.9", got)
	}
}

func TestRateLimiterConfigPerMinute(t *testing.T) {
	cfg := RateLimiterConfigPerMinute(120)
	if float64(cfg.Rate) != 2.0 {
		t.Errorf("Rate = %v, want 2", cfg.Rate)
	}
	if cfg.Burst != 120 {
		t.Errorf("Burst = %d, want 120", cfg.Burst)
	}

	def := DefaultRateLimiterConfig()
	if def.Burst != 60 || def.CleanupInterval != 5*time.Minute {
		t.Errorf("DefaultRateLimiterConfig() = %+v", def)
	}
}
