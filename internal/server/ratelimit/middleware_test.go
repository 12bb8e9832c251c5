package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWriteHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	WriteHeaders(w, Result{Allowed: true, Limit: 60, Remaining: 45, ResetAt: time.Unix(1706012345, 0)})
	if got := w.Header().Get("X-RateLimit-Limit"); got != "60" {
		t.Errorf("X-RateLimit-Limit = %s, want 60", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "45" {
		t.Errorf("X-RateLimit-Remaining = %s, want 45", got)
	}
	if got := w.Header().Get("X-RateLimit-Reset"); got != "1706012345" {
		t.Errorf("X-RateLimit-Reset = %s, want 1706012345", got)
	}
	if got := w.Header().Get("Retry-After"); got != "" {
		t.Errorf("Retry-After should not be set for allowed requests, got %s", got)
	}

	w = httptest.NewRecorder()
	WriteHeaders(w, Result{Allowed: false, RetryAfter: 30 * time.Second})
	if got := w.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After = %s, want 30", got)
	}
}

func TestConfig_Match(t *testing.T) {
	cfg := NewConfig(60, 600)
	defer cfg.Close()
	tests := []struct {
		method, path string
		want         *Tier
	}{
		{http.MethodPost, "/frameworks", cfg.Write},
		{http.MethodPut, "/frameworks/1", cfg.Write},
		{http.MethodDelete, "/frameworks/1", cfg.Write},
		{http.MethodGet, "/frameworks", cfg.Read},
		{http.MethodGet, "/health", nil},
		{http.MethodOptions, "/frameworks", nil},
	}
	for _, tt := range tests {
		if got := cfg.Match(tt.method, tt.path); got != tt.want {
			t.Errorf("Match(%s, %s) = %v, want %v", tt.method, tt.path, got, tt.want)
		}
	}
	var nilCfg *Config
	if nilCfg.Match(http.MethodGet, "/") != nil {
		t.Error("nil config should not limit")
	}
	disabled := NewConfig(0, 0)
	if disabled.Match(http.MethodPost, "/frameworks") != nil {
		t.Error("zero rate should disable the tier")
	}
}

func TestMiddleware(t *testing.T) {
	cfg := NewConfig(6, 0)
	defer cfg.Close()
	denied := 0
	h := Middleware(cfg,
		func(r *http.Request) string { return r.RemoteAddr },
		func(w http.ResponseWriter, r *http.Request, res Result) {
			denied++
			w.WriteHeader(http.StatusTooManyRequests)
		},
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(method string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(method, "/frameworks", http.NoBody)
		r.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(w, r)
		return w
	}

	// Burst is 1 for 6/min.
	if w := do(http.MethodPost); w.Code != http.StatusNoContent || w.Header().Get("X-RateLimit-Limit") != "6" {
		t.Fatalf("first POST: %d %v", w.Code, w.Header())
	}
	if w := do(http.MethodPost); w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") == "" {
		t.Fatalf("second POST: %d %v", w.Code, w.Header())
	}
	if w := do(http.MethodGet); w.Code != http.StatusNoContent || w.Header().Get("X-RateLimit-Limit") != "" {
		t.Errorf("GET with disabled read tier: %d %v", w.Code, w.Header())
	}
	if denied != 1 {
		t.Errorf("denied = %d, want 1", denied)
	}
}
