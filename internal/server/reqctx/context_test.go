package reqctx

import (
	"context"
	"net/http"
	"testing"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		want       string
	}{
		{"forwarded single", map[string]string{"X-Forwarded-For": "203.0.113.195"}, "127.0.0.1:8080", true, "203.0.113.195"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"}, "127.0.0.1:8080", true, "203.0.113.195"},
		{"forwarded padded", map[string]string{"X-Forwarded-For": "  203.0.113.195  "}, "127.0.0.1:8080", true, "203.0.113.195"},
		{"forwarded empty entry", map[string]string{"X-Forwarded-For": " , 70.41.3.18"}, "127.0.0.1:8080", true, "127.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.7"}, "127.0.0.1:8080", true, "203.0.113.7"},
		{"forwarded wins", map[string]string{"X-Forwarded-For": "203.0.113.1", "X-Real-IP": "10.0.0.1"}, "127.0.0.1:8080", true, "203.0.113.1"},
		{"ipv6 forwarded", map[string]string{"X-Forwarded-For": "2001:db8::1"}, "127.0.0.1:8080", true, "2001:db8::1"},
		{"forwarded ignored without proxy", map[string]string{"X-Forwarded-For": "203.0.113.195"}, "192.168.1.1:12345", false, "192.168.1.1"},
		{"real ip ignored without proxy", map[string]string{"X-Real-IP": "203.0.113.7"}, "192.168.1.1:12345", false, "192.168.1.1"},
		{"remote with port", nil, "192.168.1.1:12345", false, "192.168.1.1"},
		{"remote without port", nil, "192.168.1.1", false, "192.168.1.1"},
		{"ipv6 remote", nil, "[::1]:8080", false, "::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/", http.NoBody)
			if err != nil {
				t.Fatalf("Failed to create request: %v", err)
			}
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req, tt.trustProxy); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if ClientIP(ctx) != "" || RequestID(ctx) != "" {
		t.Fatal("empty context returned values")
	}
	ctx = WithClientIP(ctx, "10.0.0.1")
	ctx = WithRequestID(ctx, "abc")
	if got := ClientIP(ctx); got != "10.0.0.1" {
		t.Errorf("ClientIP() = %q", got)
	}
	if got := RequestID(ctx); got != "abc" {
		t.Errorf("RequestID() = %q", got)
	}
}
