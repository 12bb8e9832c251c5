// HTTP middleware applied to every route.

package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/maruel/ksid"
	"github.com/techhub/techhub/internal/server/dto"
	"github.com/techhub/techhub/internal/server/ratelimit"
	"github.com/techhub/techhub/internal/server/reqctx"
)

const maxRequestIDLen = 64

// withRequestMetadata stores the client IP and a request ID in the context and
// echoes the ID in the response. A well-formed inbound X-Request-ID is kept.
// Proxy headers are only consulted when trustProxy is set.
func withRequestMetadata(trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(reqctx.RequestIDHeader)
			if !validRequestID(id) {
				id = ksid.NewID().String()
			}
			w.Header().Set(reqctx.RequestIDHeader, id)
			ctx := reqctx.WithRequestID(r.Context(), id)
			ctx = reqctx.WithClientIP(ctx, reqctx.GetClientIP(r, trustProxy))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, c := range []byte(id) {
		if c <= ' ' || c >= 0x7f {
			return false
		}
	}
	return true
}

// statusRecorder captures the status code and body size.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// accessLog logs one line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		ctx := r.Context()
		slog.InfoContext(ctx, "http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.bytes,
			"dur", time.Since(start).Round(time.Microsecond),
			"ip", reqctx.ClientIP(ctx),
			"rid", reqctx.RequestID(ctx),
		)
	})
}

// recoverPanic turns a handler panic into an INTERNAL error response. When
// the handler already sent headers, the response is aborted instead.
func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			slog.ErrorContext(r.Context(), "Handler panic", "panic", v, "status", rec.status, "stack", string(debug.Stack()))
			if rec.status != 0 {
				panic(http.ErrAbortHandler)
			}
			writeErrorResponse(w, r, dto.Internal(fmt.Sprint(v)))
		}()
		next.ServeHTTP(rec, r)
	})
}

// rateLimit applies the per-client tiers of limits.
func rateLimit(limits *ratelimit.Config) func(http.Handler) http.Handler {
	return ratelimit.Middleware(limits,
		func(r *http.Request) string { return reqctx.ClientIP(r.Context()) },
		func(w http.ResponseWriter, r *http.Request, result ratelimit.Result) {
			writeErrorResponse(w, r, dto.RateLimitExceeded(int(result.RetryAfter.Seconds())))
		},
	)
}
