// Package logging provides the structured slog setup and request logging
// middleware for the catalog service.
package logging

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// responseWriterPool reuses wrapper instances so request logging does not
// allocate a new wrapper per request.
var responseWriterPool = sync.Pool{
	New: func() any {
		return &responseWriterWrapper{
			statusCode: 200,
		}
	},
}

// LoggingMiddleware logs HTTP requests using slog with structured logging
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Health and metrics probes are frequent and uninteresting
			if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			ww := responseWriterPool.Get().(*responseWriterWrapper)
			ww.ResponseWriter = w
			ww.statusCode = 200
			ww.bytesWritten = 0

			next.ServeHTTP(ww, r)

			duration := time.Since(start)

			requestID, ok := r.Context().Value(middleware.RequestIDKey).(string)
			if !ok || requestID == "" {
				requestID = "unknown"
			}

			attrs := []any{
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
			}

			if r.URL.RawQuery != "" {
				attrs = append(attrs, "query", r.URL.RawQuery)
			}

			attrs = append(attrs,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"status_code", ww.statusCode,
				"bytes_written", ww.bytesWritten,
				"duration_ms", duration.Milliseconds(),
			)

			logger.InfoContext(r.Context(), "HTTP request", attrs...)

			responseWriterPool.Put(ww)
		})
	}
}

// responseWriterWrapper captures the status code and bytes written
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.bytesWritten += n
	return n, err
}
