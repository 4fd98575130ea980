package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/outpost-engine/internal/logger"
	"github.com/jwebster45206/outpost-engine/internal/metrics"
)

// RequestIDHeader carries the request id back to the client.
const RequestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by the downstream handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Logger tags every request with a request id, stores a logger carrying that
// id in the request context and logs the request once it completes. When m
// is non-nil the request is also counted.
func Logger(log *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			reqLog := logger.WithRequestID(log, requestID)
			r = r.WithContext(logger.NewContext(r.Context(), reqLog))

			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.statusCode,
				"duration", duration,
				"remote_addr", r.RemoteAddr,
			}
			switch {
			case rec.statusCode >= http.StatusInternalServerError:
				reqLog.Error("Request handled", attrs...)
			case rec.statusCode >= http.StatusBadRequest:
				reqLog.Warn("Request handled", attrs...)
			default:
				reqLog.Info("Request handled", attrs...)
			}

			if m != nil {
				path := r.URL.Path
				if rec.statusCode == http.StatusNotFound {
					// unknown paths would otherwise grow the label set without bound
					path = "unmatched"
				}
				m.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(rec.statusCode)).Inc()
			}
		})
	}
}
