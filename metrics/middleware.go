package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// statusRecorder captures the response status for request labeling.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// routeLabel returns the chi route pattern for the request, so path
// parameters like the identifier in /medication/id/{identifier} do not
// explode the label cardinality. Requests that never went through the chi
// router keep their raw path.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// Metrics records the total, latency, and in-flight count of every request.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		HTTPRequestInFlight.Inc()
		defer HTTPRequestInFlight.Dec()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		// The route pattern is only filled in after routing completed
		label := routeLabel(r)
		HTTPRequestTotals.WithLabelValues(r.Method, label, strconv.Itoa(recorder.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, label).Observe(time.Since(start).Seconds())
	})
}
