package middleware

import (
	"log"
	"net/http"
	"time"
)

// Logging logs one line per request: method, path, status, duration and
// request id. Must run after RequestID.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		log.Printf(
			"[HTTP] %s %s %d %s rid=%s",
			r.Method,
			r.URL.Path,
			wrapped.status,
			time.Since(start).Round(time.Microsecond),
			GetRequestID(r.Context()),
		)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}
