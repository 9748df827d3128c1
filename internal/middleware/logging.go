package middleware

import (
	"net/http"
	"time"

	"github.com/HammerMeetNail/tripboard/internal/logging"
)

// probePaths are polled by the orchestrator; successful hits log at debug.
var probePaths = map[string]bool{
	"/health": true,
	"/ready":  true,
	"/live":   true,
}

type RequestLogger struct {
	logger *logging.Logger
}

func NewRequestLogger(logger *logging.Logger) *RequestLogger {
	if logger == nil {
		logger = logging.Default
	}
	return &RequestLogger{logger: logger}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
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

func (rl *RequestLogger) Apply(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		fields := map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      status,
			"bytes":       rec.bytes,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_ip":   GetClientIP(r),
		}
		if r.URL.RawQuery != "" {
			fields["query"] = r.URL.RawQuery
		}

		switch {
		case status >= 500:
			rl.logger.Error("request failed", fields)
		case status >= 400:
			rl.logger.Warn("request rejected", fields)
		case probePaths[r.URL.Path]:
			rl.logger.Debug("probe", fields)
		default:
			rl.logger.Info("request", fields)
		}
	})
}
