package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
)

const (
	requestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 64
)

// preProcess attaches a request scoped logger and request ID. A well formed
// X-Request-ID from the caller is kept so deliveries can be correlated.
func preProcess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := r.Header.Get(requestIDHeader); id != "" && len(id) <= maxRequestIDLength {
			ctx = logging.WithRequestID(ctx, types.RequestID(id))
		}
		reqID, ctx := logging.CtxRequestID(ctx)
		logger := logging.Default().With(slog.Any("request_id", reqID))
		ctx = logging.With(ctx, logger)
		w.Header().Set(requestIDHeader, string(reqID))

		lw := &statusCodeLogger{
			ResponseWriter: w,
			statusCode:     http.StatusOK, // Default to 200 if WriteHeader is not called
		}

		requestedAt := time.Now()
		next.ServeHTTP(lw, r.WithContext(ctx))

		level := slog.LevelInfo
		if r.URL.Path == "/health" {
			level = slog.LevelDebug
		}
		logger.Log(ctx, level, "http access",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Int("status_code", lw.statusCode),
			slog.Int64("content_length", r.ContentLength),
			slog.String("user_agent", r.UserAgent()),
			slog.String("github_delivery", r.Header.Get("X-GitHub-Delivery")),
			slog.Duration("elapsed", time.Since(requestedAt)),
		)
	})
}

type statusCodeLogger struct {
	http.ResponseWriter
	statusCode int
}

func (x *statusCodeLogger) WriteHeader(code int) {
	x.statusCode = code
	x.ResponseWriter.WriteHeader(code)
}
