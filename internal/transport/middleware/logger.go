package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pokenihongo/admin-console/internal/auth"
	"github.com/pokenihongo/admin-console/pkg/ctxutil"
)

type logInfoKey struct{}

// logInfo lets middleware further down the chain attach the caller's
// identity to the request log line.
type logInfo struct {
	session auth.Session
}

func annotate(ctx context.Context, s auth.Session) {
	if info, ok := ctx.Value(logInfoKey{}).(*logInfo); ok {
		info.session = s
	}
}

// Logger returns middleware that logs each HTTP request with method, path,
// status code, duration, request id and, for signed-in callers, user and role.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			info := &logInfo{}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), logInfoKey{}, info)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if !info.session.IsZero() {
				attrs = append(attrs,
					slog.Int("user_id", info.session.UserID),
					slog.String("role", info.session.Role.String()),
				)
			}

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
