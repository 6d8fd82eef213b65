package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/pokenihongo/admin-console/pkg/ctxutil"
)

// Recovery returns middleware that turns a panicking handler into a 500.
// The log line carries the stack, the request id and, when Auth ran further
// down the chain, the caller's user and role. The response body repeats the
// request id so operators can quote it. http.ErrAbortHandler is re-raised
// for net/http to handle.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				ctx := r.Context()
				requestID := ctxutil.RequestIDFromCtx(ctx)
				attrs := []slog.Attr{
					slog.Any("error", v),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", requestID),
				}
				if info, ok := ctx.Value(logInfoKey{}).(*logInfo); ok && !info.session.IsZero() {
					attrs = append(attrs,
						slog.Int("user_id", info.session.UserID),
						slog.String("role", info.session.Role.String()),
					)
				}
				attrs = append(attrs, slog.String("stack", string(debug.Stack())))
				logger.LogAttrs(ctx, slog.LevelError, "panic recovered", attrs...)

				msg := "internal server error"
				if requestID != "" {
					msg = fmt.Sprintf("%s (request %s)", msg, requestID)
				}
				http.Error(w, msg, http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
