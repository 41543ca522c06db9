package middleware

import (
	"log/slog"
	"net/http"

	"github.com/tobenna/blog-api/internal/api/shared"
	"github.com/tobenna/blog-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and installs a
// request-scoped logger carrying it, so everything logged downstream via
// logger.FromContextOrDefault is correlated with the response trace ID.
// It should be applied early in the middleware chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		reqLogger := slog.Default().With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, reqLogger)

		reqLogger.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
