package httpapi

import (
	"net/http"
	"time"

	"github.com/gabapcia/walletwatch/internal/pkg/logger"

	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger tags the request context with its ID and logs one line per
// request once it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logger.Derive(r.Context(), "http.request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Debug(ctx, "http request served",
			"http.method", r.Method,
			"http.path", r.URL.Path,
			"http.status", ww.Status(),
			"http.duration", time.Since(start).String(),
		)
	})
}
