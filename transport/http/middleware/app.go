package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"courtside/config"
	"courtside/infras/otel"
	"courtside/shared/cache"
	"courtside/shared/constant"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing() func(http.Handler) http.Handler
	RequestID() func(http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

func (a *appMiddleware) Tracing() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

			ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
			defer scope.End()

			scope.SetAttributes(map[string]any{
				"app.name":        a.config.App.Name,
				"http.path":       r.URL.Path,
				"http.method":     r.Method,
				"http.user_agent": r.Header.Get(constant.RequestHeaderUserAgent),
				"http.host":       r.Host,
				"http.source":     a.getClientIP(r),
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestID tags every request with an id, echoed back in the response so a
// client report can be matched against the logs.
func (a *appMiddleware) RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constant.RequestHeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(constant.RequestHeaderRequestID, requestID)

			ctx := context.WithValue(r.Context(), constant.ContextKeyRequestID, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
