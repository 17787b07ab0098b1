package httphandlers

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// NewAPIProxy forwards /api/* to the remote API, for local development only
func NewAPIProxy(target *url.URL) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(target)

	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
		if requestID := logger.RequestIDFromCtx(r.Context()); requestID != "" {
			r.Header.Set(RequestIDHeader, requestID)
		}
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		ctx := r.Context()
		logger.GetOrCreateLoggerFromCtx(ctx).Error(ctx, "error proxying api request",
			zap.String("path", r.URL.Path), zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
	}

	return proxy
}
