package runner

import (
	"context"
	"fmt"
	"net/http"
	"storefront/pkg/logger"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// shutdownTimeout is how long in-flight requests get on shutdown
const shutdownTimeout = 10 * time.Second

// RunHTTP calls ListenAndServe on given srv and blocks, logs the beginning and the failure if any
//
// name tells servers apart in logs, e.g. "storefront" or "devapi".
// Returns nil after a shutdown, the serve error (e.g. port already in use) otherwise
func RunHTTP(ctx context.Context, name string, srv *http.Server) error {
	logger.GetLoggerFromCtx(ctx).Info(ctx, fmt.Sprintf("%s listening at %s", name, srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.GetLoggerFromCtx(ctx).Error(ctx, "failed to serve http", zap.String("server", name), zap.Error(err))
		return errors.Wrapf(err, "serve %s", name)
	}
	return nil
}

// ServeUntilDone runs srv in background and waits for ctx to be done or the server to fail
//
// the serve error is returned as is, the caller still shuts srv down afterwards
func ServeUntilDone(ctx context.Context, name string, srv *http.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- RunHTTP(ctx, name, srv)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-serveErr:
		return err
	}
}

// ShutdownHTTP stops httpServer with a 10 seconds timeout, logs on error
func ShutdownHTTP(ctx context.Context, httpServer *http.Server) {
	cancelCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := httpServer.Shutdown(cancelCtx)
	if err != nil {
		logger.GetLoggerFromCtx(ctx).Warn(ctx, "failed to shutdown http server", zap.Error(err))
	}
}
