package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"storefront/internal/config"
	"storefront/internal/devapi"
	"storefront/internal/handlers/httphandlers"
	"storefront/internal/runner"
	"storefront/pkg/kafka"
	"storefront/pkg/logger"
	"sync"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	devAPIOrders  int
	devAPILatency time.Duration
)

var devAPICmd = &cobra.Command{
	Use:   "devapi",
	Short: "Run an in-memory stand-in of the remote shop API",
	Long: `Serves GET /api/orders/{id}, POST /api/orders and GET /api/sponsors from generated
fixtures (order "abc123" is always there). With kafka brokers configured it also
consumes the contact topic and lists messages at GET /api/contact-messages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serveDevAPI(ctx, cfg)
	},
}

func init() {
	devAPICmd.Flags().IntVar(&devAPIOrders, "orders", 50, "amount of generated orders besides abc123")
	devAPICmd.Flags().DurationVar(&devAPILatency, "latency", 0, "delay added to every read, e.g. 500ms")
}

func serveDevAPI(ctx context.Context, cfg config.Config) error {
	// the remote API sends amounts as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	var inbox *devapi.Inbox
	if cfg.Kafka.Enabled() {
		topic := cfg.Storefront.ContactTopic
		if err := kafka.CreateTopicIfNotExists(cfg.Kafka, topic, cfg.Kafka.NumPartitions, cfg.Kafka.ReplicationFactor); err != nil {
			return fmt.Errorf("failed to create kafka topic: %w", err)
		}
		inbox = devapi.NewInbox(kafka.NewReader(cfg.Kafka, topic, cfg.Storefront.DevAPIContactGroupID), devapi.DefaultInboxCapacity)
		go inbox.Run(ctx)
	}

	server := devapi.NewServer(devapi.GenerateOrders(devAPIOrders, time.Now()), devapi.DefaultSponsors(), inbox, devAPILatency)
	logger.GetLoggerFromCtx(ctx).Info(ctx, "generated fixtures", zap.Int("orders", server.OrdersAmount()))

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Storefront.DevAPIPort),
		Handler:           httphandlers.LoggingMiddleware(logger.GetLoggerFromCtx(ctx))(server.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := runner.ServeUntilDone(ctx, "devapi", httpServer)

	var shutdownWg sync.WaitGroup
	shutdownWg.Add(1)
	go func() {
		defer shutdownWg.Done()
		runner.ShutdownHTTP(ctx, httpServer)
		logger.GetLoggerFromCtx(ctx).Info(ctx, "devapi stopped")
	}()
	if inbox != nil {
		shutdownWg.Add(1)
		go func() {
			defer shutdownWg.Done()
			if err := inbox.Close(); err != nil {
				logger.GetLoggerFromCtx(ctx).Error(ctx, "error while closing kafka consumer", zap.Error(err))
			}
			logger.GetLoggerFromCtx(ctx).Info(ctx, "kafka consumer stopped")
		}()
	}

	shutdownWg.Wait()
	return serveErr
}
