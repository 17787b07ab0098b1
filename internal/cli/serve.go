package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"storefront/internal/config"
	"storefront/internal/handlers/httphandlers"
	"storefront/internal/models"
	"storefront/internal/ports"
	"storefront/internal/ports/adapters/cache"
	"storefront/internal/ports/adapters/remote"
	"storefront/internal/runner"
	"storefront/internal/service"
	"storefront/internal/view"
	"storefront/pkg/kafka"
	"storefront/pkg/logger"
	"storefront/pkg/pkgports/adapters/publisher"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront http server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// use OS signals for graceful shutdown
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

// newContactPublisher publishes to kafka when brokers are configured, otherwise only logs
func newContactPublisher(ctx context.Context, kafkaCfg kafka.Config, topic string) (ports.ContactPublisher, error) {
	if !kafkaCfg.Enabled() {
		logger.GetLoggerFromCtx(ctx).Warn(ctx, "no kafka brokers configured, contact messages will only be logged")
		return publisher.NewLogPublisher[models.ContactMessage](topic), nil
	}

	err := kafka.CreateTopicIfNotExists(kafkaCfg, topic, kafkaCfg.NumPartitions, kafkaCfg.ReplicationFactor)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka topic: %w", err)
	}
	return publisher.NewKafkaPublisher[models.ContactMessage](kafka.NewWriter(kafkaCfg, topic)), nil
}

func serve(ctx context.Context, cfg config.Config) error {
	storefrontCfg := cfg.Storefront

	locale, err := view.ParseLocale(storefrontCfg.Locale)
	if err != nil {
		return err
	}

	//region connections
	client, err := remote.NewClient(storefrontCfg.APIBaseURL, storefrontCfg.APITimeout())
	if err != nil {
		return err
	}

	contactPublisher, err := newContactPublisher(ctx, cfg.Kafka, storefrontCfg.ContactTopic)
	if err != nil {
		return err
	}
	//endregion

	//region service
	sponsorService := service.NewSponsorService(
		client,
		cache.NewSponsorCacheAdapterInMemoryLRU(storefrontCfg.SponsorCacheCapacity, storefrontCfg.SponsorCacheTTL()),
		cache.NewSponsorDirectoryCacheAdapterInMemory(storefrontCfg.SponsorCacheTTL()),
	)
	contactService := service.NewContactService(contactPublisher)
	faqService, err := service.NewFAQService(storefrontCfg.FAQPath)
	if err != nil {
		return err
	}
	//endregion

	deps := httphandlers.Dependencies{
		Orders:   client,
		Sponsors: sponsorService,
		Contact:  contactService,
		FAQ:      faqService,
		Locale:   locale,
	}
	if storefrontCfg.ProxyAPI {
		deps.APIProxy = httphandlers.NewAPIProxy(client.BaseURL())
		logger.GetLoggerFromCtx(ctx).Info(ctx, "proxying /api/ to remote api", zap.String("target", storefrontCfg.APIBaseURL))
	}

	handler, err := httphandlers.NewStorefrontHandler(deps)
	if err != nil {
		return err
	}

	// create and let run http server
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", storefrontCfg.HTTPPort),
		Handler:           handler.Routes(logger.GetLoggerFromCtx(ctx)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// a cold sponsor cache is fine, the first request fills it
	go func() {
		if warmErr := sponsorService.WarmUp(ctx); warmErr != nil {
			logger.GetLoggerFromCtx(ctx).Warn(ctx, "failed to warm up sponsor cache", zap.Error(warmErr))
		}
	}()

	serveErr := runner.ServeUntilDone(ctx, "storefront", httpServer)

	var shutdownWg sync.WaitGroup
	shutdownWg.Add(2)

	// shutdowns don't include wg itself, so they're wrapped in unnamed goroutines
	go func() {
		defer shutdownWg.Done()
		runner.ShutdownHTTP(ctx, httpServer)
		logger.GetLoggerFromCtx(ctx).Info(ctx, "server stopped")
	}()
	go func() {
		defer shutdownWg.Done()
		if closeErr := contactPublisher.Close(); closeErr != nil {
			logger.GetLoggerFromCtx(ctx).Error(ctx, "error while closing contact publisher", zap.Error(closeErr))
		}
		logger.GetLoggerFromCtx(ctx).Info(ctx, "contact publisher stopped")
	}()

	shutdownWg.Wait()
	return serveErr
}
