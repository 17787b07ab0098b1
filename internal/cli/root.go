package cli

import (
	"context"
	"fmt"
	"storefront/internal/config"
	"storefront/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
	cfg     config.Config
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Server-rendered storefront over the remote shop API",
	Long: `Storefront renders the customer-facing pages of the shop (order confirmation,
sponsors, FAQ, contact form) on top of the remote order and sponsor API.

Configuration comes from STOREFRONT_* and KAFKA_* env vars, or from a yaml file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.TryRead(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx, err := newLoggerContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		cmd.SetContext(ctx)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "storefront %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "yaml config file path, env vars only if empty")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "human-readable debug logs")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(devAPICmd)
	rootCmd.AddCommand(versionCmd)
}

// newLoggerContext puts a production logger into ctx, or a development one with --debug
func newLoggerContext(ctx context.Context) (context.Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !debug {
		return logger.New(ctx)
	}
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		return ctx, err
	}
	return logger.WithLogger(ctx, logger.FromZap(zapLogger)), nil
}

func SetVersion(v string) {
	version = v
}

func Execute() error {
	return rootCmd.Execute()
}

func Root() *cobra.Command {
	return rootCmd
}
