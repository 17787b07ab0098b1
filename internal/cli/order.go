package cli

import (
	"context"
	"errors"
	"fmt"
	"storefront/internal/ports/adapters/remote"
	"storefront/internal/view"

	"github.com/spf13/cobra"
)

// errOrderNotShown makes the process exit non-zero after a failed view was printed
var errOrderNotShown = errors.New("order could not be shown")

var orderLocale string

var orderCmd = &cobra.Command{
	Use:   "order [order-id]",
	Short: "Print the order detail view as a text receipt",
	Long: `Loads one order from the remote API and prints the same document the order
page renders. Without an identifier the view fails without calling the API.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		locale := cfg.Storefront.Locale
		if orderLocale != "" {
			locale = orderLocale
		}
		tag, err := view.ParseLocale(locale)
		if err != nil {
			return err
		}

		client, err := remote.NewClient(cfg.Storefront.APIBaseURL, cfg.Storefront.APITimeout())
		if err != nil {
			return err
		}

		var orderID *string
		if len(args) == 1 {
			orderID = &args[0]
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Storefront.APITimeout())
		defer cancel()

		state := view.Load(ctx, client, orderID)
		fmt.Fprintln(cmd.OutOrStdout(), view.FormatText(view.Project(state, tag)))

		if state.Status != view.StatusLoaded {
			return errOrderNotShown
		}
		return nil
	},
}

func init() {
	orderCmd.Flags().StringVar(&orderLocale, "locale", "", "locale of the receipt (fr, en), config locale if empty")
}
