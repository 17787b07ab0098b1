package cli

import (
	"bytes"
	"context"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"storefront/internal/config"
	"storefront/internal/devapi"
	"storefront/pkg/logger"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		orderLocale = ""
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func startDevAPI(t *testing.T) {
	t.Helper()
	server := devapi.NewServer(devapi.GenerateOrders(3, time.Now()), devapi.DefaultSponsors(), nil, 0)
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	t.Setenv("STOREFRONT_API_BASE_URL", srv.URL)
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3")
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "storefront 1.2.3\n", out)
}

func TestOrder_Receipt(t *testing.T) {
	startDevAPI(t)

	out, err := runCLI(t, "order", devapi.ExampleOrderID)
	require.NoError(t, err)
	assert.Contains(t, out, "Statut: Expédiée")
	assert.Contains(t, out, "2 x Shirt @ 24.99 € = 49.98 €")
	assert.Contains(t, out, "TOTAL: 49.98 €")
	assert.Contains(t, out, "15 janvier 2024")
}

func TestOrder_EnglishReceipt(t *testing.T) {
	startDevAPI(t)

	out, err := runCLI(t, "order", devapi.ExampleOrderID, "--locale", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "January 15, 2024")
	assert.Contains(t, out, "Back to home: /")
}

func TestOrder_Failures(t *testing.T) {
	startDevAPI(t)

	out, err := runCLI(t, "order", "unknown-order")
	assert.ErrorIs(t, err, errOrderNotShown)
	assert.Contains(t, out, "Impossible de charger les détails de la commande")

	out, err = runCLI(t, "order")
	assert.ErrorIs(t, err, errOrderNotShown)
	assert.Contains(t, out, "missing order identifier")
}

func TestOrder_BadLocale(t *testing.T) {
	startDevAPI(t)

	_, err := runCLI(t, "order", devapi.ExampleOrderID, "--locale", "ja")
	assert.Error(t, err)
}

func TestServe_PortInUse(t *testing.T) {
	server := devapi.NewServer(devapi.GenerateOrders(1, time.Now()), devapi.DefaultSponsors(), nil, 0)
	api := httptest.NewServer(server.Handler())
	t.Cleanup(api.Close)

	listener, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	testCfg := config.Config{Storefront: config.StorefrontConfig{
		HTTPPort:               listener.Addr().(*net.TCPAddr).Port,
		APIBaseURL:             api.URL,
		APITimeoutSeconds:      1,
		Locale:                 "fr",
		SponsorCacheCapacity:   4,
		SponsorCacheTTLSeconds: 60,
		ContactTopic:           "storefront.contact",
	}}

	ctx, cancel := context.WithTimeout(logger.WithLogger(context.Background(), logger.FromZap(zap.NewNop())), 5*time.Second)
	defer cancel()

	err = serve(ctx, testCfg)
	require.Error(t, err)
	// returned because of the bind failure, not the timeout
	assert.NoError(t, ctx.Err())
}
