package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"storefront/internal/customerrors"
	"storefront/internal/models"
	"storefront/internal/validators"
	"storefront/pkg/logger"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// maxErrorBodyBytes caps how much of a failed response is kept for the logs
const maxErrorBodyBytes = 512

// Client reads orders and sponsors from the remote storefront API.
//
// It implements ports.OrderSource and ports.SponsorSource
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient parses baseURL (e.g. http://localhost:5000) and creates a client with given per-request timeout
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse api base url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("api base url must be http(s), got %q", baseURL)
	}
	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL returns the parsed API root, used by the dev proxy
func (c *Client) BaseURL() *url.URL {
	copied := *c.baseURL
	return &copied
}

// GetOrder fetches GET /api/orders/{orderID}
func (c *Client) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := c.getJSON(ctx, "/api/orders/"+url.PathEscape(orderID), &order)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return models.Order{}, fmt.Errorf("order %q: %w: %w", orderID, customerrors.ErrOrderNotFound, err)
		}
		return models.Order{}, errors.Wrapf(err, "get order %q", orderID)
	}

	if err = validators.ValidateOrder(order); err != nil {
		return models.Order{}, fmt.Errorf("order %q: %w: %w", orderID, customerrors.ErrMalformedResponse, err)
	}

	logger.GetOrCreateLoggerFromCtx(ctx).Debug(ctx, "read order from remote api", zap.String("order_id", orderID))
	return order, nil
}

// ListSponsors fetches GET /api/sponsors
func (c *Client) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	var sponsors []models.Sponsor
	if err := c.getJSON(ctx, "/api/sponsors", &sponsors); err != nil {
		return nil, errors.Wrap(err, "list sponsors")
	}

	if err := validators.ValidateSponsors(sponsors); err != nil {
		return nil, fmt.Errorf("sponsors: %w: %w", customerrors.ErrMalformedResponse, err)
	}
	return sponsors, nil
}

// errNotFound marks a 404 so callers can map it to their own not-found sentinel
var errNotFound = errors.New("remote resource not found")

// getJSON performs one GET and decodes a 2xx JSON body into dst
func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	// plain concatenation: path is already escaped and must not be cleaned (an ID of ".." stays an ID)
	endpoint := c.baseURL.String() + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if requestID := logger.RequestIDFromCtx(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		statusErr := fmt.Errorf("%w: %d, body: %q", customerrors.ErrUnexpectedStatus, resp.StatusCode, string(body))
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %w", errNotFound, statusErr)
		}
		return statusErr
	}

	dec := json.NewDecoder(resp.Body)
	if err = dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", customerrors.ErrMalformedResponse, err)
	}
	// the body must hold exactly one JSON value, trailing whitespace aside
	if err = dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON value", customerrors.ErrMalformedResponse)
	}

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
