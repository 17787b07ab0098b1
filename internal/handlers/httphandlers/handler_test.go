package httphandlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"storefront/internal/customerrors"
	"storefront/internal/models"
	"storefront/internal/view"
	"storefront/pkg/logger"
)

type stubOrders struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubOrders) GetOrder(_ context.Context, orderID string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return models.Order{}, s.err
	}
	return models.Order{
		ID:          orderID,
		TotalAmount: decimal.RequireFromString("49.98"),
		Items: []models.LineItem{
			{Product: models.ProductRef{ID: "p1", Name: "Shirt"}, Quantity: 2, UnitPrice: decimal.RequireFromString("24.99")},
		},
		Status:   models.StatusShipped,
		PlacedAt: time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
	}, nil
}

type stubSponsors struct {
	err error
}

func (s *stubSponsors) ListSponsors(_ context.Context) ([]models.Sponsor, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Sponsor{{ID: "s1", Name: "Acme"}, {ID: "s2", Name: "Globex"}}, nil
}

func (s *stubSponsors) GetSponsor(_ context.Context, sponsorID string) (models.Sponsor, error) {
	if s.err != nil {
		return models.Sponsor{}, s.err
	}
	if sponsorID != "s1" {
		return models.Sponsor{}, customerrors.ErrSponsorNotFound
	}
	return models.Sponsor{ID: "s1", Name: "Acme", WebsiteURL: "https://acme.example"}, nil
}

type stubContact struct {
	submitted []models.ContactMessage
	err       error
}

func (s *stubContact) Submit(_ context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	if s.err != nil {
		return models.ContactMessage{}, s.err
	}
	s.submitted = append(s.submitted, msg)
	return msg, nil
}

type stubFAQ struct {
	panics bool
}

func (s stubFAQ) Entries() []models.FAQEntry {
	if s.panics {
		panic("faq exploded")
	}
	return []models.FAQEntry{{Question: "Comment suivre ma commande ?", Answer: "Depuis la page commande."}}
}

type testEnv struct {
	orders   *stubOrders
	sponsors *stubSponsors
	contact  *stubContact
	faq      stubFAQ
	proxy    http.Handler
}

func newTestEnv() *testEnv {
	return &testEnv{
		orders:   &stubOrders{},
		sponsors: &stubSponsors{},
		contact:  &stubContact{},
	}
}

func (e *testEnv) handler(t *testing.T) http.Handler {
	t.Helper()
	h, err := NewStorefrontHandler(Dependencies{
		Orders:   e.orders,
		Sponsors: e.sponsors,
		Contact:  e.contact,
		FAQ:      e.faq,
		Locale:   language.French,
		APIProxy: e.proxy,
	})
	require.NoError(t, err)
	return h.Routes(logger.FromZap(zap.NewNop()))
}

func do(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, handler, httptest.NewRequest(http.MethodGet, target, nil))
}

func TestHome(t *testing.T) {
	rec := get(t, newTestEnv().handler(t), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bienvenue")
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDIsKept(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")

	rec := do(t, newTestEnv().handler(t), req)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestOrder_Loaded(t *testing.T) {
	env := newTestEnv()
	rec := get(t, env.handler(t), "/orders/abc123")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<td class="total">49.98 €</td>`)
	assert.Contains(t, body, `<td class="subtotal">49.98 €</td>`)
	assert.Contains(t, body, "Expédiée")
	assert.Contains(t, body, "15 janvier 2024")
	assert.Contains(t, body, `href="/products/p1"`)
	assert.Contains(t, body, `href="/"`)
	assert.Equal(t, 1, env.orders.calls)
}

func TestOrder_English(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders/abc123", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	rec := do(t, newTestEnv().handler(t), req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "January 15, 2024")
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
}

func TestOrder_MissingIdentifier(t *testing.T) {
	env := newTestEnv()
	rec := get(t, env.handler(t), "/orders")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing order identifier")
	assert.Equal(t, 0, env.orders.calls)
}

func TestOrder_LookupFormRedirects(t *testing.T) {
	rec := get(t, newTestEnv().handler(t), "/orders?id=+abc+123+")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/orders/abc%20123", rec.Header().Get("Location"))
}

func TestOrder_Failures(t *testing.T) {
	causes := []error{
		errors.Wrap(customerrors.ErrOrderNotFound, "get order"),
		errors.Wrap(customerrors.ErrUnexpectedStatus, "get order"),
		errors.Wrap(customerrors.ErrMalformedResponse, "get order"),
		errors.New("connection refused"),
	}

	for _, cause := range causes {
		t.Run(cause.Error(), func(t *testing.T) {
			env := newTestEnv()
			env.orders.err = cause

			rec := get(t, env.handler(t), "/orders/abc123")
			assert.Equal(t, http.StatusBadGateway, rec.Code)
			assert.Contains(t, rec.Body.String(), view.FailureMessage)
			assert.NotContains(t, rec.Body.String(), cause.Error())
		})
	}
}

func TestSponsors(t *testing.T) {
	rec := get(t, newTestEnv().handler(t), "/sponsors")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme")
	assert.Contains(t, rec.Body.String(), `href="/sponsors/s2"`)

	env := newTestEnv()
	env.sponsors.err = errors.New("remote down")
	rec = get(t, env.handler(t), "/sponsors")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "remote down")
}

func TestSponsor(t *testing.T) {
	handler := newTestEnv().handler(t)

	rec := get(t, handler, "/sponsors/s1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://acme.example")

	rec = get(t, handler, "/sponsors/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestFAQ(t *testing.T) {
	rec := get(t, newTestEnv().handler(t), "/faq")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Comment suivre ma commande ?")
}

func postForm(t *testing.T, handler http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, handler, req)
}

func TestContact(t *testing.T) {
	env := newTestEnv()
	handler := env.handler(t)

	rec := get(t, handler, "/contact")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<form method="post" action="/contact">`)

	rec = postForm(t, handler, url.Values{"name": {"Jeanne"}, "email": {"jeanne@example.fr"}, "message": {"Bonjour"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert-success")
	require.Len(t, env.contact.submitted, 1)
	assert.Equal(t, "Jeanne", env.contact.submitted[0].Name)
}

func TestContact_Invalid(t *testing.T) {
	env := newTestEnv()
	env.contact.err = errors.Wrap(customerrors.ErrInvalidContact, "email has invalid format")

	rec := postForm(t, env.handler(t), url.Values{"name": {"Jeanne"}, "email": {"nope"}, "message": {"Bonjour"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert-error")
	assert.Contains(t, rec.Body.String(), `value="Jeanne"`)
}

func TestContact_PublishFails(t *testing.T) {
	env := newTestEnv()
	env.contact.err = errors.New("broker down")

	rec := postForm(t, env.handler(t), url.Values{"name": {"Jeanne"}, "email": {"jeanne@example.fr"}, "message": {"Bonjour"}})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "broker down")
}

func TestTheme(t *testing.T) {
	rec := get(t, newTestEnv().handler(t), "/static/theme.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rec.Body.String(), "--color-primary")
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestEnv().handler(t), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestNotFound(t *testing.T) {
	handler := newTestEnv().handler(t)

	for _, target := range []string{"/nope", "/api/orders/abc123", "/products/p1"} {
		rec := get(t, handler, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestRecovery(t *testing.T) {
	env := newTestEnv()
	env.faq = stubFAQ{panics: true}

	rec := get(t, env.handler(t), "/faq")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAPIProxy(t *testing.T) {
	var gotPath, gotRequestID string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(`{"_id":"abc123"}`))
	}))
	defer backend.Close()

	target, err := url.Parse(backend.URL)
	require.NoError(t, err)

	env := newTestEnv()
	env.proxy = NewAPIProxy(target)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/abc123", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	rec := do(t, env.handler(t), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"_id":"abc123"}`, rec.Body.String())
	assert.Equal(t, "/api/orders/abc123", gotPath)
	assert.Equal(t, "req-7", gotRequestID)
}

func TestAPIProxy_BackendDown(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	target, err := url.Parse(backend.URL)
	require.NoError(t, err)
	backend.Close()

	env := newTestEnv()
	env.proxy = NewAPIProxy(target)

	rec := get(t, env.handler(t), "/api/orders/abc123")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
