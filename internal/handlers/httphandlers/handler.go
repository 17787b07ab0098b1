package httphandlers

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"storefront/internal/customerrors"
	"storefront/internal/models"
	"storefront/internal/ports"
	"storefront/internal/view"
	"storefront/pkg/logger"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// maxContactFormBytes caps the contact form body
const maxContactFormBytes = 64 << 10

const contactUnavailableMessage = "Votre message n'a pas pu être envoyé, veuillez réessayer plus tard."

const sponsorsUnavailableMessage = "Impossible de charger les partenaires pour le moment."

var pageNames = []string{"home", "order", "sponsors", "sponsor", "faq", "contact", "not_found"}

// SponsorDirectory is what the sponsor pages need, implemented by service.SponsorService
type SponsorDirectory interface {
	ListSponsors(ctx context.Context) ([]models.Sponsor, error)
	GetSponsor(ctx context.Context, sponsorID string) (models.Sponsor, error)
}

// ContactSubmitter is implemented by service.ContactService
type ContactSubmitter interface {
	Submit(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error)
}

// FAQProvider is implemented by service.FAQService
type FAQProvider interface {
	Entries() []models.FAQEntry
}

// Dependencies are the services behind the storefront pages
type Dependencies struct {
	Orders   ports.OrderSource
	Sponsors SponsorDirectory
	Contact  ContactSubmitter
	FAQ      FAQProvider
	// Locale is used when Accept-Language matches no supported locale
	Locale language.Tag
	// APIProxy serves /api/ when set, see NewAPIProxy
	APIProxy http.Handler
}

// StorefrontHandler renders the storefront pages over the remote API
type StorefrontHandler struct {
	deps  Dependencies
	pages map[string]*template.Template
}

// NewStorefrontHandler parses the embedded templates, fails if any of them is broken
func NewStorefrontHandler(deps Dependencies) (*StorefrontHandler, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		page, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s template", name)
		}
		pages[name] = page
	}

	if deps.Locale == language.Und {
		deps.Locale = view.SupportedLocales[0]
	}

	return &StorefrontHandler{deps: deps, pages: pages}, nil
}

// Routes registers every route and wraps them with the middlewares
func (h *StorefrontHandler) Routes(baseLogger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /orders", h.OrderWithoutID)
	mux.HandleFunc("GET /orders/{orderId}", h.Order)
	mux.HandleFunc("GET /sponsors", h.Sponsors)
	mux.HandleFunc("GET /sponsors/{sponsorId}", h.Sponsor)
	mux.HandleFunc("GET /faq", h.FAQ)
	mux.HandleFunc("GET /contact", h.ContactForm)
	mux.HandleFunc("POST /contact", h.SubmitContact)
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.HandleFunc("GET /health", h.Health)
	if h.deps.APIProxy != nil {
		mux.Handle("/api/", h.deps.APIProxy)
	}
	mux.HandleFunc("/", h.NotFound)

	return LoggingMiddleware(baseLogger)(RecoveryMiddleware(mux))
}

type layoutData struct {
	Title   string
	Lang    string
	Content any
}

func (h *StorefrontHandler) locale(r *http.Request) language.Tag {
	return view.NegotiateLocale(r.Header.Get("Accept-Language"), h.deps.Locale)
}

// render executes a page into a buffer first, so a template error still gives a clean 500
func (h *StorefrontHandler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, content any) {
	ctx := r.Context()

	var buf bytes.Buffer
	err := h.pages[name].ExecuteTemplate(&buf, "layout.html", layoutData{
		Title:   title,
		Lang:    h.locale(r).String(),
		Content: content,
	})
	if err != nil {
		logger.GetOrCreateLoggerFromCtx(ctx).Error(ctx, "error rendering page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err = buf.WriteTo(w); err != nil {
		logger.GetOrCreateLoggerFromCtx(ctx).Warn(ctx, "error writing response", zap.Error(err))
	}
}

// Home is the landing page
func (h *StorefrontHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home", "Accueil", nil)
}

// OrderWithoutID redirects the lookup form (?id=) to the order page,
// with no identifier it renders the failed order view
func (h *StorefrontHandler) OrderWithoutID(w http.ResponseWriter, r *http.Request) {
	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		http.Redirect(w, r, "/orders/"+url.PathEscape(id), http.StatusSeeOther)
		return
	}
	h.renderOrder(w, r, nil)
}

// Order renders the order detail view for the path identifier
func (h *StorefrontHandler) Order(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderId")
	h.renderOrder(w, r, &orderID)
}

func (h *StorefrontHandler) renderOrder(w http.ResponseWriter, r *http.Request, orderID *string) {
	state := view.Load(r.Context(), h.deps.Orders, orderID)
	page := view.Project(state, h.locale(r))
	h.render(w, r, orderStatusCode(state), "order", page.Labels.Title, page)
}

// orderStatusCode maps a settled view to a response code
func orderStatusCode(state view.State) int {
	switch {
	case state.Status == view.StatusLoaded:
		return http.StatusOK
	case errors.Is(state.Cause, customerrors.ErrMissingOrderID):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

type sponsorsPage struct {
	Sponsors []models.Sponsor
	Error    string
}

// Sponsors renders the sponsor directory
func (h *StorefrontHandler) Sponsors(w http.ResponseWriter, r *http.Request) {
	sponsors, err := h.deps.Sponsors.ListSponsors(r.Context())
	if err != nil {
		h.render(w, r, http.StatusBadGateway, "sponsors", "Partenaires", sponsorsPage{Error: sponsorsUnavailableMessage})
		return
	}
	h.render(w, r, http.StatusOK, "sponsors", "Partenaires", sponsorsPage{Sponsors: sponsors})
}

// Sponsor renders one sponsor, 404 page if unknown
func (h *StorefrontHandler) Sponsor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sponsorID := r.PathValue("sponsorId")

	sponsor, err := h.deps.Sponsors.GetSponsor(ctx, sponsorID)
	if err != nil {
		if errors.Is(err, customerrors.ErrSponsorNotFound) {
			h.NotFound(w, r)
			return
		}
		logger.GetOrCreateLoggerFromCtx(ctx).Error(ctx, "error getting sponsor", zap.String("sponsor_id", sponsorID), zap.Error(err))
		h.render(w, r, http.StatusBadGateway, "sponsors", "Partenaires", sponsorsPage{Error: sponsorsUnavailableMessage})
		return
	}
	h.render(w, r, http.StatusOK, "sponsor", sponsor.Name, sponsor)
}

// FAQ renders the FAQ
func (h *StorefrontHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "faq", "FAQ", h.deps.FAQ.Entries())
}

type contactPage struct {
	Form  models.ContactMessage
	Error string
	Sent  bool
}

// ContactForm renders an empty contact form
func (h *StorefrontHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "contact", "Contact", contactPage{})
}

// SubmitContact publishes the form, re-renders it with the error on invalid input
func (h *StorefrontHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxContactFormBytes)
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "contact", "Contact", contactPage{Error: "Formulaire invalide."})
		return
	}

	form := models.ContactMessage{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Subject: r.PostForm.Get("subject"),
		Message: r.PostForm.Get("message"),
	}

	_, err := h.deps.Contact.Submit(ctx, form)
	switch {
	case err == nil:
		h.render(w, r, http.StatusOK, "contact", "Contact", contactPage{Sent: true})
	case errors.Is(err, customerrors.ErrInvalidContact):
		h.render(w, r, http.StatusBadRequest, "contact", "Contact", contactPage{Form: form, Error: contactErrorMessage(err)})
	default:
		h.render(w, r, http.StatusServiceUnavailable, "contact", "Contact", contactPage{Form: form, Error: contactUnavailableMessage})
	}
}

// contactErrorMessage drops the sentinel prefix, the rest is the validator's message
func contactErrorMessage(err error) string {
	return strings.TrimPrefix(err.Error(), customerrors.ErrInvalidContact.Error()+": ")
}

// Health reports that the process is up
func (h *StorefrontHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// NotFound renders the 404 page
func (h *StorefrontHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "not_found", "Page introuvable", nil)
}
