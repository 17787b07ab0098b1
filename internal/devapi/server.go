package devapi

import (
	"encoding/json"
	"net/http"
	"storefront/internal/models"
	"storefront/internal/validators"
	"storefront/pkg/logger"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxOrderBodyBytes caps POST /api/orders bodies
const maxOrderBodyBytes = 1 << 20

type errorResponse struct {
	Message string `json:"message"`
}

// Server is an in-memory stand-in for the remote storefront API
type Server struct {
	mu       sync.RWMutex
	orders   map[string]models.Order
	sponsors []models.Sponsor
	inbox    *Inbox

	// latency is added to every read, handy to see the loading state
	latency time.Duration
	now     func() time.Time
}

// NewServer creates a server holding given orders and sponsors, inbox may be nil
func NewServer(orders []models.Order, sponsors []models.Sponsor, inbox *Inbox, latency time.Duration) *Server {
	byID := make(map[string]models.Order, len(orders))
	for _, order := range orders {
		byID[order.ID] = order
	}
	return &Server{
		orders:   byID,
		sponsors: sponsors,
		inbox:    inbox,
		latency:  latency,
		now:      time.Now,
	}
}

// Handler exposes the remote API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/orders/{orderId}", s.GetOrder)
	mux.HandleFunc("POST /api/orders", s.CreateOrder)
	mux.HandleFunc("GET /api/sponsors", s.ListSponsors)
	if s.inbox != nil {
		mux.HandleFunc("GET /api/contact-messages", s.ListContactMessages)
	}
	return mux
}

// OrdersAmount returns how many orders are stored
func (s *Server) OrdersAmount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func (s *Server) wait(r *http.Request) bool {
	if s.latency <= 0 {
		return true
	}
	select {
	case <-time.After(s.latency):
		return true
	case <-r.Context().Done():
		return false
	}
}

// GetOrder answers GET /api/orders/{orderId}
func (s *Server) GetOrder(w http.ResponseWriter, r *http.Request) {
	if !s.wait(r) {
		return
	}
	orderID := r.PathValue("orderId")

	s.mu.RLock()
	order, ok := s.orders[orderID]
	s.mu.RUnlock()

	if !ok {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Message: "Commande introuvable"})
		return
	}
	writeJSON(w, r, http.StatusOK, order)
}

// CreateOrder answers POST /api/orders, it stores a valid order and assigns an ID if missing
func (s *Server) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var order models.Order
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOrderBodyBytes)).Decode(&order); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Message: "Bad request: " + err.Error()})
		return
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.PlacedAt.IsZero() {
		order.PlacedAt = s.now().UTC().Truncate(time.Second)
	}
	if err := validators.ValidateOrder(order); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	s.mu.Lock()
	s.orders[order.ID] = order
	s.mu.Unlock()

	logger.GetOrCreateLoggerFromCtx(ctx).Info(ctx, "created order", zap.String("order_id", order.ID))
	writeJSON(w, r, http.StatusCreated, order)
}

// ListSponsors answers GET /api/sponsors
func (s *Server) ListSponsors(w http.ResponseWriter, r *http.Request) {
	if !s.wait(r) {
		return
	}
	s.mu.RLock()
	sponsors := append([]models.Sponsor{}, s.sponsors...)
	s.mu.RUnlock()

	writeJSON(w, r, http.StatusOK, sponsors)
}

// ListContactMessages answers GET /api/contact-messages with what the inbox consumed
func (s *Server) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.inbox.Messages())
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctx := r.Context()
		logger.GetOrCreateLoggerFromCtx(ctx).Warn(ctx, "error writing response", zap.Error(err))
	}
}
