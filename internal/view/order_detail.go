package view

import (
	"context"
	"storefront/internal/customerrors"
	"storefront/internal/ports"
	"storefront/pkg/logger"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// OrderDetail loads one order and keeps its Loading/Loaded/Failed state
//
// Every Start or Navigate begins a new generation: the previous fetch is cancelled and,
// if it still completes, its result is discarded. The state always reflects the latest
// request only.
type OrderDetail struct {
	source    ports.OrderSource
	initialID *string

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
	// done is open while state is Loading and closed once the current generation settles
	done chan struct{}
}

// NewOrderDetail creates a view for given identifier, nil means no identifier
//
// Nothing is fetched until Start
func NewOrderDetail(source ports.OrderSource, orderID *string) *OrderDetail {
	return &OrderDetail{
		source:    source,
		initialID: orderID,
		state:     loadingState(""),
		done:      make(chan struct{}),
	}
}

// Start loads the identifier the view was created with
func (d *OrderDetail) Start(ctx context.Context) {
	d.Navigate(ctx, d.initialID)
}

// Navigate resets the view to Loading and loads the new identifier
//
// An absent or blank identifier fails right away with customerrors.ErrMissingOrderID, no request is made
func (d *OrderDetail) Navigate(ctx context.Context, orderID *string) {
	id, ok := normalizeOrderID(orderID)

	d.mu.Lock()
	d.generation++
	generation := d.generation
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.state.Status != StatusLoading {
		d.done = make(chan struct{})
	}

	if !ok {
		d.state = failedState("", customerrors.ErrMissingOrderID.Error(), customerrors.ErrMissingOrderID)
		close(d.done)
		d.mu.Unlock()

		logger.GetOrCreateLoggerFromCtx(ctx).Warn(ctx, "order view opened without identifier")
		return
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.state = loadingState(id)
	d.mu.Unlock()

	go d.fetch(fetchCtx, generation, id)
}

// State returns a snapshot of the current state
func (d *OrderDetail) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Await blocks until the current generation settles, returns ctx.Err() with the Loading state otherwise
func (d *OrderDetail) Await(ctx context.Context) (State, error) {
	for {
		d.mu.Lock()
		if d.state.Status != StatusLoading {
			state := d.state
			d.mu.Unlock()
			return state, nil
		}
		done := d.done
		d.mu.Unlock()

		select {
		case <-done:
			// re-check: a Navigate may have started a new generation in between
		case <-ctx.Done():
			return d.State(), ctx.Err()
		}
	}
}

// Close cancels the in-flight fetch, whatever completes afterwards is dropped
func (d *OrderDetail) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *OrderDetail) fetch(ctx context.Context, generation uint64, orderID string) {
	order, err := d.source.GetOrder(ctx, orderID)

	next := loadedState(order)
	if err != nil {
		next = failedState(orderID, FailureMessage, err)
	}

	if !d.settle(generation, next) {
		logger.GetOrCreateLoggerFromCtx(ctx).Debug(ctx, "discarding stale order response",
			zap.String("order_id", orderID),
			zap.Uint64("generation", generation),
		)
		return
	}

	log := logger.GetOrCreateLoggerFromCtx(ctx)
	if err != nil {
		log.Error(ctx, "failed to load order", zap.String("order_id", orderID), zap.Error(err))
		return
	}

	log.Info(ctx, "order loaded", zap.String("order_id", orderID), zap.String("status", string(order.Status)))
	if sum := order.ItemsSum(); !sum.Equal(order.TotalAmount) {
		log.Debug(ctx, "order total differs from sum of rows",
			zap.String("order_id", orderID),
			zap.String("total", order.TotalAmount.String()),
			zap.String("rows_sum", sum.String()),
		)
	}
}

// settle stores next if generation is still current, reports whether it did
func (d *OrderDetail) settle(generation uint64, next State) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if generation != d.generation {
		return false
	}
	d.state = next
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	close(d.done)
	return true
}

// Load is a one-shot helper: create, start and wait for the view
//
// If ctx ends first the result is Failed with the context error as cause
func Load(ctx context.Context, source ports.OrderSource, orderID *string) State {
	detail := NewOrderDetail(source, orderID)
	detail.Start(ctx)

	state, err := detail.Await(ctx)
	if err != nil {
		detail.Close()
		id, _ := normalizeOrderID(orderID)
		return failedState(id, FailureMessage, err)
	}
	return state
}

func normalizeOrderID(orderID *string) (string, bool) {
	if orderID == nil {
		return "", false
	}
	id := strings.TrimSpace(*orderID)
	return id, id != ""
}
