package view

import (
	"storefront/internal/models"
)

// Status is the three-way classification driving what gets rendered
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailureMessage is the only message a user sees when a fetch fails, whatever the cause
const FailureMessage = "Impossible de charger les détails de la commande"

// State is a snapshot of an order detail view
//
// Order is set only when Loaded, Message only when Failed
type State struct {
	Status  Status
	OrderID string
	Order   models.Order
	Message string
	// Cause is kept for logs and status code mapping, it's never rendered
	Cause error
}

func loadingState(orderID string) State {
	return State{Status: StatusLoading, OrderID: orderID}
}

func loadedState(order models.Order) State {
	return State{Status: StatusLoaded, OrderID: order.ID, Order: order}
}

func failedState(orderID, message string, cause error) State {
	return State{Status: StatusFailed, OrderID: orderID, Message: message, Cause: cause}
}
