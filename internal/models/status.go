package models

// OrderStatus is the closed set of statuses the remote API sends
type OrderStatus string

const (
	StatusPending    OrderStatus = "en attente"
	StatusConfirmed  OrderStatus = "confirmee"
	StatusInProgress OrderStatus = "en cours"
	StatusShipped    OrderStatus = "expediee"
	StatusDelivered  OrderStatus = "livree"
	StatusCancelled  OrderStatus = "annulee"
)

// UnknownStatusLabel is shown for any value outside the enum
const UnknownStatusLabel = "Inconnu"

var statusLabels = map[OrderStatus]string{
	StatusPending:    "En attente",
	StatusConfirmed:  "Confirmée",
	StatusInProgress: "En cours",
	StatusShipped:    "Expédiée",
	StatusDelivered:  "Livrée",
	StatusCancelled:  "Annulée",
}

// Statuses lists the known statuses in lifecycle order
func Statuses() []OrderStatus {
	return []OrderStatus{
		StatusPending, StatusConfirmed, StatusInProgress,
		StatusShipped, StatusDelivered, StatusCancelled,
	}
}

// Known reports whether s is one of the six statuses
func (s OrderStatus) Known() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the display string of the status
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return UnknownStatusLabel
}

// Slug is a css-friendly key, "unknown" outside the enum
func (s OrderStatus) Slug() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusInProgress:
		return "in-progress"
	case StatusShipped:
		return "shipped"
	case StatusDelivered:
		return "delivered"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
