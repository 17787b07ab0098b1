package view

import (
	"net/url"
	"storefront/internal/models"
	"strings"

	"golang.org/x/text/language"
)

// HomePath is the safe landing page every loaded or failed document links back to
const HomePath = "/"

// Link is a navigation target with its caption
type Link struct {
	Href  string
	Label string
}

// Labels are the fixed captions of an order document in one locale
type Labels struct {
	Title         string
	Loading       string
	OrderNumber   string
	PlacedAt      string
	Status        string
	Purchaser     string
	Shipping      string
	PaymentMethod string
	Product       string
	Quantity      string
	UnitPrice     string
	Subtotal      string
	Total         string
	ViewProduct   string
	BackToHome    string
}

var labelsFR = Labels{
	Title:         "Détails de la commande",
	Loading:       "Chargement...",
	OrderNumber:   "Commande",
	PlacedAt:      "Passée le",
	Status:        "Statut",
	Purchaser:     "Client",
	Shipping:      "Adresse de livraison",
	PaymentMethod: "Paiement",
	Product:       "Produit",
	Quantity:      "Quantité",
	UnitPrice:     "Prix unitaire",
	Subtotal:      "Sous-total",
	Total:         "Total",
	ViewProduct:   "Voir le produit",
	BackToHome:    "Retour à l'accueil",
}

var labelsEN = Labels{
	Title:         "Order details",
	Loading:       "Loading...",
	OrderNumber:   "Order",
	PlacedAt:      "Placed on",
	Status:        "Status",
	Purchaser:     "Customer",
	Shipping:      "Shipping address",
	PaymentMethod: "Payment",
	Product:       "Product",
	Quantity:      "Quantity",
	UnitPrice:     "Unit price",
	Subtotal:      "Subtotal",
	Total:         "Total",
	ViewProduct:   "View product",
	BackToHome:    "Back to home",
}

// LabelsFor returns the captions for a locale, french unless the locale is english
func LabelsFor(locale language.Tag) Labels {
	if isEnglish(locale) {
		return labelsEN
	}
	return labelsFR
}

// Page is the read-only document projected from a State
//
// Loading pages carry no content. Failed pages carry Message and Home.
// Loaded pages carry Order and Home.
type Page struct {
	Status Status
	Lang   string
	Labels Labels
	// Message is the user-facing error text of a failed page
	Message string
	Home    *Link
	Order   *OrderDocument
}

// OrderDocument holds every formatted value of a loaded order
type OrderDocument struct {
	ID            string
	Number        string
	PlacedAt      string
	StatusLabel   string
	StatusSlug    string
	Purchaser     string
	Email         string
	Address       []string
	PaymentMethod string
	Rows          []Row
	Total         string
}

// Row is one line item with its formatted subtotal
type Row struct {
	ProductID   string
	ProductName string
	ImageURL    string
	Product     Link
	Quantity    int
	UnitPrice   string
	Subtotal    string
}

// ProductPath is the "view product" target of a product
func ProductPath(productID string) string {
	return "/products/" + url.PathEscape(productID)
}

// Project turns a state into a document, it never changes source values except by formatting them
//
// The total is the order's TotalAmount as sent by the remote API, rows are not summed
func Project(state State, locale language.Tag) Page {
	labels := LabelsFor(locale)
	page := Page{
		Status: state.Status,
		Lang:   locale.String(),
		Labels: labels,
	}

	switch state.Status {
	case StatusFailed:
		page.Message = state.Message
		page.Home = &Link{Href: HomePath, Label: labels.BackToHome}
	case StatusLoaded:
		page.Order = projectOrder(state.Order, locale, labels)
		page.Home = &Link{Href: HomePath, Label: labels.BackToHome}
	}
	return page
}

func projectOrder(order models.Order, locale language.Tag, labels Labels) *OrderDocument {
	doc := &OrderDocument{
		ID:            order.ID,
		Number:        order.Number,
		PlacedAt:      FormatLongDate(order.PlacedAt, locale),
		StatusLabel:   order.Status.Label(),
		StatusSlug:    order.Status.Slug(),
		Purchaser:     order.Purchaser.FullName(),
		Email:         order.Purchaser.Email,
		Address:       addressLines(order.ShippingAddress),
		PaymentMethod: order.PaymentMethod,
		Rows:          make([]Row, 0, len(order.Items)),
		Total:         FormatMoney(order.TotalAmount),
	}
	if doc.Number == "" {
		doc.Number = order.ID
	}

	for _, item := range order.Items {
		doc.Rows = append(doc.Rows, Row{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			ImageURL:    item.Product.MainImage(),
			Product:     Link{Href: ProductPath(item.Product.ID), Label: labels.ViewProduct},
			Quantity:    item.Quantity,
			UnitPrice:   FormatMoney(item.UnitPrice),
			Subtotal:    FormatMoney(item.Subtotal()),
		})
	}
	return doc
}

func addressLines(addr models.ShippingAddress) []string {
	var lines []string
	if s := strings.TrimSpace(addr.Street); s != "" {
		lines = append(lines, s)
	}
	if s := strings.TrimSpace(strings.TrimSpace(addr.PostalCode) + " " + strings.TrimSpace(addr.City)); s != "" {
		lines = append(lines, s)
	}
	if s := strings.TrimSpace(addr.Country); s != "" {
		lines = append(lines, s)
	}
	return lines
}
