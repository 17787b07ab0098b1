package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate returned by the remote API, read-only on our side
//
// JSON field names follow the remote API
type Order struct {
	ID              string          `json:"_id"`
	Number          string          `json:"numeroCommande"`
	Purchaser       Purchaser       `json:"utilisateur"`
	Items           []LineItem      `json:"produits"`
	ShippingAddress ShippingAddress `json:"adresseLivraison"`
	PaymentMethod   string          `json:"methodePaiement"`
	TotalAmount     decimal.Decimal `json:"montantTotal"`
	Status          OrderStatus     `json:"statut"`
	PlacedAt        time.Time       `json:"createdAt"`
}

type Purchaser struct {
	ID      string `json:"_id"`
	Name    string `json:"prenom"`
	Surname string `json:"nom"`
	Email   string `json:"email"`
}

// FullName joins name and surname, skipping empty parts
func (p Purchaser) FullName() string {
	switch {
	case p.Name == "":
		return p.Surname
	case p.Surname == "":
		return p.Name
	default:
		return p.Name + " " + p.Surname
	}
}

type LineItem struct {
	Product   ProductRef      `json:"produit"`
	Quantity  int             `json:"quantite"`
	UnitPrice decimal.Decimal `json:"prixUnitaire"`
}

// Subtotal is quantity × unit price, computed on demand and never stored
func (i LineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type ProductRef struct {
	ID     string   `json:"_id"`
	Name   string   `json:"nom"`
	Images []string `json:"images"`
}

// MainImage returns the first image or ""
func (p ProductRef) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type ShippingAddress struct {
	Street     string `json:"rue"`
	City       string `json:"ville"`
	PostalCode string `json:"codePostal"`
	Country    string `json:"pays"`
}

// ItemsSum adds up row subtotals, only used to detect a mismatch with TotalAmount
func (o Order) ItemsSum() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.Subtotal())
	}
	return sum
}

// Sponsor is an entry of the sponsor directory
type Sponsor struct {
	ID          string `json:"_id"`
	Name        string `json:"nom"`
	Description string `json:"description"`
	LogoURL     string `json:"logo"`
	WebsiteURL  string `json:"siteWeb"`
}

// ContactMessage is what the contact form publishes
type ContactMessage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject,omitempty"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

// FAQEntry is one question of the FAQ page
type FAQEntry struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}
