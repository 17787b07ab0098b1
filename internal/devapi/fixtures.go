package devapi

import (
	"fmt"
	"storefront/internal/models"
	"time"

	"github.com/shopspring/decimal"
)

// ExampleOrderID is always present in generated fixtures
const ExampleOrderID = "abc123"

// ExampleOrder is the shirt order used in docs and tests: 2 x 24.99 shipped
func ExampleOrder() models.Order {
	return models.Order{
		ID:        ExampleOrderID,
		Number:    "CMD-2024-0001",
		Purchaser: models.Purchaser{ID: "u1", Name: "Jeanne", Surname: "Martin", Email: "jeanne.martin@example.fr"},
		Items: []models.LineItem{
			{Product: models.ProductRef{ID: "p1", Name: "Shirt", Images: []string{}}, Quantity: 2, UnitPrice: decimal.RequireFromString("24.99")},
		},
		ShippingAddress: models.ShippingAddress{Street: "12 rue de la République", City: "Lyon", PostalCode: "69002", Country: "France"},
		PaymentMethod:   "carte",
		TotalAmount:     decimal.RequireFromString("49.98"),
		Status:          models.StatusShipped,
		PlacedAt:        time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
	}
}

// GenerateOrders creates n deterministic orders after ExampleOrder, placed one hour apart before now
func GenerateOrders(n int, now time.Time) []models.Order {
	names := []string{"Jeanne", "Pierre", "Marie", "Anne", "Luc", "Camille", "Hugo", "Léa"}
	surnames := []string{"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit"}
	cities := []struct {
		Name       string
		PostalCode string
	}{
		{"Paris", "75011"}, {"Lyon", "69003"}, {"Marseille", "13001"},
		{"Toulouse", "31000"}, {"Nantes", "44000"}, {"Lille", "59000"},
	}
	streets := []string{"rue Victor Hugo", "avenue Jean Jaurès", "rue de la Paix", "boulevard Voltaire", "rue Pasteur"}
	products := []struct {
		ID    string
		Name  string
		Price string
	}{
		{"p1", "Shirt", "24.99"},
		{"p2", "Sweat", "49.90"},
		{"p3", "Casquette", "15.00"},
		{"p4", "Mug", "9.99"},
		{"p5", "Sac", "34.50"},
		{"p6", "Chaussettes", "7.95"},
	}
	payments := []string{"carte", "paypal", "virement"}
	statuses := models.Statuses()

	orders := make([]models.Order, 0, n+1)
	orders = append(orders, ExampleOrder())

	for i := 0; i < n; i++ {
		name := names[i%len(names)]
		surname := surnames[i%len(surnames)]
		city := cities[i%len(cities)]

		// 1-3 items per order
		itemCount := 1 + i%3
		items := make([]models.LineItem, itemCount)
		total := decimal.Zero
		for j := 0; j < itemCount; j++ {
			product := products[(i+j)%len(products)]
			items[j] = models.LineItem{
				Product: models.ProductRef{
					ID:     product.ID,
					Name:   product.Name,
					Images: []string{fmt.Sprintf("/images/%s.jpg", product.ID)},
				},
				Quantity:  1 + (i+j)%4,
				UnitPrice: decimal.RequireFromString(product.Price),
			}
			total = total.Add(items[j].Subtotal())
		}

		orders = append(orders, models.Order{
			ID:     fmt.Sprintf("order-%04d", i+1),
			Number: fmt.Sprintf("CMD-%d-%04d", now.Year(), i+2),
			Purchaser: models.Purchaser{
				ID:      fmt.Sprintf("u%d", 100+i),
				Name:    name,
				Surname: surname,
				Email:   fmt.Sprintf("client%d@example.fr", 100+i),
			},
			Items: items,
			ShippingAddress: models.ShippingAddress{
				Street:     fmt.Sprintf("%d %s", 1+i%120, streets[i%len(streets)]),
				City:       city.Name,
				PostalCode: city.PostalCode,
				Country:    "France",
			},
			PaymentMethod: payments[i%len(payments)],
			TotalAmount:   total,
			Status:        statuses[i%len(statuses)],
			PlacedAt:      now.Add(-time.Duration(i+1) * time.Hour).UTC().Truncate(time.Second),
		})
	}
	return orders
}

// DefaultSponsors is the sponsor directory served by the dev API
func DefaultSponsors() []models.Sponsor {
	return []models.Sponsor{
		{ID: "s1", Name: "Atelier Lumière", Description: "Éclairage artisanal fabriqué à Lyon.", LogoURL: "/images/sponsors/lumiere.png", WebsiteURL: "https://lumiere.example"},
		{ID: "s2", Name: "Café du Port", Description: "Torréfacteur indépendant depuis 1987.", LogoURL: "/images/sponsors/cafe.png", WebsiteURL: "https://cafe-du-port.example"},
		{ID: "s3", Name: "Vélo Vert", Description: "Réparation et location de vélos.", WebsiteURL: "https://velo-vert.example"},
	}
}
