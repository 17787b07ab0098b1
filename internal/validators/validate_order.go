package validators

import (
	"fmt"
	"storefront/internal/models"
	"strings"
)

// ValidateOrder checks that a decoded remote order is usable for display.
//
// Only structure is checked, money consistency is the remote API's business
func ValidateOrder(order models.Order) error {
	if strings.TrimSpace(order.ID) == "" {
		return fmt.Errorf("_id is required")
	}
	if order.TotalAmount.IsNegative() {
		return fmt.Errorf("montantTotal must be non-negative")
	}
	if err := validateItems(order.Items); err != nil {
		return fmt.Errorf("items validation failed: %w", err)
	}
	return nil
}

func validateItems(items []models.LineItem) error {
	for i, item := range items {
		if err := validateItem(item); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func validateItem(item models.LineItem) error {
	if item.Quantity < 0 {
		return fmt.Errorf("quantite must be non-negative")
	}
	if item.UnitPrice.IsNegative() {
		return fmt.Errorf("prixUnitaire must be non-negative")
	}
	return nil
}

// ValidateSponsors rejects directory entries without an ID, they can't be linked to
func ValidateSponsors(sponsors []models.Sponsor) error {
	for i, sponsor := range sponsors {
		if strings.TrimSpace(sponsor.ID) == "" {
			return fmt.Errorf("sponsor %d: _id is required", i)
		}
	}
	return nil
}
