package view

import (
	"fmt"
	"strings"
)

const receiptWidth = 48

// FormatText renders a page as a plain-text receipt, used by the CLI
func FormatText(page Page) string {
	labels := page.Labels
	var lines []string

	lines = append(lines, strings.Repeat("═", receiptWidth))
	lines = append(lines, "  "+strings.ToUpper(labels.Title))
	lines = append(lines, strings.Repeat("═", receiptWidth))

	switch page.Status {
	case StatusLoading:
		lines = append(lines, labels.Loading)
		return strings.Join(lines, "\n")
	case StatusFailed:
		lines = append(lines, page.Message)
		lines = append(lines, strings.Repeat("─", receiptWidth))
		lines = append(lines, fmt.Sprintf("%s: %s", labels.BackToHome, page.Home.Href))
		return strings.Join(lines, "\n")
	}

	order := page.Order
	lines = append(lines, fmt.Sprintf("%s: %s", labels.OrderNumber, order.Number))
	if order.PlacedAt != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", labels.PlacedAt, order.PlacedAt))
	}
	lines = append(lines, fmt.Sprintf("%s: %s", labels.Status, order.StatusLabel))
	if order.Purchaser != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", labels.Purchaser, order.Purchaser))
	}
	if len(order.Address) > 0 {
		lines = append(lines, fmt.Sprintf("%s: %s", labels.Shipping, strings.Join(order.Address, ", ")))
	}
	if order.PaymentMethod != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", labels.PaymentMethod, order.PaymentMethod))
	}
	lines = append(lines, strings.Repeat("─", receiptWidth))

	for _, row := range order.Rows {
		lines = append(lines, fmt.Sprintf("%d x %s @ %s = %s", row.Quantity, row.ProductName, row.UnitPrice, row.Subtotal))
		lines = append(lines, fmt.Sprintf("    %s: %s", row.Product.Label, row.Product.Href))
	}

	lines = append(lines, strings.Repeat("─", receiptWidth))
	lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(labels.Total), order.Total))
	lines = append(lines, strings.Repeat("═", receiptWidth))
	lines = append(lines, fmt.Sprintf("%s: %s", labels.BackToHome, page.Home.Href))

	return strings.Join(lines, "\n")
}
