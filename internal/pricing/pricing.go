package pricing

import (
	"errors"

	"github.com/fjod/go_rental/internal/domain"
)

const (
	// TaxRate is applied to the subtotal. Rounding for display is left
	// to the presentation layer.
	TaxRate = 0.07

	// DeliveryFee is a flat fee in currency minor units.
	DeliveryFee = 500.0
)

var ErrInvalidQuantity = errors.New("quantity and days must be at least 1")

// LineTotal returns the cost contribution of a single line item:
// unit price per rental day, times quantity, times rental duration.
func LineTotal(item domain.LineItem) (float64, error) {
	if item.Quantity < 1 || item.Days < 1 {
		return 0, ErrInvalidQuantity
	}
	return item.Price * float64(item.Quantity) * float64(item.Days), nil
}

// Subtotal sums line totals over all items. An empty slice yields 0.
func Subtotal(items []domain.LineItem) (float64, error) {
	var sum float64
	for _, item := range items {
		lineTotal, err := LineTotal(item)
		if err != nil {
			return 0, err
		}
		sum += lineTotal
	}
	return sum, nil
}

func Tax(subtotal float64) float64 {
	return subtotal * TaxRate
}

func Total(subtotal, deliveryFee, tax float64) float64 {
	return subtotal + deliveryFee + tax
}
