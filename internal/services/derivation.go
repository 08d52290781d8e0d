// internal/services/derivation.go
package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopfloor/inventory-backend/internal/models"
)

var hundred = decimal.NewFromInt(100)

// DeriveView maps a stored record plus a point in time to its display view.
// Pure function, no I/O; call it with one consistent now per response so
// availability never skews between rows of the same payload.
func DeriveView(p models.Product, now time.Time) models.ProductView {
	factor := decimal.NewFromInt(1).Sub(p.Discount.Div(hundred))

	available := true
	if p.ExpiryDate != nil {
		// Date granularity: a product expiring today is no longer available.
		available = p.ExpiryDate.Time.After(dateOf(now))
	}

	return models.ProductView{
		Product:         p,
		Available:       available,
		DiscountedPrice: p.Price.Mul(factor).Round(2),
	}
}

// DeriveViews derives every record against the same now.
func DeriveViews(products []models.Product, now time.Time) []models.ProductView {
	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, DeriveView(p, now))
	}
	return views
}

// dateOf truncates a timestamp to its calendar date in the server's location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
