// internal/services/reports.go
package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopfloor/inventory-backend/internal/models"
)

// DefaultExpiryWindowDays is the reporting window for soon-to-expire stock.
const DefaultExpiryWindowDays = 7

// ExpiringWithin selects views whose expiry date falls inside
// [today, today+windowDays], both bounds inclusive. Views without an expiry
// date never match.
func ExpiringWithin(views []models.ProductView, now time.Time, windowDays int) []models.ProductView {
	today := dateOf(now)
	end := today.AddDate(0, 0, windowDays)

	expiring := make([]models.ProductView, 0)
	for _, v := range views {
		if v.ExpiryDate == nil {
			continue
		}
		d := dateOf(v.ExpiryDate.Time)
		if !d.Before(today) && !d.After(end) {
			expiring = append(expiring, v)
		}
	}
	return expiring
}

// ValueByCategory sums discountedPrice × quantity per category. Each total is
// rounded to 2 decimal places after summation, not per item. An empty input
// yields an empty map.
func ValueByCategory(views []models.ProductView) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, v := range views {
		qty := decimal.NewFromInt(int64(v.Quantity))
		totals[v.Category] = totals[v.Category].Add(v.DiscountedPrice.Mul(qty))
	}
	for category, total := range totals {
		totals[category] = total.Round(2)
	}
	return totals
}

// FilterByCategory keeps views whose category matches exactly,
// case-sensitively.
func FilterByCategory(views []models.ProductView, category string) []models.ProductView {
	matched := make([]models.ProductView, 0)
	for _, v := range views {
		if v.Category == category {
			matched = append(matched, v)
		}
	}
	return matched
}
