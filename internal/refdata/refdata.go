// Package refdata supplies the selectable reference options the
// checkout screen populates its dropdowns from: credit card expiration
// months and years, countries, and the states belonging to a country.
package refdata

import (
	"context"
	"time"

	"shop-checkout/internal/model"
)

// yearsAhead is how far past the current year the expiration year list
// extends.
const yearsAhead = 10

// Provider defines the reference data lookups consumed by the checkout
// screen. Implementations return fresh slices; consumers replace their
// lists wholesale, never merge.
type Provider interface {
	// Months returns the month numbers from startMonth through 12.
	Months(ctx context.Context, startMonth int) ([]int, error)

	// Years returns the expiration year list, current year onwards.
	Years(ctx context.Context) ([]int, error)

	// Countries returns all available countries.
	Countries(ctx context.Context) ([]model.Country, error)

	// States returns all states belonging to the given country.
	States(ctx context.Context, countryCode string) ([]model.State, error)
}

// expirationMonths returns startMonth..12. A start month outside 1..12
// is clamped to 1.
func expirationMonths(startMonth int) []int {
	if startMonth < 1 || startMonth > 12 {
		startMonth = 1
	}
	months := make([]int, 0, 13-startMonth)
	for m := startMonth; m <= 12; m++ {
		months = append(months, m)
	}
	return months
}

// expirationYears returns the current year through current+yearsAhead.
func expirationYears(now time.Time) []int {
	start := now.Year()
	years := make([]int, 0, yearsAhead+1)
	for y := start; y <= start+yearsAhead; y++ {
		years = append(years, y)
	}
	return years
}
