// Package life estimates life expectancy and derives the time-remaining
// figures the dashboard renders.
package life

import (
	"math"
	"sort"
	"strings"
)

// WorldAverage is used for countries missing from the table.
const WorldAverage = 73.3

// atBirth holds period life expectancy at birth in years, both sexes.
var atBirth = map[string]float64{
	"Argentina":      76.1,
	"Australia":      83.3,
	"Austria":        81.6,
	"Belgium":        81.9,
	"Brazil":         75.8,
	"Canada":         82.0,
	"Chile":          80.2,
	"China":          78.6,
	"Denmark":        81.6,
	"Egypt":          70.2,
	"Finland":        81.9,
	"France":         82.5,
	"Germany":        80.9,
	"Greece":         81.1,
	"India":          70.8,
	"Indonesia":      71.7,
	"Ireland":        82.4,
	"Israel":         82.7,
	"Italy":          83.0,
	"Japan":          84.5,
	"Mexico":         74.8,
	"Netherlands":    81.7,
	"New Zealand":    82.1,
	"Nigeria":        54.5,
	"Norway":         83.2,
	"Poland":         77.9,
	"Portugal":       81.8,
	"Russia":         73.2,
	"South Africa":   62.3,
	"South Korea":    83.7,
	"Spain":          83.2,
	"Sweden":         83.1,
	"Switzerland":    84.0,
	"Turkey":         76.0,
	"Ukraine":        73.4,
	"United Kingdom": 81.2,
	"United States":  78.4,
}

// Expectancy returns the expected age at death, in years, for someone who has
// reached age in country. Surviving to a given age raises the expectation, so
// the result grows with age and always exceeds it by at least one year.
// Country matching ignores case and surrounding space.
func Expectancy(age int, country string) float64 {
	base, ok := lookupCountry(country)
	if !ok {
		base = WorldAverage
	}
	if age < 0 {
		age = 0
	}
	a := float64(age)
	// Survivors outlive the at-birth figure by an amount that is small early
	// in life and grows quickly past middle age.
	bonus := 0.12 * a * math.Pow(a/base, 3)
	estimate := base + bonus
	if floor := a + 1; estimate < floor {
		estimate = floor
	}
	return math.Round(estimate*10) / 10
}

// AtBirth returns the table value for country and whether it was found.
func AtBirth(country string) (float64, bool) {
	return lookupCountry(country)
}

// Countries returns the known country names in sorted order.
func Countries() []string {
	out := make([]string, 0, len(atBirth))
	for name := range atBirth {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CanonicalCountry returns the table spelling of country, or country trimmed
// when it is unknown.
func CanonicalCountry(country string) string {
	trimmed := strings.TrimSpace(country)
	for name := range atBirth {
		if strings.EqualFold(name, trimmed) {
			return name
		}
	}
	return trimmed
}

func lookupCountry(country string) (float64, bool) {
	if v, ok := atBirth[country]; ok {
		return v, true
	}
	v, ok := atBirth[CanonicalCountry(country)]
	return v, ok
}
