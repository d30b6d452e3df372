package growth

import "time"

// seasonalFactors is the per-calendar-month growth multiplier. Festival
// season peaks discovery in July; the December lull bottoms it out.
var seasonalFactors = map[time.Month]float64{
	time.January:   0.98,
	time.February:  1.00,
	time.March:     1.05,
	time.April:     1.10,
	time.May:       1.15,
	time.June:      1.25,
	time.July:      1.30,
	time.August:    1.28,
	time.September: 1.12,
	time.October:   1.05,
	time.November:  1.00,
	time.December:  0.95,
}

// SeasonalByMonth returns a copy of the default per-month multipliers,
// keyed by English month name, for booking-window guidance.
func SeasonalByMonth() map[string]float64 {
	out := make(map[string]float64, len(seasonalFactors))
	for m, f := range seasonalFactors {
		out[m.String()] = f
	}
	return out
}

// seasonalFactor returns the multiplier for the month of t.
func seasonalFactor(factors map[time.Month]float64, t time.Time) float64 {
	if f, ok := factors[t.Month()]; ok {
		return f
	}
	return 1.0
}
