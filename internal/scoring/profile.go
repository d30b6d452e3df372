package scoring

import "fmt"

// Profile describes the agency the scorer works for: what it books,
// what it charges, where it prefers to operate, and what it refuses.
// Injected at scorer construction; never mutated afterward.
type Profile struct {
	// Specialties are genres/formats the agency actively books
	// ("electro", "jazz", "festival programming").
	Specialties []string

	// BudgetMin and BudgetMax bound the engagement budgets the agency
	// targets, in the platform currency (EUR).
	BudgetMin float64
	BudgetMax float64

	// PreferredLocations boosts relevance when the lead's location
	// matches (city, region, or country).
	PreferredLocations []string

	// PreferredEventTypes is informational for downstream consumers;
	// relevance keywords already cover event type matching.
	PreferredEventTypes []string

	// AvoidKeywords eliminate a lead outright: any match zeroes the
	// relevance component regardless of other signals.
	AvoidKeywords []string
}

// Validate checks invariants that indicate programmer error. Called at
// scorer construction, never at scoring time.
func (p Profile) Validate() error {
	if p.BudgetMin < 0 {
		return fmt.Errorf("profile: budget min must be non-negative, got %v", p.BudgetMin)
	}
	if p.BudgetMax < p.BudgetMin {
		return fmt.Errorf("profile: budget max %v below min %v", p.BudgetMax, p.BudgetMin)
	}
	return nil
}

// DefaultProfile returns a baseline profile for a French live-music
// booking agency. Deployments override it via configuration.
func DefaultProfile() Profile {
	return Profile{
		Specialties:        []string{"electro", "jazz", "hip-hop", "festival"},
		BudgetMin:          5000,
		BudgetMax:          100000,
		PreferredLocations: []string{"paris", "lyon", "marseille", "france", "belgique", "suisse"},
		PreferredEventTypes: []string{
			"festival", "club", "corporate", "private",
		},
		AvoidKeywords: []string{"karaoké", "karaoke", "playback only", "bénévole", "unpaid"},
	}
}
