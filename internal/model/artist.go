package model

import "time"

// Tier is a discrete popularity / career-stage bucket. It drives the
// growth ceiling (how fast an audience of that size can still grow)
// and the base fee range.
type Tier string

// Tiers, smallest to largest audience.
const (
	TierUnderground Tier = "underground"
	TierEmerging    Tier = "emerging"
	TierDeveloping  Tier = "developing"
	TierEstablished Tier = "established"
	TierStar        Tier = "star"
	TierSuperstar   Tier = "superstar"
	TierMegaStar    Tier = "mega-star"
)

var tierRanks = map[Tier]int{
	TierUnderground: 1,
	TierEmerging:    2,
	TierDeveloping:  3,
	TierEstablished: 4,
	TierStar:        5,
	TierSuperstar:   6,
	TierMegaStar:    7,
}

// Rank returns the tier's position, underground lowest. Unknown tiers
// rank at zero, below underground.
func (t Tier) Rank() int { return tierRanks[t] }

// KnownEvent is a past or announced live appearance supplied by the
// external scanner, used as a live-performance signal in fee estimation.
type KnownEvent struct {
	Name          string     `json:"name,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	VenueCapacity int        `json:"venue_capacity,omitempty"`
	Festival      bool       `json:"festival,omitempty"`
}

// FeeHint is externally supplied reference fee data (e.g. from a scanner
// that found published booking fees). When present it takes precedence
// over the internally derived tier base range.
type FeeHint struct {
	FeeMin float64 `json:"fee_min"`
	FeeMax float64 `json:"fee_max"`
	Tier   Tier    `json:"tier,omitempty"`
}

// ArtistMetrics is the full social/streaming input for one artist
// analysis, supplied synchronously by the caller. The core never
// fetches metrics itself.
type ArtistMetrics struct {
	Name    string `json:"name"`
	Genre   string `json:"genre,omitempty"`
	Country string `json:"country,omitempty"`

	SpotifyMonthlyListeners int64 `json:"spotify_monthly_listeners"`
	SpotifyFollowers        int64 `json:"spotify_followers"`
	YouTubeSubscribers      int64 `json:"youtube_subscribers"`
	InstagramFollowers      int64 `json:"instagram_followers"`
	TikTokFollowers         int64 `json:"tiktok_followers"`

	// Optional history, most recent last. ListenerHistory tracks
	// Spotify monthly listeners; SocialHistory tracks total social
	// followers across platforms.
	ListenerHistory []Snapshot `json:"listener_history,omitempty"`
	SocialHistory   []Snapshot `json:"social_history,omitempty"`

	KnownEvents []KnownEvent `json:"known_events,omitempty"`

	// ScannerHint overrides the tier-derived fee base range when set.
	ScannerHint *FeeHint `json:"scanner_hint,omitempty"`
}

// TotalSocialFollowers sums followers across the social platforms
// (streaming listeners excluded).
func (m ArtistMetrics) TotalSocialFollowers() int64 {
	return m.YouTubeSubscribers + m.InstagramFollowers + m.TikTokFollowers
}
