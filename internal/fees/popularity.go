package fees

import "github.com/stageradar/stageradar/internal/model"

// popularityBreakdown carries the three point pools feeding the
// popularity score: Spotify up to 40, social up to 40, live up to 20.
type popularityBreakdown struct {
	Spotify float64
	Social  float64
	Live    float64
}

func (b popularityBreakdown) empty() bool {
	return b.Spotify == 0 && b.Social == 0 && b.Live == 0
}

// spotifyPopularity estimates a Spotify "popularity" figure (0-100)
// from monthly-listener brackets.
func spotifyPopularity(listeners int64) float64 {
	switch {
	case listeners >= 50_000_000:
		return 95
	case listeners >= 20_000_000:
		return 85
	case listeners >= 10_000_000:
		return 75
	case listeners >= 5_000_000:
		return 68
	case listeners >= 1_000_000:
		return 55
	case listeners >= 500_000:
		return 45
	case listeners >= 200_000:
		return 35
	case listeners >= 50_000:
		return 25
	case listeners > 0:
		return 15
	default:
		return 0
	}
}

// platformPopularity brackets a single social platform's follower count
// to a 0-100 figure.
func platformPopularity(followers int64) float64 {
	switch {
	case followers >= 50_000_000:
		return 95
	case followers >= 10_000_000:
		return 80
	case followers >= 5_000_000:
		return 70
	case followers >= 1_000_000:
		return 55
	case followers >= 500_000:
		return 45
	case followers >= 100_000:
		return 35
	case followers >= 50_000:
		return 25
	case followers >= 10_000:
		return 15
	case followers > 0:
		return 8
	default:
		return 0
	}
}

// breakdown computes the three point pools from raw metrics.
//
//   - Spotify: estimated popularity x 0.40 (<= 40 points)
//   - Social: YouTube 40% / Instagram 35% / TikTok 25% weighted, x 0.40
//   - Live: per-event points (large venue 4, festival 3, medium venue 2,
//     other 1), capped at 20
func breakdown(m model.ArtistMetrics) popularityBreakdown {
	social := 0.40*platformPopularity(m.YouTubeSubscribers) +
		0.35*platformPopularity(m.InstagramFollowers) +
		0.25*platformPopularity(m.TikTokFollowers)

	var live float64
	for _, ev := range m.KnownEvents {
		switch {
		case ev.VenueCapacity >= 10_000:
			live += 4
		case ev.Festival:
			live += 3
		case ev.VenueCapacity >= 5_000:
			live += 2
		default:
			live += 1
		}
	}
	if live > 20 {
		live = 20
	}

	return popularityBreakdown{
		Spotify: spotifyPopularity(m.SpotifyMonthlyListeners) * 0.40,
		Social:  social * 0.40,
		Live:    live,
	}
}

// qualityFactor dampens vanity metrics: a large social following with
// no streaming or live traction is down-weighted, while proven live and
// streaming strength earns a premium. Bounded to [0.60, 1.10].
func qualityFactor(b popularityBreakdown) float64 {
	switch {
	case b.Social > 25 && b.Spotify < 10 && b.Live < 5:
		return 0.60
	case b.Live >= 10 && b.Spotify >= 28:
		return 1.10
	default:
		return clamp(0.80+0.30*(b.Spotify+b.Live)/58, 0.60, 1.10)
	}
}

// score combines the pools under the quality factor, 0-100.
func (b popularityBreakdown) score() float64 {
	return clamp((b.Spotify+b.Social+b.Live)*qualityFactor(b), 0, 100)
}

func popularityScore(m model.ArtistMetrics) float64 {
	return breakdown(m).score()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
