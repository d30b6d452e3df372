// Package growth predicts future audience size from social/streaming
// metrics. The model blends seven factors (historical momentum, genre
// base rate, tier velocity, seasonality, cross-platform social
// momentum, deterministic per-artist entropy, and positioning against
// the genre benchmark) into one monthly growth rate, then projects it
// over 30/90/180-day horizons with decaying compounding.
//
// Everything is pure and deterministic given the injected clock: the
// only "randomness" is the entity entropy hash, which is stable per
// artist name.
package growth

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/stageradar/stageradar/internal/model"
)

// Input is one prediction request. History is optional; Tier defaults
// from Current when unset.
type Input struct {
	Metric      string
	Current     int64
	History     []model.Snapshot
	Genre       string
	ArtistName  string
	SocialTotal int64
	TikTok      int64
	Tier        model.Tier
}

// Engine runs growth predictions against immutable lookup tables.
type Engine struct {
	logger   *slog.Logger
	genres   map[string]GenreProfile
	tiers    map[model.Tier]TierVelocity
	seasonal map[time.Month]float64
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithGenres replaces the genre profile table. Test/tuning hook.
func WithGenres(g map[string]GenreProfile) Option { return func(e *Engine) { e.genres = g } }

// WithNow overrides the clock used for the seasonal factor.
func WithNow(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// New creates a growth engine with the stock lookup tables.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   slog.Default(),
		genres:   genreProfiles,
		tiers:    tierVelocities,
		seasonal: seasonalFactors,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Predict computes a TrendPrediction for one metric. It is total:
// malformed inputs (zero current value, unsorted or partial history,
// unknown genre/tier) degrade the model instead of failing it.
func (e *Engine) Predict(in Input) model.TrendPrediction {
	genre := lookupGenre(e.genres, in.Genre)
	tier := in.Tier
	if tier == "" {
		tier = TierForListeners(in.Current)
	}
	velocity := lookupTier(e.tiers, tier)
	entropy := entityEntropy(in.ArtistName)

	histRate, histPoints, hasHistory := historicalMomentum(in.History)
	social := e.socialMomentum(in.Current, in.SocialTotal, in.TikTok)
	position := positionModifier(float64(in.Current), genre.Benchmark)
	base := genre.BaseGrowth * velocity.Multiplier * position

	var rate, confidence float64
	if hasHistory {
		rate = 0.50*histRate + 0.30*base + 0.15*social + 0.05*entropy
		confidence = math.Min(0.4+0.13*float64(histPoints-2), 0.92)
	} else {
		rate = 0.70*base + 0.20*social + 0.10*entropy
		confidence = 0.45
	}
	confidence = clamp(confidence-genre.Volatility*0.1, 0.10, 0.95)

	rate *= seasonalFactor(e.seasonal, e.now())
	rate += entropy * (genre.Volatility + velocity.Volatility) / 2

	// Tier ceiling: an audience this size cannot grow faster than its
	// velocity profile allows, and realistic monthly losses bottom out
	// well before total collapse.
	rate = clamp(rate, -0.50, velocity.Ceiling)

	// No prediction is exactly flat: differentiation is part of the
	// contract even for stagnant inputs.
	if math.Abs(rate) < 0.01 {
		rate = 0.01 + math.Abs(entropy)*0.05
	}

	p30, p90, p180 := project(in.Current, rate, genre.Decay)

	e.logger.Debug("growth: predicted",
		"artist", in.ArtistName, "metric", in.Metric,
		"rate_monthly", rate, "history_points", histPoints)

	return model.TrendPrediction{
		Metric:            in.Metric,
		CurrentValue:      in.Current,
		Predicted30d:      p30,
		Predicted90d:      p90,
		Predicted180d:     p180,
		Confidence:        confidence,
		GrowthRateMonthly: rate * 100,
		Trend:             model.TrendForRate(rate),
	}
}

// historicalMomentum computes a compound monthly growth rate from up to
// the last six snapshots. With three or more points the most recent
// period dominates (60/40): what the audience did last month says more
// than what it did last quarter.
func historicalMomentum(history []model.Snapshot) (rate float64, points int, ok bool) {
	valid := make([]model.Snapshot, 0, len(history))
	for _, s := range history {
		if s.Value > 0 && !s.Date.IsZero() {
			valid = append(valid, s)
		}
	}
	if len(valid) < 2 {
		return 0, len(valid), false
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Date.Before(valid[j].Date) })
	if len(valid) > 6 {
		valid = valid[len(valid)-6:]
	}

	first, last := valid[0], valid[len(valid)-1]
	total := monthlyRate(first, last)

	if len(valid) >= 3 {
		recent := monthlyRate(valid[len(valid)-2], last)
		return 0.40*total + 0.60*recent, len(valid), true
	}
	return total, len(valid), true
}

// monthlyRate normalizes the growth between two snapshots to a
// compound monthly rate.
func monthlyRate(from, to model.Snapshot) float64 {
	months := to.Date.Sub(from.Date).Hours() / 24 / 30
	if months < 0.25 {
		months = 0.25 // guard against same-day snapshots exploding the rate
	}
	ratio := float64(to.Value) / float64(from.Value)
	if ratio <= 0 {
		return 0
	}
	return math.Pow(ratio, 1/months) - 1
}

// socialMomentum converts the social-to-core-metric ratio into a growth
// bonus. A large cross-platform following relative to streaming numbers
// signals conversion headroom; a TikTok-heavy profile signals viral
// upside.
func (e *Engine) socialMomentum(current, social, tiktok int64) float64 {
	var bonus float64
	if current <= 0 {
		if social > 0 {
			return 0.15
		}
		return 0
	}
	switch ratio := float64(social) / float64(current); {
	case ratio > 3.0:
		bonus = 0.15
	case ratio >= 1.5:
		bonus = 0.08
	case ratio >= 0.8:
		bonus = 0.03
	case ratio < 0.3:
		bonus = -0.05
	}
	if float64(tiktok) > 0.5*float64(current) {
		bonus += 0.10
	}
	return bonus
}

// positionModifier scales growth by where the artist sits against the
// genre benchmark: far below it means maximum headroom, far above it
// means the ceiling effect has set in.
func positionModifier(current, benchmark float64) float64 {
	if benchmark <= 0 {
		return 1.0
	}
	switch ratio := current / benchmark; {
	case ratio < 0.05:
		return 1.8
	case ratio < 0.25:
		return 1.4
	case ratio < 1.0:
		return 1.1
	case ratio < 2.0:
		return 0.9
	case ratio < 5.0:
		return 0.5
	default:
		return 0.2
	}
}

// project compounds the monthly rate over the three horizons. Longer
// horizons use a decay-damped effective rate, and the results are
// forced monotonic in the direction of growth.
func project(current int64, rate, decay float64) (p30, p90, p180 int64) {
	cur := float64(current)
	r90 := rate * (1 - decay*0.3)
	r180 := rate * (1 - decay*0.5)

	v30 := cur * (1 + rate)
	v90 := cur * math.Pow(1+r90, 3)
	v180 := cur * math.Pow(1+r180, 6)

	if rate > 0 {
		v30 = math.Max(v30, cur)
		v90 = math.Max(v90, v30)
		v180 = math.Max(v180, v90)
	} else {
		v30 = math.Min(v30, cur)
		v90 = math.Min(v90, v30)
		v180 = math.Min(v180, v90)
	}
	return round64(v30), round64(v90), round64(v180)
}

func round64(v float64) int64 {
	if v < 0 {
		return 0
	}
	return int64(math.Round(v))
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
