// Package fees maps popularity signals to a career tier and a monetary
// booking fee range. Two estimators share one interface: the advanced
// path scores weighted Spotify/social/live signals under a quality
// factor, and a simpler additive fallback guarantees a usable quote
// even when the advanced path fails or no reliable data exists.
// Amounts are in the platform currency (EUR), reconfigurable per
// deployment.
package fees

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/stageradar/stageradar/internal/model"
)

// Quote is the immutable output of one fee estimation.
type Quote struct {
	Tier             model.Tier             `json:"tier"`
	FeeMin           int64                  `json:"fee_min"`
	FeeMax           int64                  `json:"fee_max"`
	OptimalFee       int64                  `json:"optimal_fee"`
	NegotiationPower model.NegotiationPower `json:"negotiation_power"`
	PopularityScore  float64                `json:"popularity_score"`
	Method           string                 `json:"method"` // "advanced" or "fallback"
}

// Estimator is the shared contract for both scoring tiers.
type Estimator interface {
	Estimate(m model.ArtistMetrics, trend model.Trend) (Quote, error)
}

// feeRange is a base fee band for one tier.
type feeRange struct{ Min, Max float64 }

// baseFees is the immutable tier-to-fee table.
var baseFees = map[model.Tier]feeRange{
	model.TierUnderground: {800, 3_000},
	model.TierEmerging:    {1_500, 5_000},
	model.TierDeveloping:  {5_000, 15_000},
	model.TierEstablished: {15_000, 40_000},
	model.TierStar:        {40_000, 100_000},
	model.TierSuperstar:   {100_000, 300_000},
	model.TierMegaStar:    {300_000, 1_000_000},
}

// trendMultipliers applies small fee adjustments on top of the base
// range: momentum justifies a premium, decline a discount.
var trendMultipliers = map[model.Trend]float64{
	model.TrendExplosive: 1.15,
	model.TrendRapid:     1.10,
	model.TrendStrong:    1.05,
	model.TrendModerate:  1.02,
	model.TrendStable:    1.00,
	model.TrendDeclining: 0.95,
	model.TrendFalling:   0.90,
}

// TierForPopularity maps a 0-100 popularity score to a tier band.
func TierForPopularity(score float64) model.Tier {
	switch {
	case score >= 92:
		return model.TierMegaStar
	case score >= 80:
		return model.TierSuperstar
	case score >= 65:
		return model.TierStar
	case score >= 45:
		return model.TierEstablished
	case score >= 25:
		return model.TierDeveloping
	case score >= 12:
		return model.TierEmerging
	default:
		return model.TierUnderground
	}
}

// negotiationPower derives leverage from the trend alone: a rising
// artist books out, a falling one negotiates.
func negotiationPower(trend model.Trend) model.NegotiationPower {
	switch trend {
	case model.TrendExplosive, model.TrendRapid:
		return model.PowerHigh
	case model.TrendStrong, model.TrendModerate:
		return model.PowerMedium
	default:
		return model.PowerLow
	}
}

// optimalFee anchors negotiation toward the lower bound: opening near
// (min + 0.7*max)/1.7 leaves room to concede without leaving the range.
func optimalFee(min, max float64) int64 {
	return int64(math.Round((min + max*0.7) / 1.7))
}

// advancedEstimator is the primary scoring path.
type advancedEstimator struct{}

// Estimate implements Estimator. It errors when no usable signal exists
// so the caller can route to the fallback.
func (advancedEstimator) Estimate(m model.ArtistMetrics, trend model.Trend) (Quote, error) {
	b := breakdown(m)
	if b.empty() {
		return Quote{}, fmt.Errorf("fees: no usable popularity signals for %q", m.Name)
	}

	score := b.score()
	tier := TierForPopularity(score)

	base, ok := baseFees[tier]
	if !ok {
		return Quote{}, fmt.Errorf("fees: no base range for tier %q", tier)
	}

	// Scanner hints are trusted reference data: they replace the
	// tier-derived base range, but trend and engagement still adjust.
	if hint := m.ScannerHint; hint != nil && hint.FeeMax > 0 && hint.FeeMax >= hint.FeeMin {
		base = feeRange{Min: hint.FeeMin, Max: hint.FeeMax}
		if hint.Tier != "" {
			tier = hint.Tier
		}
	}

	mult := trendMultipliers[trend]
	if mult == 0 {
		mult = 1.0
	}
	mult *= engagementMultiplier(m)

	feeMin := base.Min * mult
	feeMax := base.Max * mult

	return Quote{
		Tier:             tier,
		FeeMin:           int64(math.Round(feeMin)),
		FeeMax:           int64(math.Round(feeMax)),
		OptimalFee:       optimalFee(feeMin, feeMax),
		NegotiationPower: negotiationPower(trend),
		PopularityScore:  score,
		Method:           "advanced",
	}, nil
}

// engagementMultiplier nudges the fee by the social-to-streaming ratio,
// bounded to [0.9, 1.1] so engagement never dominates the base range.
func engagementMultiplier(m model.ArtistMetrics) float64 {
	if m.SpotifyMonthlyListeners <= 0 {
		return 1.0
	}
	ratio := float64(m.TotalSocialFollowers()) / float64(m.SpotifyMonthlyListeners)
	return clamp(0.9+0.2*math.Min(ratio/3, 1), 0.9, 1.1)
}

// fallbackEstimator is the degraded path: fixed additive point brackets
// per metric, no quality factor, and a conservative floor quote when no
// reliable data exists at all. It never fails.
type fallbackEstimator struct{}

// Estimate implements Estimator.
func (fallbackEstimator) Estimate(m model.ArtistMetrics, trend model.Trend) (Quote, error) {
	points := fallbackPoints(m)
	if points == 0 {
		// No reliable data at all: conservative emerging-range quote.
		return Quote{
			Tier:             model.TierEmerging,
			FeeMin:           800,
			FeeMax:           3_000,
			OptimalFee:       optimalFee(800, 3_000),
			NegotiationPower: model.PowerLow,
			Method:           "fallback",
		}, nil
	}

	tier := TierForPopularity(points)
	base := baseFees[tier]
	return Quote{
		Tier:             tier,
		FeeMin:           int64(base.Min),
		FeeMax:           int64(base.Max),
		OptimalFee:       optimalFee(base.Min, base.Max),
		NegotiationPower: negotiationPower(trend),
		PopularityScore:  points,
		Method:           "fallback",
	}, nil
}

// fallbackPoints is the simple additive bracket score.
func fallbackPoints(m model.ArtistMetrics) float64 {
	var points float64
	switch {
	case m.SpotifyMonthlyListeners >= 10_000_000:
		points += 45
	case m.SpotifyMonthlyListeners >= 1_000_000:
		points += 30
	case m.SpotifyMonthlyListeners >= 100_000:
		points += 20
	case m.SpotifyMonthlyListeners >= 10_000:
		points += 10
	case m.SpotifyMonthlyListeners > 0:
		points += 5
	}
	for _, followers := range []int64{m.YouTubeSubscribers, m.InstagramFollowers, m.TikTokFollowers} {
		switch {
		case followers >= 1_000_000:
			points += 12
		case followers >= 100_000:
			points += 8
		case followers >= 10_000:
			points += 4
		case followers > 0:
			points += 1
		}
	}
	switch n := len(m.KnownEvents); {
	case n >= 5:
		points += 10
	case n >= 1:
		points += 5
	}
	return points
}

// Service is the two-tier strategy: try the advanced estimator, route
// any failure (error or panic) to the fallback. Estimate never fails
// and never lets a panic escape.
type Service struct {
	primary  Estimator
	fallback Estimator
	logger   *slog.Logger
}

// NewService creates the standard advanced-with-fallback pairing.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		primary:  advancedEstimator{},
		fallback: fallbackEstimator{},
		logger:   logger,
	}
}

// Estimate returns a quote, degrading gracefully on any primary-path
// failure.
func (s *Service) Estimate(m model.ArtistMetrics, trend model.Trend) (q Quote) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("fees: advanced estimator panicked, using fallback",
				"artist", m.Name, "panic", r)
			q = s.mustFallback(m, trend)
		}
	}()

	q, err := s.primary.Estimate(m, trend)
	if err != nil {
		s.logger.Debug("fees: advanced estimator unavailable, using fallback",
			"artist", m.Name, "error", err)
		return s.mustFallback(m, trend)
	}
	return q
}

func (s *Service) mustFallback(m model.ArtistMetrics, trend model.Trend) Quote {
	q, err := s.fallback.Estimate(m, trend)
	if err != nil {
		// The fallback contract is to never fail; keep the promise
		// anyway with the most conservative possible quote.
		s.logger.Warn("fees: fallback estimator failed", "artist", m.Name, "error", err)
		return Quote{
			Tier:             model.TierEmerging,
			FeeMin:           800,
			FeeMax:           3_000,
			OptimalFee:       optimalFee(800, 3_000),
			NegotiationPower: model.PowerLow,
			Method:           "fallback",
		}
	}
	return q
}
