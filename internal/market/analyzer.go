// Package market derives qualitative SWOT analysis, risk and
// opportunity scores, and an overall 0-100 rating from the outputs of
// the growth and fee engines. Pure rule-table derivation: no I/O, no
// state, no randomness.
package market

import (
	"fmt"
	"math"

	"github.com/stageradar/stageradar/internal/model"
)

// Input bundles everything the analyzer derives from.
type Input struct {
	Metrics        model.ArtistMetrics
	Tier           model.Tier
	ListenerTrend  model.TrendPrediction
	SocialTrend    model.TrendPrediction
	GenreBenchmark float64
}

// Analysis is the analyzer's immutable output.
type Analysis struct {
	Market           model.MarketAnalysis
	RiskScore        float64
	RiskFactors      []string
	OpportunityScore float64
	KeyOpportunities []string
	OverallScore     float64
}

// tierBaseScores feeds the overall rating: where the career stage
// alone would place the artist on a 0-100 scale.
var tierBaseScores = map[model.Tier]float64{
	model.TierUnderground: 20,
	model.TierEmerging:    30,
	model.TierDeveloping:  45,
	model.TierEstablished: 60,
	model.TierStar:        75,
	model.TierSuperstar:   85,
	model.TierMegaStar:    90,
}

var positionBonuses = map[model.MarketPosition]float64{
	model.PositionLeader:      10,
	model.PositionContender:   5,
	model.PositionCompetitive: 0,
	model.PositionDeveloping:  -5,
}

// Analyze runs the full derivation.
func Analyze(in Input) Analysis {
	ratio := benchmarkRatio(in.Metrics.SpotifyMonthlyListeners, in.GenreBenchmark)
	position := positionFor(ratio)

	market := model.MarketAnalysis{
		Position:       position,
		BenchmarkRatio: math.Round(ratio*100) / 100,
		RankEstimate:   rankEstimate(position, ratio),
	}
	swot(&market, in)

	riskScore, riskFactors := risk(in)
	oppScore, opportunities := opportunity(in, position)

	overall := tierBaseScores[in.Tier] +
		clamp(in.ListenerTrend.GrowthRateMonthly, -10, 15) +
		positionBonuses[position] +
		(oppScore-riskScore)*10

	return Analysis{
		Market:           market,
		RiskScore:        riskScore,
		RiskFactors:      riskFactors,
		OpportunityScore: oppScore,
		KeyOpportunities: opportunities,
		OverallScore:     math.Round(clamp(overall, 0, 100)*10) / 10,
	}
}

func benchmarkRatio(listeners int64, benchmark float64) float64 {
	if benchmark <= 0 {
		return 0
	}
	return float64(listeners) / benchmark
}

func positionFor(ratio float64) model.MarketPosition {
	switch {
	case ratio >= 2.0:
		return model.PositionLeader
	case ratio >= 0.8:
		return model.PositionContender
	case ratio >= 0.2:
		return model.PositionCompetitive
	default:
		return model.PositionDeveloping
	}
}

func rankEstimate(position model.MarketPosition, ratio float64) string {
	switch position {
	case model.PositionLeader:
		return "top 5% of genre"
	case model.PositionContender:
		return "top 20% of genre"
	case model.PositionCompetitive:
		return "mid-field of genre"
	default:
		if ratio <= 0 {
			return "unranked"
		}
		return "emerging in genre"
	}
}

// swot fills the four rule-triggered lists.
func swot(market *model.MarketAnalysis, in Input) {
	listeners := in.Metrics.SpotifyMonthlyListeners
	social := in.Metrics.TotalSocialFollowers()

	if in.Tier.Rank() >= model.TierStar.Rank() {
		market.Strengths = append(market.Strengths, "established fan base")
	}
	if in.ListenerTrend.Trend == model.TrendExplosive || in.ListenerTrend.Trend == model.TrendRapid {
		market.Strengths = append(market.Strengths, "strong audience momentum")
	}
	if listeners > 0 && float64(social) > 1.5*float64(listeners) {
		market.Strengths = append(market.Strengths, "engaged cross-platform audience")
	}

	if listeners > 0 && float64(social) < 0.5*float64(listeners) {
		market.Weaknesses = append(market.Weaknesses, "low social engagement")
	}
	if len(in.Metrics.ListenerHistory) < 2 {
		market.Weaknesses = append(market.Weaknesses, "limited trend history")
	}
	if in.Tier == model.TierUnderground {
		market.Weaknesses = append(market.Weaknesses, "minimal market presence")
	}

	if in.ListenerTrend.Trend.Rising() {
		market.Opportunities = append(market.Opportunities, "capitalize on current growth window")
	}
	if in.Metrics.TikTokFollowers > 0 && float64(in.Metrics.TikTokFollowers) > 0.5*float64(maxInt64(listeners, 1)) {
		market.Opportunities = append(market.Opportunities, "viral-platform upside on TikTok")
	}

	if in.ListenerTrend.Trend.Shrinking() {
		market.Threats = append(market.Threats, "audience erosion")
	}
	if historicalVolatility(in.Metrics.ListenerHistory) > 0.3 {
		market.Threats = append(market.Threats, "unstable audience swings")
	}
}

// risk starts at a 0.3 baseline and accumulates rule triggers,
// clamped to [0,1].
func risk(in Input) (float64, []string) {
	score := 0.3
	var factors []string

	if in.ListenerTrend.Trend.Shrinking() {
		score += 0.25
		factors = append(factors, "declining listener base")
	}
	if in.SocialTrend.Trend.Shrinking() {
		score += 0.15
		factors = append(factors, "declining social reach")
	}
	if in.Tier == model.TierUnderground {
		score += 0.20
		factors = append(factors, "unproven market tier")
	}
	if v := historicalVolatility(in.Metrics.ListenerHistory); v > 0.3 {
		score += 0.15
		factors = append(factors, fmt.Sprintf("high audience volatility (%.2f)", v))
	}
	return clamp(score, 0, 1), factors
}

// opportunity starts at a 0.4 baseline.
func opportunity(in Input, position model.MarketPosition) (float64, []string) {
	score := 0.4
	var opps []string

	switch in.ListenerTrend.Trend {
	case model.TrendExplosive, model.TrendRapid, model.TrendStrong:
		score += 0.30
		opps = append(opps, "book now before fees catch up with growth")
	}
	if (in.Tier == model.TierEmerging || in.Tier == model.TierDeveloping) && in.ListenerTrend.Trend.Rising() {
		score += 0.15
		opps = append(opps, "rising tier, lock multi-date deals early")
	}
	if position == model.PositionLeader {
		opps = append(opps, "headline positioning within genre")
	} else if position == model.PositionDeveloping && in.SocialTrend.Trend.Rising() {
		opps = append(opps, "social momentum ahead of streaming, conversion play")
	}
	if len(opps) > 2 {
		opps = opps[:2]
	}
	return clamp(score, 0, 1), opps
}

// historicalVolatility is stdev/mean over up to the last six snapshots.
// Zero when fewer than two usable points exist.
func historicalVolatility(history []model.Snapshot) float64 {
	var values []float64
	for _, s := range history {
		if s.Value > 0 {
			values = append(values, float64(s.Value))
		}
	}
	if len(values) < 2 {
		return 0
	}
	if len(values) > 6 {
		values = values[len(values)-6:]
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
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
