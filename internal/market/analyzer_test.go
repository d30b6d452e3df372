package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stageradar/stageradar/internal/model"
)

func TestPositionFor(t *testing.T) {
	tests := []struct {
		ratio float64
		want  model.MarketPosition
	}{
		{3.0, model.PositionLeader},
		{2.0, model.PositionLeader},
		{1.0, model.PositionContender},
		{0.8, model.PositionContender},
		{0.5, model.PositionCompetitive},
		{0.2, model.PositionCompetitive},
		{0.1, model.PositionDeveloping},
		{0, model.PositionDeveloping},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, positionFor(tt.ratio), "ratio %.2f", tt.ratio)
	}
}

func TestAnalyze_LeaderVsDeveloping(t *testing.T) {
	leader := Analyze(Input{
		Metrics:        model.ArtistMetrics{Name: "Big", SpotifyMonthlyListeners: 2_000_000},
		Tier:           model.TierStar,
		ListenerTrend:  model.TrendPrediction{Trend: model.TrendModerate, GrowthRateMonthly: 6},
		SocialTrend:    model.TrendPrediction{Trend: model.TrendStable},
		GenreBenchmark: 500_000,
	})
	small := Analyze(Input{
		Metrics:        model.ArtistMetrics{Name: "Small", SpotifyMonthlyListeners: 20_000},
		Tier:           model.TierEmerging,
		ListenerTrend:  model.TrendPrediction{Trend: model.TrendStable, GrowthRateMonthly: 1},
		SocialTrend:    model.TrendPrediction{Trend: model.TrendStable},
		GenreBenchmark: 500_000,
	})

	assert.Equal(t, model.PositionLeader, leader.Market.Position)
	assert.Equal(t, model.PositionDeveloping, small.Market.Position)
	assert.Greater(t, leader.OverallScore, small.OverallScore)
	assert.InDelta(t, 4.0, leader.Market.BenchmarkRatio, 0.001)
}

func TestAnalyze_RiskAccumulation(t *testing.T) {
	calm := Analyze(Input{
		Metrics:        model.ArtistMetrics{SpotifyMonthlyListeners: 400_000},
		Tier:           model.TierEstablished,
		ListenerTrend:  model.TrendPrediction{Trend: model.TrendStable},
		SocialTrend:    model.TrendPrediction{Trend: model.TrendStable},
		GenreBenchmark: 500_000,
	})
	require.InDelta(t, 0.3, calm.RiskScore, 0.001)
	assert.Empty(t, calm.RiskFactors)

	troubled := Analyze(Input{
		Metrics:        model.ArtistMetrics{SpotifyMonthlyListeners: 5_000},
		Tier:           model.TierUnderground,
		ListenerTrend:  model.TrendPrediction{Trend: model.TrendFalling},
		SocialTrend:    model.TrendPrediction{Trend: model.TrendDeclining},
		GenreBenchmark: 500_000,
	})
	// 0.3 base + 0.25 listeners falling + 0.15 social declining + 0.20 underground
	require.InDelta(t, 0.9, troubled.RiskScore, 0.001)
	assert.Len(t, troubled.RiskFactors, 3)
	assert.Greater(t, troubled.RiskScore, calm.RiskScore)
}

func TestAnalyze_RiskClampedToOne(t *testing.T) {
	history := []model.Snapshot{
		{Value: 100_000}, {Value: 20_000}, {Value: 150_000}, {Value: 30_000},
	}
	out := Analyze(Input{
		Metrics:        model.ArtistMetrics{SpotifyMonthlyListeners: 5_000, ListenerHistory: history},
		Tier:           model.TierUnderground,
		ListenerTrend:  model.TrendPrediction{Trend: model.TrendFalling},
		SocialTrend:    model.TrendPrediction{Trend: model.TrendFalling},
		GenreBenchmark: 500_000,
	})
	assert.InDelta(t, 1.0, out.RiskScore, 0.001)
	assert.Len(t, out.RiskFactors, 4)
}

func TestAnalyze_OpportunityRules(t *testing.T) {
	riser := Analyze(Input{
		Metrics:        model.ArtistMetrics{SpotifyMonthlyListeners: 60_000},
		Tier:           model.TierDeveloping,
		ListenerTrend:  model.TrendPrediction{Trend: model.TrendRapid, GrowthRateMonthly: 30},
		SocialTrend:    model.TrendPrediction{Trend: model.TrendModerate},
		GenreBenchmark: 500_000,
	})
	// 0.4 base + 0.3 strong trend + 0.15 rising tier
	assert.InDelta(t, 0.85, riser.OpportunityScore, 0.001)
	assert.NotEmpty(t, riser.KeyOpportunities)
	assert.LessOrEqual(t, len(riser.KeyOpportunities), 2)

	flat := Analyze(Input{
		Metrics:        model.ArtistMetrics{SpotifyMonthlyListeners: 60_000},
		Tier:           model.TierEstablished,
		ListenerTrend:  model.TrendPrediction{Trend: model.TrendStable},
		SocialTrend:    model.TrendPrediction{Trend: model.TrendStable},
		GenreBenchmark: 500_000,
	})
	assert.InDelta(t, 0.4, flat.OpportunityScore, 0.001)
	assert.Greater(t, riser.OpportunityScore, flat.OpportunityScore)
}

func TestAnalyze_OverallBounds(t *testing.T) {
	best := Analyze(Input{
		Metrics:        model.ArtistMetrics{SpotifyMonthlyListeners: 50_000_000},
		Tier:           model.TierMegaStar,
		ListenerTrend:  model.TrendPrediction{Trend: model.TrendExplosive, GrowthRateMonthly: 60},
		SocialTrend:    model.TrendPrediction{Trend: model.TrendExplosive},
		GenreBenchmark: 500_000,
	})
	worst := Analyze(Input{
		Metrics:        model.ArtistMetrics{},
		Tier:           model.TierUnderground,
		ListenerTrend:  model.TrendPrediction{Trend: model.TrendFalling, GrowthRateMonthly: -40},
		SocialTrend:    model.TrendPrediction{Trend: model.TrendFalling},
		GenreBenchmark: 500_000,
	})

	assert.LessOrEqual(t, best.OverallScore, 100.0)
	assert.GreaterOrEqual(t, worst.OverallScore, 0.0)
	assert.Greater(t, best.OverallScore, worst.OverallScore)
}

func TestHistoricalVolatility(t *testing.T) {
	assert.Zero(t, historicalVolatility(nil))
	assert.Zero(t, historicalVolatility([]model.Snapshot{{Value: 100}}))

	steady := historicalVolatility([]model.Snapshot{
		{Value: 100}, {Value: 101}, {Value: 102}, {Value: 103},
	})
	assert.Less(t, steady, 0.05)

	wild := historicalVolatility([]model.Snapshot{
		{Value: 100}, {Value: 400}, {Value: 50}, {Value: 300},
	})
	assert.Greater(t, wild, 0.3)
}

func TestSWOT_Triggers(t *testing.T) {
	out := Analyze(Input{
		Metrics: model.ArtistMetrics{
			SpotifyMonthlyListeners: 100_000,
			InstagramFollowers:      200_000,
			TikTokFollowers:         120_000,
		},
		Tier:           model.TierDeveloping,
		ListenerTrend:  model.TrendPrediction{Trend: model.TrendRapid},
		SocialTrend:    model.TrendPrediction{Trend: model.TrendModerate},
		GenreBenchmark: 500_000,
	})
	assert.Contains(t, out.Market.Strengths, "strong audience momentum")
	assert.Contains(t, out.Market.Strengths, "engaged cross-platform audience")
	assert.Contains(t, out.Market.Opportunities, "capitalize on current growth window")
	assert.Contains(t, out.Market.Opportunities, "viral-platform upside on TikTok")
	assert.Empty(t, out.Market.Threats)
}
