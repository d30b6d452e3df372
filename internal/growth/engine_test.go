package growth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stageradar/stageradar/internal/model"
)

var fixedNow = time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return New(WithNow(func() time.Time { return fixedNow }))
}

func snapshots(base time.Time, values ...int64) []model.Snapshot {
	out := make([]model.Snapshot, len(values))
	for i, v := range values {
		out[i] = model.Snapshot{Date: base.AddDate(0, i, 0), Value: v}
	}
	return out
}

func TestPredict_MonotonicityPositiveGrowth(t *testing.T) {
	e := newTestEngine()
	p := e.Predict(Input{
		Metric:     "spotify_monthly_listeners",
		Current:    40_000,
		Genre:      "trap",
		ArtistName: "Nova Lumen",
		Tier:       model.TierEmerging,
	})
	require.Greater(t, p.GrowthRateMonthly, 0.0)
	assert.GreaterOrEqual(t, p.Predicted30d, p.CurrentValue)
	assert.GreaterOrEqual(t, p.Predicted90d, p.Predicted30d)
	assert.GreaterOrEqual(t, p.Predicted180d, p.Predicted90d)
}

func TestPredict_MonotonicityNegativeGrowth(t *testing.T) {
	e := newTestEngine()
	base := fixedNow.AddDate(0, -6, 0)
	p := e.Predict(Input{
		Metric:     "spotify_monthly_listeners",
		Current:    60_000,
		History:    snapshots(base, 200_000, 160_000, 130_000, 100_000, 80_000, 60_000),
		Genre:      "classical",
		ArtistName: "Fading Echoes",
		Tier:       model.TierEstablished,
	})
	require.Less(t, p.GrowthRateMonthly, 0.0, "steep historical decline must dominate")
	assert.LessOrEqual(t, p.Predicted30d, p.CurrentValue)
	assert.LessOrEqual(t, p.Predicted90d, p.Predicted30d)
	assert.LessOrEqual(t, p.Predicted180d, p.Predicted90d)
	assert.True(t, p.Trend.Shrinking(), "trend %s should be shrinking", p.Trend)
}

func TestPredict_Deterministic(t *testing.T) {
	e := newTestEngine()
	in := Input{
		Metric:      "spotify_monthly_listeners",
		Current:     150_000,
		History:     snapshots(fixedNow.AddDate(0, -3, 0), 100_000, 120_000, 150_000),
		Genre:       "house",
		ArtistName:  "Deterministic Dan",
		SocialTotal: 300_000,
		TikTok:      90_000,
		Tier:        model.TierDeveloping,
	}
	first := e.Predict(in)
	second := e.Predict(in)
	assert.Equal(t, first, second, "identical inputs and clock must yield bit-identical output")
}

func TestPredict_EntropyDifferentiatesArtists(t *testing.T) {
	e := newTestEngine()
	in := Input{
		Metric:  "spotify_monthly_listeners",
		Current: 50_000,
		Genre:   "techno",
		Tier:    model.TierDeveloping,
	}
	a, b := in, in
	a.ArtistName = "Artist Alpha"
	b.ArtistName = "Artist Beta"
	assert.NotEqual(t, e.Predict(a).GrowthRateMonthly, e.Predict(b).GrowthRateMonthly,
		"identical coarse inputs must still differentiate by artist name")
}

func TestPredict_NeverExactlyFlat(t *testing.T) {
	e := newTestEngine()
	p := e.Predict(Input{
		Metric:     "spotify_monthly_listeners",
		Current:    3_000_000,
		Genre:      "classical",
		ArtistName: "Steady Eddy",
		Tier:       model.TierSuperstar,
	})
	assert.NotZero(t, p.GrowthRateMonthly)
}

func TestPredict_TierCeilingCaps(t *testing.T) {
	e := newTestEngine()
	base := fixedNow.AddDate(0, -2, 0)
	// Explosive history on a superstar: ceiling must cap the rate at 5%.
	p := e.Predict(Input{
		Metric:     "spotify_monthly_listeners",
		Current:    40_000_000,
		History:    snapshots(base, 10_000_000, 25_000_000, 40_000_000),
		Genre:      "pop",
		ArtistName: "Mega Star",
		Tier:       model.TierSuperstar,
	})
	assert.LessOrEqual(t, p.GrowthRateMonthly, 5.0+1e-9)
}

func TestPredict_ConfidenceRisesWithHistory(t *testing.T) {
	e := newTestEngine()
	in := Input{
		Metric:     "spotify_monthly_listeners",
		Current:    80_000,
		Genre:      "indie",
		ArtistName: "History Buff",
		Tier:       model.TierDeveloping,
	}

	noHist := e.Predict(in)

	in.History = snapshots(fixedNow.AddDate(0, -2, 0), 70_000, 75_000, 80_000)
	shortHist := e.Predict(in)

	in.History = snapshots(fixedNow.AddDate(0, -6, 0), 50_000, 55_000, 62_000, 68_000, 74_000, 80_000)
	longHist := e.Predict(in)

	assert.Greater(t, shortHist.Confidence, noHist.Confidence)
	assert.Greater(t, longHist.Confidence, shortHist.Confidence)
	assert.LessOrEqual(t, longHist.Confidence, 0.95)
}

func TestPredict_ZeroCurrentDoesNotPanic(t *testing.T) {
	e := newTestEngine()
	assert.NotPanics(t, func() {
		p := e.Predict(Input{Metric: "m", ArtistName: "Nobody Yet", Genre: "unknown-genre"})
		assert.Zero(t, p.Predicted30d)
	})
}

func TestTrendForRate(t *testing.T) {
	tests := []struct {
		rate float64
		want model.Trend
	}{
		{0.60, model.TrendExplosive},
		{0.30, model.TrendRapid},
		{0.15, model.TrendStrong},
		{0.06, model.TrendModerate},
		{0.00, model.TrendStable},
		{-0.05, model.TrendDeclining},
		{-0.20, model.TrendFalling},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, model.TrendForRate(tt.rate), "rate %v", tt.rate)
	}
}

func TestEntityEntropy(t *testing.T) {
	a := entityEntropy("Daft Punk")
	assert.Equal(t, a, entityEntropy("  daft punk "), "case and whitespace insensitive")
	assert.GreaterOrEqual(t, a, -0.1)
	assert.LessOrEqual(t, a, 0.1)
	assert.NotEqual(t, a, entityEntropy("Justice"))
}

func TestLookupGenre(t *testing.T) {
	assert.Equal(t, genreProfiles["rap"], lookupGenre(genreProfiles, "Hip-Hop"))
	assert.Equal(t, genreProfiles["rap"], lookupGenre(genreProfiles, "french rap"))
	assert.Equal(t, genreProfiles["default"], lookupGenre(genreProfiles, "sea shanty"))
	assert.Equal(t, genreProfiles["edm"], lookupGenre(genreProfiles, "Electro"))
}

func TestSeasonalFactorPeaksInJuly(t *testing.T) {
	july := seasonalFactor(seasonalFactors, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	december := seasonalFactor(seasonalFactors, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC))
	for m := time.January; m <= time.December; m++ {
		f := seasonalFactors[m]
		assert.LessOrEqual(t, f, july)
		assert.GreaterOrEqual(t, f, december)
	}
}
