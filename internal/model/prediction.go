package model

import "time"

// Trend classifies a monthly growth rate.
type Trend string

// Trends, fastest-growing to fastest-shrinking.
const (
	TrendExplosive Trend = "explosive"
	TrendRapid     Trend = "rapid"
	TrendStrong    Trend = "strong"
	TrendModerate  Trend = "moderate"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
	TrendFalling   Trend = "falling"
)

// TrendForRate maps a monthly growth rate (fraction, not percent)
// to its trend classification.
func TrendForRate(rate float64) Trend {
	switch {
	case rate > 0.50:
		return TrendExplosive
	case rate > 0.25:
		return TrendRapid
	case rate > 0.12:
		return TrendStrong
	case rate > 0.04:
		return TrendModerate
	case rate > -0.02:
		return TrendStable
	case rate > -0.10:
		return TrendDeclining
	default:
		return TrendFalling
	}
}

// Rising reports whether the trend indicates audience growth.
func (t Trend) Rising() bool {
	switch t {
	case TrendExplosive, TrendRapid, TrendStrong, TrendModerate:
		return true
	}
	return false
}

// Shrinking reports whether the trend indicates audience loss.
func (t Trend) Shrinking() bool {
	return t == TrendDeclining || t == TrendFalling
}

// Snapshot is one historical observation of a metric.
type Snapshot struct {
	Date  time.Time `json:"date"`
	Value int64     `json:"value"`
}

// TrendPrediction is the immutable output of one growth prediction.
//
// Invariant: for a positive GrowthRateMonthly the 30/90/180-day
// projections are monotonically non-decreasing and all at least
// CurrentValue; for a negative rate the reverse holds.
type TrendPrediction struct {
	Metric            string  `json:"metric"`
	CurrentValue      int64   `json:"current_value"`
	Predicted30d      int64   `json:"predicted_30d"`
	Predicted90d      int64   `json:"predicted_90d"`
	Predicted180d     int64   `json:"predicted_180d"`
	Confidence        float64 `json:"confidence"`
	GrowthRateMonthly float64 `json:"growth_rate_monthly"` // percent, signed
	Trend             Trend   `json:"trend"`
}
