package model

import (
	"time"

	"github.com/google/uuid"
)

// MarketPosition places an artist relative to their genre benchmark.
type MarketPosition string

// Market positions, strongest first.
const (
	PositionLeader      MarketPosition = "leader"
	PositionContender   MarketPosition = "contender"
	PositionCompetitive MarketPosition = "competitive"
	PositionDeveloping  MarketPosition = "developing"
)

// NegotiationPower indicates how firmly the agency can hold on fees.
type NegotiationPower string

// Negotiation power levels.
const (
	PowerHigh   NegotiationPower = "high"
	PowerMedium NegotiationPower = "medium"
	PowerLow    NegotiationPower = "low"
)

// MarketAnalysis is the SWOT-style qualitative derivation.
type MarketAnalysis struct {
	Position       MarketPosition `json:"position"`
	BenchmarkRatio float64        `json:"benchmark_ratio"`
	RankEstimate   string         `json:"rank_estimate"`
	Strengths      []string       `json:"strengths"`
	Weaknesses     []string       `json:"weaknesses"`
	Opportunities  []string       `json:"opportunities"`
	Threats        []string       `json:"threats"`
}

// BookingIntelligence holds fee bounds and booking guidance.
type BookingIntelligence struct {
	FeeMin           int64              `json:"fee_min"`
	FeeMax           int64              `json:"fee_max"`
	OptimalFee       int64              `json:"optimal_fee"`
	NegotiationPower NegotiationPower   `json:"negotiation_power"`
	BookingWindow    string             `json:"booking_window"`
	EventTypes       map[string]float64 `json:"event_type_multipliers"`
	Territories      map[string]float64 `json:"territory_multipliers"`
	Seasonal         map[string]float64 `json:"seasonal_multipliers"`
}

// ContentStrategy holds platform and engagement guidance.
type ContentStrategy struct {
	RecommendedPlatforms []string `json:"recommended_platforms"`
	EngagementRate       float64  `json:"engagement_rate"`
	ViralPotential       float64  `json:"viral_potential"`
	Recommendations      []string `json:"recommendations"`
}

// Report is the full artist intelligence aggregate. Created once per
// analysis invocation and never mutated afterward; cacheable by
// lowercased artist name with caller-decided freshness.
type Report struct {
	ID         uuid.UUID `json:"id"`
	ArtistName string    `json:"artist_name"`
	Genre      string    `json:"genre,omitempty"`
	Country    string    `json:"country,omitempty"`

	Tier               Tier                `json:"tier"`
	Market             MarketAnalysis      `json:"market_analysis"`
	ListenerPrediction TrendPrediction     `json:"listener_prediction"`
	SocialPrediction   TrendPrediction     `json:"social_prediction"`
	OverallTrend       Trend               `json:"overall_trend"`
	Booking            BookingIntelligence `json:"booking_intelligence"`
	Content            ContentStrategy     `json:"content_strategy"`

	RiskScore        float64  `json:"risk_score"`
	RiskFactors      []string `json:"risk_factors"`
	OpportunityScore float64  `json:"opportunity_score"`
	KeyOpportunities []string `json:"key_opportunities"`

	OverallScore    float64  `json:"overall_score"`
	ConfidenceScore float64  `json:"confidence_score"`
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`

	GeneratedAt time.Time `json:"generated_at"`
}
