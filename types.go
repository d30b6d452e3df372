package stageradar

import (
	"time"

	"github.com/google/uuid"

	"github.com/stageradar/stageradar/internal/model"
)

// Grade is the letter grade assigned to a scored lead, A+ best.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

var gradeRanks = map[Grade]int{
	GradeAPlus: 7,
	GradeA:     6,
	GradeBPlus: 5,
	GradeB:     4,
	GradeC:     3,
	GradeD:     2,
	GradeF:     1,
}

// AtLeast reports whether g is equal to or better than min. Unknown
// grades rank below F.
func (g Grade) AtLeast(min Grade) bool { return gradeRanks[g] >= gradeRanks[min] }

// TimingBucket classifies how a lead's deadline relates to now.
type TimingBucket string

const (
	TimingUrgent  TimingBucket = "urgent"
	TimingOptimal TimingBucket = "optimal"
	TimingGood    TimingBucket = "good"
	TimingEarly   TimingBucket = "early"
	TimingLate    TimingBucket = "late"
	TimingUnknown TimingBucket = "unknown"
)

// Trend classifies a monthly audience growth rate.
type Trend string

const (
	TrendExplosive Trend = "explosive"
	TrendRapid     Trend = "rapid"
	TrendStrong    Trend = "strong"
	TrendModerate  Trend = "moderate"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
	TrendFalling   Trend = "falling"
)

// Tier is an artist's career-stage bucket, smallest audience first.
type Tier string

const (
	TierUnderground Tier = "underground"
	TierEmerging    Tier = "emerging"
	TierDeveloping  Tier = "developing"
	TierEstablished Tier = "established"
	TierStar        Tier = "star"
	TierSuperstar   Tier = "superstar"
	TierMegaStar    Tier = "mega-star"
)

// Contact is a point of contact attached to a lead.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Location is where the opportunity takes place.
type Location struct {
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
}

// Candidate is a raw lead as produced by the caller's ingestion layer.
// Title is the only required field; the scorer degrades every missing
// field to a neutral contribution instead of failing.
type Candidate struct {
	ExternalID   string     `json:"external_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Organization string     `json:"organization,omitempty"`
	URL          string     `json:"url,omitempty"`
	AltURLs      []string   `json:"alt_urls,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`

	Deadline     *time.Time `json:"deadline,omitempty"`
	DeadlineText string     `json:"deadline_text,omitempty"`
	EventDate    *time.Time `json:"event_date,omitempty"`

	Location Location `json:"location,omitempty"`

	Budget      *float64  `json:"budget,omitempty"`
	BudgetText  string    `json:"budget_text,omitempty"`
	PricePoints []float64 `json:"price_points,omitempty"`

	Contacts   []Contact `json:"contacts,omitempty"`
	Conditions string    `json:"conditions,omitempty"`

	Source     string `json:"source,omitempty"`
	SourceType string `json:"source_type,omitempty"`
}

// ScoringResult is the immutable output of one lead scoring call.
type ScoringResult struct {
	TotalScore      float64            `json:"total_score"`
	Grade           Grade              `json:"grade"`
	Timing          TimingBucket       `json:"timing"`
	Breakdown       map[string]float64 `json:"breakdown"`
	Recommendations []string           `json:"recommendations"`
	Warnings        []string           `json:"warnings"`
}

// ScoredLead pairs a candidate with its scoring result.
type ScoredLead struct {
	Candidate Candidate     `json:"candidate"`
	Result    ScoringResult `json:"result"`
}

// StoredLead is a previously accepted lead held by the record store.
type StoredLead struct {
	ID           uuid.UUID  `json:"id"`
	ExternalID   string     `json:"external_id,omitempty"`
	URL          string     `json:"url,omitempty"`
	Title        string     `json:"title"`
	Organization string     `json:"organization,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Fingerprint  string     `json:"fingerprint,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// DuplicateDecision is the outcome of a duplicate check.
type DuplicateDecision struct {
	IsDuplicate bool        `json:"is_duplicate"`
	Matched     *StoredLead `json:"matched,omitempty"`
	Similarity  float64     `json:"similarity"`

	// PossibleDuplicate flags a fuzzy title match that crossed the
	// similarity threshold without an exact identifier match; route
	// these to human review instead of silently merging.
	PossibleDuplicate bool `json:"possible_duplicate,omitempty"`
}

// Profile describes the agency whose interests drive lead scoring.
type Profile struct {
	Specialties         []string `json:"specialties,omitempty"`
	BudgetMin           float64  `json:"budget_min"`
	BudgetMax           float64  `json:"budget_max"`
	PreferredLocations  []string `json:"preferred_locations,omitempty"`
	PreferredEventTypes []string `json:"preferred_event_types,omitempty"`
	AvoidKeywords       []string `json:"avoid_keywords,omitempty"`
}

// Snapshot is one historical observation of a metric.
type Snapshot struct {
	Date  time.Time `json:"date"`
	Value int64     `json:"value"`
}

// KnownEvent is a past or announced live appearance, used as a
// live-performance signal in fee estimation.
type KnownEvent struct {
	Name          string     `json:"name,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	VenueCapacity int        `json:"venue_capacity,omitempty"`
	Festival      bool       `json:"festival,omitempty"`
}

// FeeHint is externally supplied reference fee data. When present it
// overrides the internally derived tier base range.
type FeeHint struct {
	FeeMin float64 `json:"fee_min"`
	FeeMax float64 `json:"fee_max"`
	Tier   Tier    `json:"tier,omitempty"`
}

// ArtistMetrics is the full social/streaming input for one artist
// analysis. The engine never fetches metrics itself.
type ArtistMetrics struct {
	Name    string `json:"name"`
	Genre   string `json:"genre,omitempty"`
	Country string `json:"country,omitempty"`

	SpotifyMonthlyListeners int64 `json:"spotify_monthly_listeners"`
	SpotifyFollowers        int64 `json:"spotify_followers"`
	YouTubeSubscribers      int64 `json:"youtube_subscribers"`
	InstagramFollowers      int64 `json:"instagram_followers"`
	TikTokFollowers         int64 `json:"tiktok_followers"`

	ListenerHistory []Snapshot `json:"listener_history,omitempty"`
	SocialHistory   []Snapshot `json:"social_history,omitempty"`

	KnownEvents []KnownEvent `json:"known_events,omitempty"`

	ScannerHint *FeeHint `json:"scanner_hint,omitempty"`
}

// TrendPrediction projects one audience metric forward.
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

// MarketAnalysis is the SWOT-style qualitative derivation.
type MarketAnalysis struct {
	Position       string   `json:"position"`
	BenchmarkRatio float64  `json:"benchmark_ratio"`
	RankEstimate   string   `json:"rank_estimate"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Opportunities  []string `json:"opportunities"`
	Threats        []string `json:"threats"`
}

// BookingIntelligence holds fee bounds and booking guidance.
type BookingIntelligence struct {
	FeeMin           int64              `json:"fee_min"`
	FeeMax           int64              `json:"fee_max"`
	OptimalFee       int64              `json:"optimal_fee"`
	NegotiationPower string             `json:"negotiation_power"`
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

// Report is the full artist intelligence aggregate.
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

// ---- conversions across the public/internal boundary ----
//
// The import graph enforces a strict no-cycle rule: stageradar (root)
// imports internal/*, but internal/* never imports the root. Public
// types are standalone structs; the converters live here because this
// is the only package that sees both sides.

func toModelCandidate(c Candidate) model.Candidate {
	contacts := make([]model.Contact, len(c.Contacts))
	for i, ct := range c.Contacts {
		contacts[i] = model.Contact(ct)
	}
	return model.Candidate{
		ExternalID:   c.ExternalID,
		Title:        c.Title,
		Description:  c.Description,
		Organization: c.Organization,
		URL:          c.URL,
		AltURLs:      c.AltURLs,
		PublishedAt:  c.PublishedAt,
		Deadline:     c.Deadline,
		DeadlineText: c.DeadlineText,
		EventDate:    c.EventDate,
		Location:     model.Location(c.Location),
		Budget:       c.Budget,
		BudgetText:   c.BudgetText,
		PricePoints:  c.PricePoints,
		Contacts:     contacts,
		Conditions:   c.Conditions,
		Source:       c.Source,
		SourceType:   c.SourceType,
	}
}

func toModelMetrics(m ArtistMetrics) model.ArtistMetrics {
	out := model.ArtistMetrics{
		Name:                    m.Name,
		Genre:                   m.Genre,
		Country:                 m.Country,
		SpotifyMonthlyListeners: m.SpotifyMonthlyListeners,
		SpotifyFollowers:        m.SpotifyFollowers,
		YouTubeSubscribers:      m.YouTubeSubscribers,
		InstagramFollowers:      m.InstagramFollowers,
		TikTokFollowers:         m.TikTokFollowers,
		ListenerHistory:         toModelSnapshots(m.ListenerHistory),
		SocialHistory:           toModelSnapshots(m.SocialHistory),
	}
	for _, e := range m.KnownEvents {
		out.KnownEvents = append(out.KnownEvents, model.KnownEvent(e))
	}
	if m.ScannerHint != nil {
		out.ScannerHint = &model.FeeHint{
			FeeMin: m.ScannerHint.FeeMin,
			FeeMax: m.ScannerHint.FeeMax,
			Tier:   model.Tier(m.ScannerHint.Tier),
		}
	}
	return out
}

func toModelSnapshots(in []Snapshot) []model.Snapshot {
	if in == nil {
		return nil
	}
	out := make([]model.Snapshot, len(in))
	for i, s := range in {
		out[i] = model.Snapshot(s)
	}
	return out
}

func toPublicScoringResult(r model.ScoringResult) ScoringResult {
	breakdown := make(map[string]float64, len(r.Breakdown))
	for comp, v := range r.Breakdown {
		breakdown[string(comp)] = v
	}
	return ScoringResult{
		TotalScore:      r.TotalScore,
		Grade:           Grade(r.Grade),
		Timing:          TimingBucket(r.Timing),
		Breakdown:       breakdown,
		Recommendations: r.Recommendations,
		Warnings:        r.Warnings,
	}
}

func toPublicStoredLead(rec *model.StoredRecord) *StoredLead {
	if rec == nil {
		return nil
	}
	out := StoredLead(*rec)
	return &out
}

func toModelStoredRecord(rec *StoredLead) *model.StoredRecord {
	if rec == nil {
		return nil
	}
	out := model.StoredRecord(*rec)
	return &out
}

func toPublicPrediction(p model.TrendPrediction) TrendPrediction {
	return TrendPrediction{
		Metric:            p.Metric,
		CurrentValue:      p.CurrentValue,
		Predicted30d:      p.Predicted30d,
		Predicted90d:      p.Predicted90d,
		Predicted180d:     p.Predicted180d,
		Confidence:        p.Confidence,
		GrowthRateMonthly: p.GrowthRateMonthly,
		Trend:             Trend(p.Trend),
	}
}

func toPublicReport(r *model.Report) *Report {
	if r == nil {
		return nil
	}
	return &Report{
		ID:         r.ID,
		ArtistName: r.ArtistName,
		Genre:      r.Genre,
		Country:    r.Country,
		Tier:       Tier(r.Tier),
		Market: MarketAnalysis{
			Position:       string(r.Market.Position),
			BenchmarkRatio: r.Market.BenchmarkRatio,
			RankEstimate:   r.Market.RankEstimate,
			Strengths:      r.Market.Strengths,
			Weaknesses:     r.Market.Weaknesses,
			Opportunities:  r.Market.Opportunities,
			Threats:        r.Market.Threats,
		},
		ListenerPrediction: toPublicPrediction(r.ListenerPrediction),
		SocialPrediction:   toPublicPrediction(r.SocialPrediction),
		OverallTrend:       Trend(r.OverallTrend),
		Booking: BookingIntelligence{
			FeeMin:           r.Booking.FeeMin,
			FeeMax:           r.Booking.FeeMax,
			OptimalFee:       r.Booking.OptimalFee,
			NegotiationPower: string(r.Booking.NegotiationPower),
			BookingWindow:    r.Booking.BookingWindow,
			EventTypes:       r.Booking.EventTypes,
			Territories:      r.Booking.Territories,
			Seasonal:         r.Booking.Seasonal,
		},
		Content: ContentStrategy{
			RecommendedPlatforms: r.Content.RecommendedPlatforms,
			EngagementRate:       r.Content.EngagementRate,
			ViralPotential:       r.Content.ViralPotential,
			Recommendations:      r.Content.Recommendations,
		},
		RiskScore:        r.RiskScore,
		RiskFactors:      r.RiskFactors,
		OpportunityScore: r.OpportunityScore,
		KeyOpportunities: r.KeyOpportunities,
		OverallScore:     r.OverallScore,
		ConfidenceScore:  r.ConfidenceScore,
		Summary:          r.Summary,
		Recommendations:  r.Recommendations,
		GeneratedAt:      r.GeneratedAt,
	}
}
