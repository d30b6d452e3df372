// Package stageradar is the public API for the StageRadar lead scoring
// and artist intelligence core.
//
// Host applications (scrapers, CRMs, booking tools) import this package
// to score incoming leads, check them against already-accepted ones,
// and build artist growth/fee reports from metrics they supply:
//
//	eng, err := stageradar.New(
//	    stageradar.WithLogger(logger),
//	    stageradar.WithProfile(myAgency),
//	    stageradar.WithRecordStore(myStore),
//	)
//	if err != nil { ... }
//	result := eng.ScoreLead(lead)
//	report, err := eng.AnalyzeArtist(ctx, metrics, false)
//
// The engine is pure computation: it never performs network or disk
// I/O. Everything it scores or analyzes arrives as an argument.
package stageradar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/stageradar/stageradar/internal/config"
	"github.com/stageradar/stageradar/internal/dedup"
	"github.com/stageradar/stageradar/internal/fees"
	"github.com/stageradar/stageradar/internal/growth"
	"github.com/stageradar/stageradar/internal/market"
	"github.com/stageradar/stageradar/internal/model"
	"github.com/stageradar/stageradar/internal/reportcache"
	"github.com/stageradar/stageradar/internal/scoring"
)

// ErrReadOnlyStore is returned by RememberLead when a caller-supplied
// record store is in use; persisting leads is then the caller's job.
var ErrReadOnlyStore = errors.New("stageradar: external record store is read-only")

// Engine bundles the lead scorer, deduplicator, growth predictor, fee
// estimator, and market analyzer behind one facade. Construct with
// New(). Safe for concurrent use.
type Engine struct {
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time

	scorer *scoring.Scorer
	dedup  *dedup.Deduplicator
	mem    *dedup.MemoryStore // nil when the caller brought a store
	growth *growth.Engine
	fees   *fees.Service
	cache  *reportcache.Cache

	maxParallel int
}

// New initialises the engine from environment configuration plus
// options. It performs no I/O beyond an optional .env load and starts
// no goroutines.
func New(opts ...Option) (*Engine, error) {
	o := resolvedOptions{}
	for _, fn := range opts {
		fn(&o)
	}

	if !o.skipDotenv {
		_ = godotenv.Load()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("stageradar: %w", err)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	now := o.clock
	if now == nil {
		now = time.Now
	}

	profile := profileFromConfig(cfg)
	if o.profile != nil {
		profile = scoring.Profile{
			Specialties:         o.profile.Specialties,
			BudgetMin:           o.profile.BudgetMin,
			BudgetMax:           o.profile.BudgetMax,
			PreferredLocations:  o.profile.PreferredLocations,
			PreferredEventTypes: o.profile.PreferredEventTypes,
			AvoidKeywords:       o.profile.AvoidKeywords,
		}
	}
	scorer, err := scoring.New(profile, scoring.WithLogger(logger), scoring.WithNow(now))
	if err != nil {
		return nil, fmt.Errorf("stageradar: %w", err)
	}

	threshold := cfg.DedupThreshold
	if o.dedupThreshold > 0 {
		threshold = o.dedupThreshold
	}
	window := cfg.DedupWindow
	if o.dedupWindow > 0 {
		window = o.dedupWindow
	}
	var mem *dedup.MemoryStore
	var store dedup.Store
	if o.store != nil {
		store = storeAdapter{rs: o.store}
	} else {
		mem = dedup.NewMemoryStore()
		store = mem
	}
	deduper := dedup.New(store, logger, threshold, window)
	deduper.SetNow(now)

	cacheSize := cfg.CacheSize
	cacheTTL := cfg.CacheTTL
	if o.cacheSize > 0 {
		cacheSize = o.cacheSize
		cacheTTL = o.cacheTTL
	}
	maxParallel := cfg.MaxParallel
	if o.maxParallel > 0 {
		maxParallel = o.maxParallel
	}

	return &Engine{
		cfg:         cfg,
		logger:      logger,
		now:         now,
		scorer:      scorer,
		dedup:       deduper,
		mem:         mem,
		growth:      growth.New(growth.WithLogger(logger), growth.WithNow(now)),
		fees:        fees.NewService(logger),
		cache:       reportcache.New(cacheSize, cacheTTL),
		maxParallel: maxParallel,
	}, nil
}

// profileFromConfig starts from the baseline profile and applies any
// env overrides.
func profileFromConfig(cfg config.Config) scoring.Profile {
	p := scoring.DefaultProfile()
	p.BudgetMin = cfg.BudgetMin
	p.BudgetMax = cfg.BudgetMax
	if cfg.Specialties != nil {
		p.Specialties = cfg.Specialties
	}
	if cfg.PreferredLocations != nil {
		p.PreferredLocations = cfg.PreferredLocations
	}
	if cfg.AvoidKeywords != nil {
		p.AvoidKeywords = cfg.AvoidKeywords
	}
	return p
}

// ScoreLead scores a single candidate lead. It never fails: missing
// fields degrade to neutral contributions and surface as warnings.
func (e *Engine) ScoreLead(c Candidate) ScoringResult {
	return toPublicScoringResult(e.scorer.Score(toModelCandidate(c)))
}

// QuickScore computes only the relevance component from title and
// description, for cheap pre-filtering during ingestion.
func (e *Engine) QuickScore(title, description string) float64 {
	return e.scorer.QuickScore(title, description)
}

// FilterLeads scores every candidate and returns those at or above
// minGrade, best first.
func (e *Engine) FilterLeads(candidates []Candidate, minGrade Grade) []ScoredLead {
	min := model.Grade(minGrade)
	var out []ScoredLead
	for _, c := range candidates {
		res := e.scorer.Score(toModelCandidate(c))
		if !res.Grade.AtLeast(min) {
			continue
		}
		out = append(out, ScoredLead{Candidate: c, Result: toPublicScoringResult(res)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.TotalScore > out[j].Result.TotalScore
	})
	return out
}

// ScoreAll scores a batch concurrently, bounded by the configured
// parallelism, preserving input order. It stops early when ctx is
// cancelled.
func (e *Engine) ScoreAll(ctx context.Context, candidates []Candidate) ([]ScoredLead, error) {
	out := make([]ScoredLead, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxParallel)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = ScoredLead{Candidate: c, Result: e.ScoreLead(c)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckDuplicate compares a candidate against the record store using
// the exact-match chain (URL, external ID, content fingerprint) and
// falls back to fuzzy title matching within the dedup window.
func (e *Engine) CheckDuplicate(ctx context.Context, c Candidate) DuplicateDecision {
	d := e.dedup.Check(ctx, toModelCandidate(c))
	return DuplicateDecision{
		IsDuplicate:       d.IsDuplicate,
		Matched:           toPublicStoredLead(d.Matched),
		Similarity:        d.Similarity,
		PossibleDuplicate: d.PossibleDuplicate,
	}
}

// RememberLead records an accepted lead in the built-in store so later
// duplicate checks see it. Returns ErrReadOnlyStore when the engine was
// constructed with WithRecordStore.
func (e *Engine) RememberLead(c Candidate) (StoredLead, error) {
	if e.mem == nil {
		return StoredLead{}, ErrReadOnlyStore
	}
	rec := e.mem.AddCandidate(toModelCandidate(c))
	return StoredLead(rec), nil
}

// Fingerprint returns the content fingerprint the duplicate checker
// uses for the candidate, so callers can persist it alongside the lead.
func Fingerprint(c Candidate) string {
	return dedup.Fingerprint(c.Title, c.Organization, c.Deadline)
}

// AnalyzeArtist builds the full intelligence report for one artist:
// listener and social growth predictions, fee estimate, market
// position, booking guidance, and content strategy. Reports are cached
// by artist name; pass force to bypass the cache.
func (e *Engine) AnalyzeArtist(ctx context.Context, metrics ArtistMetrics, force bool) (*Report, error) {
	if strings.TrimSpace(metrics.Name) == "" {
		return nil, errors.New("stageradar: artist name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !force {
		if cached, ok := e.cache.Get(metrics.Name); ok {
			e.logger.Debug("report cache hit", "artist", metrics.Name)
			return toPublicReport(cached), nil
		}
	}

	report := e.buildReport(toModelMetrics(metrics))
	e.cache.Put(metrics.Name, report)
	e.logger.Info("artist report generated",
		"artist", report.ArtistName,
		"tier", report.Tier,
		"trend", report.OverallTrend,
		"overall_score", report.OverallScore,
	)
	return toPublicReport(report), nil
}

func (e *Engine) buildReport(m model.ArtistMetrics) *model.Report {
	tier := growth.TierForListeners(m.SpotifyMonthlyListeners)
	if m.ScannerHint != nil && m.ScannerHint.Tier != "" {
		tier = m.ScannerHint.Tier
	}

	social := m.TotalSocialFollowers()
	listenerPred := e.growth.Predict(growth.Input{
		Metric:      "monthly_listeners",
		Current:     m.SpotifyMonthlyListeners,
		History:     m.ListenerHistory,
		Genre:       m.Genre,
		ArtistName:  m.Name,
		SocialTotal: social,
		TikTok:      m.TikTokFollowers,
		Tier:        tier,
	})
	socialPred := e.growth.Predict(growth.Input{
		Metric:      "social_followers",
		Current:     social,
		History:     m.SocialHistory,
		Genre:       m.Genre,
		ArtistName:  m.Name,
		SocialTotal: social,
		TikTok:      m.TikTokFollowers,
		Tier:        tier,
	})

	// Listener momentum dominates the trend used for pricing; social
	// reach follows it with a lag.
	blendedRate := 0.7*listenerPred.GrowthRateMonthly + 0.3*socialPred.GrowthRateMonthly
	overallTrend := model.TrendForRate(blendedRate / 100)

	quote := e.fees.Estimate(m, overallTrend)

	analysis := market.Analyze(market.Input{
		Metrics:        m,
		Tier:           tier,
		ListenerTrend:  listenerPred,
		SocialTrend:    socialPred,
		GenreBenchmark: growth.GenreBenchmark(m.Genre),
	})

	booking := bookingIntelligence(quote, overallTrend)
	content := contentStrategy(m, listenerPred)

	confidence := math.Round((listenerPred.Confidence+socialPred.Confidence)/2*100) / 100

	return &model.Report{
		ID:                 uuid.New(),
		ArtistName:         m.Name,
		Genre:              m.Genre,
		Country:            m.Country,
		Tier:               tier,
		Market:             analysis.Market,
		ListenerPrediction: listenerPred,
		SocialPrediction:   socialPred,
		OverallTrend:       overallTrend,
		Booking:            booking,
		Content:            content,
		RiskScore:          analysis.RiskScore,
		RiskFactors:        analysis.RiskFactors,
		OpportunityScore:   analysis.OpportunityScore,
		KeyOpportunities:   analysis.KeyOpportunities,
		OverallScore:       analysis.OverallScore,
		ConfidenceScore:    confidence,
		Summary:            summarize(m, tier, overallTrend, quote),
		Recommendations:    recommend(analysis, booking, overallTrend),
		GeneratedAt:        e.now(),
	}
}

func bookingIntelligence(q fees.Quote, trend model.Trend) model.BookingIntelligence {
	var window string
	switch trend {
	case model.TrendExplosive, model.TrendRapid:
		window = "book immediately, fees are repricing upward"
	case model.TrendStrong, model.TrendModerate:
		window = "book within 3-6 months before the next fee revision"
	case model.TrendStable:
		window = "flexible, no fee pressure either way"
	default:
		window = "wait-and-see, leverage favors the buyer"
	}

	return model.BookingIntelligence{
		FeeMin:           q.FeeMin,
		FeeMax:           q.FeeMax,
		OptimalFee:       q.OptimalFee,
		NegotiationPower: q.NegotiationPower,
		BookingWindow:    window,
		EventTypes: map[string]float64{
			"festival":  1.30,
			"club":      1.00,
			"theater":   1.10,
			"private":   1.50,
			"corporate": 1.60,
		},
		Territories: map[string]float64{
			"domestic":      1.00,
			"neighboring":   1.15,
			"international": 1.35,
		},
		Seasonal: growth.SeasonalByMonth(),
	}
}

func contentStrategy(m model.ArtistMetrics, listenerPred model.TrendPrediction) model.ContentStrategy {
	viral := growth.GenreViralPotential(m.Genre)
	social := float64(m.TotalSocialFollowers())

	type platform struct {
		name   string
		weight float64
	}
	// TikTok reach converts to discovery faster than the others.
	ranked := []platform{
		{"tiktok", float64(m.TikTokFollowers) * 1.5},
		{"instagram", float64(m.InstagramFollowers)},
		{"youtube", float64(m.YouTubeSubscribers)},
		{"spotify", float64(m.SpotifyFollowers)},
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].weight > ranked[j].weight })

	var platforms []string
	for _, p := range ranked {
		if p.weight > 0 {
			platforms = append(platforms, p.name)
		}
	}
	if len(platforms) == 0 {
		platforms = []string{"tiktok", "instagram"}
	}
	if len(platforms) > 3 {
		platforms = platforms[:3]
	}

	var tiktokShare float64
	if social > 0 {
		tiktokShare = float64(m.TikTokFollowers) / social
	}

	engagement := 0.0
	if social > 0 {
		engagement = 0.02
		switch {
		case tiktokShare > 0.4:
			engagement += 0.03
		case tiktokShare > 0.15:
			engagement += 0.015
		}
		if m.SpotifyMonthlyListeners > 0 && social > 2*float64(m.SpotifyMonthlyListeners) {
			engagement += 0.01
		}
	}

	viralScore := clampF(0.6*viral+0.4*minF(2*tiktokShare, 1), 0, 1)

	var recs []string
	if tiktokShare < 0.2 && viral > 0.5 {
		recs = append(recs, "invest in short-form video, the genre skews viral")
	}
	if listenerPred.Trend.Rising() {
		recs = append(recs, "push release content while discovery is trending up")
	}
	if social > 0 && engagement < 0.03 {
		recs = append(recs, "prioritize engagement over reach in the next content cycle")
	}

	return model.ContentStrategy{
		RecommendedPlatforms: platforms,
		EngagementRate:       math.Round(engagement*10000) / 10000,
		ViralPotential:       math.Round(viralScore*100) / 100,
		Recommendations:      recs,
	}
}

// summarize builds the one-line report summary. Deterministic for a
// given input: identical metrics produce an identical sentence.
func summarize(m model.ArtistMetrics, tier model.Tier, trend model.Trend, q fees.Quote) string {
	genre := strings.TrimSpace(strings.ToLower(m.Genre))
	if genre == "" {
		genre = "live"
	}
	return fmt.Sprintf("%s is a %s %s act on a %s trajectory; estimated fee range %d-%d EUR, optimal offer %d EUR.",
		m.Name, tier, genre, trend, q.FeeMin, q.FeeMax, q.OptimalFee)
}

func recommend(a market.Analysis, b model.BookingIntelligence, trend model.Trend) []string {
	recs := make([]string, 0, 4)
	recs = append(recs, b.BookingWindow)
	recs = append(recs, a.KeyOpportunities...)
	if len(a.RiskFactors) > 0 {
		recs = append(recs, "watch: "+a.RiskFactors[0])
	}
	if trend == model.TrendExplosive {
		recs = append(recs, "lock option dates now, availability will tighten")
	}
	return recs
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
