// Package scoring turns raw candidate leads into graded, explainable
// scores. Six weighted criteria (timing, information quality, budget
// match, relevance, competition, potential) combine into a 0-100 total
// and a letter grade, with human-readable recommendations and warnings.
//
// Scoring is total: a missing or malformed field degrades to a neutral
// contribution, never an error.
package scoring

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/stageradar/stageradar/internal/model"
	"github.com/stageradar/stageradar/internal/textutil"
)

// Weights holds the six component weights. They must sum to 1.0.
type Weights struct {
	Timing      float64
	InfoQuality float64
	BudgetMatch float64
	Relevance   float64
	Competition float64
	Potential   float64
}

// DefaultWeights returns the stock weighting: relevance dominates,
// timing and budget follow, competition and potential refine.
func DefaultWeights() Weights {
	return Weights{
		Timing:      0.20,
		InfoQuality: 0.15,
		BudgetMatch: 0.20,
		Relevance:   0.25,
		Competition: 0.10,
		Potential:   0.10,
	}
}

// Validate checks the weight invariant: non-negative components summing
// to 1.0 within 1e-9.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"timing": w.Timing, "information_quality": w.InfoQuality,
		"budget_match": w.BudgetMatch, "relevance": w.Relevance,
		"competition": w.Competition, "potential": w.Potential,
	} {
		if v < 0 {
			return fmt.Errorf("scoring: negative weight for %s", name)
		}
	}
	sum := w.Timing + w.InfoQuality + w.BudgetMatch + w.Relevance + w.Competition + w.Potential
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring: weights sum to %v, want 1.0", sum)
	}
	return nil
}

// Scorer evaluates candidate leads against an agency profile.
type Scorer struct {
	profile  Profile
	keywords Keywords
	weights  Weights
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithKeywords replaces the default keyword tables.
func WithKeywords(k Keywords) Option { return func(s *Scorer) { s.keywords = k } }

// WithWeights replaces the default component weights.
func WithWeights(w Weights) Option { return func(s *Scorer) { s.weights = w } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(s *Scorer) { s.logger = l } }

// WithNow overrides the clock. Test hook.
func WithNow(now func() time.Time) Option { return func(s *Scorer) { s.now = now } }

// New creates a scorer. Construction is the only place scoring can
// fail: invalid weights or an invalid profile are programmer errors.
func New(profile Profile, opts ...Option) (*Scorer, error) {
	s := &Scorer{
		profile:  profile,
		keywords: DefaultKeywords(),
		weights:  DefaultWeights(),
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := s.weights.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Score computes the weighted multi-criterion score for one candidate.
// The result is immutable; re-scoring produces a new result.
func (s *Scorer) Score(c model.Candidate) model.ScoringResult {
	var recs, warns []string

	days, hasDate := s.daysUntil(c)

	timing, bucket := s.scoreTiming(days, hasDate, &recs, &warns)
	info := s.scoreInfoQuality(c, &warns)
	budget := s.scoreBudgetMatch(c, &recs, &warns)
	relevance := s.scoreRelevance(c.Text(), c.Location, &warns)
	competition := s.scoreCompetition(c.Text(), days, hasDate, &warns)
	potential := s.scorePotential(c.Text())

	total := timing*s.weights.Timing +
		info*s.weights.InfoQuality +
		budget*s.weights.BudgetMatch +
		relevance*s.weights.Relevance +
		competition*s.weights.Competition +
		potential*s.weights.Potential

	// Expired deadlines halve the whole score: a late lead is rarely
	// worth the same effort no matter how good it looks otherwise.
	if bucket == model.TimingLate {
		total *= 0.5
	}
	total = clamp(total, 0, 100)

	grade := model.GradeForScore(total)
	if banner := gradeBanner(grade); banner != "" {
		recs = append([]string{banner}, recs...)
	}

	return model.ScoringResult{
		TotalScore: math.Round(total*10) / 10,
		Grade:      grade,
		Timing:     bucket,
		Breakdown: map[model.Component]float64{
			model.ComponentTiming:      timing,
			model.ComponentInfoQuality: info,
			model.ComponentBudgetMatch: budget,
			model.ComponentRelevance:   relevance,
			model.ComponentCompetition: competition,
			model.ComponentPotential:   potential,
		},
		Recommendations: recs,
		Warnings:        warns,
	}
}

// QuickScore is a lightweight keyword-only score for triage when only
// title and description are known. Returns the relevance component.
func (s *Scorer) QuickScore(title, description string) float64 {
	text := strings.TrimSpace(title + " " + description)
	var warns []string
	return s.scoreRelevance(text, model.Location{}, &warns)
}

// ScoredCandidate pairs a candidate with its scoring result.
type ScoredCandidate struct {
	Candidate model.Candidate
	Result    model.ScoringResult
}

// FilterLeads scores every candidate and keeps those at or above the
// grade threshold, sorted by descending total score.
func (s *Scorer) FilterLeads(candidates []model.Candidate, minGrade model.Grade) []ScoredCandidate {
	var kept []ScoredCandidate
	for _, c := range candidates {
		result := s.Score(c)
		if result.Grade.AtLeast(minGrade) {
			kept = append(kept, ScoredCandidate{Candidate: c, Result: result})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Result.TotalScore > kept[j].Result.TotalScore
	})
	return kept
}

// daysUntil derives whole days from now to the lead's target date:
// deadline first, event date second, then a best-effort parse of the
// free-text deadline. Unparsable text is not an error, it just means
// no date was found.
func (s *Scorer) daysUntil(c model.Candidate) (int, bool) {
	target := c.Deadline
	if target == nil {
		target = c.EventDate
	}
	if target == nil && strings.TrimSpace(c.DeadlineText) != "" {
		if parsed, err := dateparse.ParseAny(c.DeadlineText); err == nil {
			target = &parsed
		} else {
			s.logger.Debug("scoring: unparsable deadline text", "text", c.DeadlineText)
		}
	}
	if target == nil {
		return 0, false
	}
	// Floor, not truncate: a deadline that passed hours ago must count
	// as negative days so it lands in the late bucket.
	return int(math.Floor(target.Sub(s.now()).Hours() / 24)), true
}

// scoreTiming buckets the days-until-target window. The 7-29 day window
// is optimal: enough time to prepare a strong response, close enough
// that the organizer is actively deciding.
func (s *Scorer) scoreTiming(days int, hasDate bool, recs, warns *[]string) (float64, model.TimingBucket) {
	if !hasDate {
		return 50, model.TimingUnknown
	}
	switch {
	case days < 0:
		*warns = append(*warns, fmt.Sprintf("deadline expired %d day(s) ago", -days))
		return 10, model.TimingLate
	case days <= 2:
		return 30, model.TimingUrgent
	case days <= 6:
		return 70, model.TimingUrgent
	case days <= 29:
		return 100, model.TimingOptimal
	case days <= 59:
		return 85, model.TimingGood
	case days <= 89:
		return 70, model.TimingEarly
	default:
		*recs = append(*recs, "deadline far out — add to long-term tracking")
		return 60, model.TimingEarly
	}
}

// scoreInfoQuality is additive out of 100: contact detail, budget
// presence, description depth, and explicit conditions each add points.
func (s *Scorer) scoreInfoQuality(c model.Candidate, warns *[]string) float64 {
	var score float64

	var hasEmail, hasPhone, hasName bool
	for _, contact := range c.Contacts {
		hasEmail = hasEmail || strings.TrimSpace(contact.Email) != ""
		hasPhone = hasPhone || strings.TrimSpace(contact.Phone) != ""
		hasName = hasName || strings.TrimSpace(contact.Name) != ""
	}
	if hasEmail {
		score += 25
	}
	if hasPhone {
		score += 15
	}
	if hasName {
		score += 10
	}
	if !hasEmail && !hasPhone && !hasName {
		*warns = append(*warns, "no contact information found")
	}

	if c.HasBudgetInfo() {
		score += 25
	} else {
		*warns = append(*warns, "no budget information found")
	}

	switch descLen := len(strings.TrimSpace(c.Description)); {
	case descLen > 500:
		score += 15
	case descLen > 100:
		score += 10
	}

	if strings.TrimSpace(c.Conditions) != "" {
		score += 10
	}
	return clamp(score, 0, 100)
}

// scoreBudgetMatch compares the candidate budget against the agency
// range. Within range, score rises linearly toward the max: closer to
// the top of the range means more revenue for the same effort.
func (s *Scorer) scoreBudgetMatch(c model.Candidate, recs, warns *[]string) float64 {
	amount, ok := c.BudgetAmount()
	if !ok || amount <= 0 {
		return 50
	}
	min, max := s.profile.BudgetMin, s.profile.BudgetMax
	switch {
	case amount < min*0.5:
		*warns = append(*warns, "budget well below agency range")
		return 20
	case amount < min:
		return 40
	case amount <= max:
		if max == min {
			return 100
		}
		return 60 + 40*(amount-min)/(max-min)
	default:
		*recs = append(*recs, "budget above agency range — major opportunity")
		return 90
	}
}

// scoreRelevance accumulates keyword-tier points, specialty matches,
// and location preference. Any avoid keyword eliminates the lead: the
// component scores 0 with no further contribution.
func (s *Scorer) scoreRelevance(text string, loc model.Location, warns *[]string) float64 {
	if term, hit := textutil.ContainsAny(text, s.profile.AvoidKeywords); hit {
		*warns = append(*warns, "matches avoid keyword: "+term)
		return 0
	}

	norm := textutil.NormalizeText(text)
	var score float64
	for _, tier := range []map[string]float64{
		s.keywords.HighPriority, s.keywords.MediumPriority, s.keywords.LowPriority,
	} {
		for term, points := range tier {
			if strings.Contains(norm, textutil.NormalizeText(term)) {
				score += points * 10
			}
		}
	}

	for _, specialty := range s.profile.Specialties {
		if strings.Contains(norm, textutil.NormalizeText(specialty)) {
			score += 15
		}
	}

	locText := textutil.NormalizeText(loc.City + " " + loc.Region + " " + loc.Country)
	if locText != "" {
		for _, preferred := range s.profile.PreferredLocations {
			if strings.Contains(locText, textutil.NormalizeText(preferred)) {
				score += 10
				break
			}
		}
	}
	return clamp(score, 0, 100)
}

// scoreCompetition estimates how crowded the field is. Public tender
// language means a broad competitive process; private/direct language
// and a tight deadline both mean fewer competing responses.
func (s *Scorer) scoreCompetition(text string, days int, hasDate bool, warns *[]string) float64 {
	score := 50.0
	if _, hit := textutil.ContainsAny(text, s.keywords.PublicTender); hit {
		score -= 20
		*warns = append(*warns, "public tender language — expect a crowded field")
	}
	if _, hit := textutil.ContainsAny(text, s.keywords.Private); hit {
		score += 25
	}
	if hasDate && days >= 0 && days < 5 {
		score += 15
	}
	return clamp(score, 0, 100)
}

// scorePotential looks past this one engagement: recurring formats,
// major clients, and growth language all raise long-term value.
func (s *Scorer) scorePotential(text string) float64 {
	norm := textutil.NormalizeText(text)
	score := 50.0
	for _, term := range s.keywords.Recurring {
		if strings.Contains(norm, textutil.NormalizeText(term)) {
			score += 15
		}
	}
	for _, term := range s.keywords.MajorClient {
		if strings.Contains(norm, textutil.NormalizeText(term)) {
			score += 10
		}
	}
	for _, term := range s.keywords.Growth {
		if strings.Contains(norm, textutil.NormalizeText(term)) {
			score += 10
		}
	}
	return clamp(score, 0, 100)
}

func gradeBanner(g model.Grade) string {
	switch g {
	case model.GradeAPlus, model.GradeA:
		return "high priority — respond quickly"
	case model.GradeBPlus, model.GradeB:
		return "good opportunity — worth a detailed review"
	case model.GradeC:
		return "needs more analysis before committing"
	default:
		return ""
	}
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
