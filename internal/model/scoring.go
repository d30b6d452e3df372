package model

// Grade is the letter grade assigned to a scored lead.
type Grade string

// Grades, best to worst.
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

// Rank returns the grade's position in the A+ > A > B+ > B > C > D > F
// ordering. Higher is better; unknown grades rank below F.
func (g Grade) Rank() int { return gradeRanks[g] }

// AtLeast reports whether g is equal to or better than min.
func (g Grade) AtLeast(min Grade) bool { return g.Rank() >= min.Rank() }

// GradeForScore maps a post-penalty total score to a letter grade.
func GradeForScore(score float64) Grade {
	switch {
	case score >= 90:
		return GradeAPlus
	case score >= 80:
		return GradeA
	case score >= 70:
		return GradeBPlus
	case score >= 60:
		return GradeB
	case score >= 50:
		return GradeC
	case score >= 40:
		return GradeD
	default:
		return GradeF
	}
}

// TimingBucket classifies how the lead's deadline relates to now.
type TimingBucket string

// Timing buckets.
const (
	TimingUrgent  TimingBucket = "urgent"
	TimingOptimal TimingBucket = "optimal"
	TimingGood    TimingBucket = "good"
	TimingEarly   TimingBucket = "early"
	TimingLate    TimingBucket = "late"
	TimingUnknown TimingBucket = "unknown"
)

// Component names the six weighted scoring criteria.
type Component string

// Scoring components. Their weights must sum to 1.0.
const (
	ComponentTiming      Component = "timing"
	ComponentInfoQuality Component = "information_quality"
	ComponentBudgetMatch Component = "budget_match"
	ComponentRelevance   Component = "relevance"
	ComponentCompetition Component = "competition"
	ComponentPotential   Component = "potential"
)

// ScoringResult is the immutable output of one scoring call.
// Re-scoring a candidate produces a new result; nothing mutates this one.
type ScoringResult struct {
	TotalScore      float64               `json:"total_score"`
	Grade           Grade                 `json:"grade"`
	Timing          TimingBucket          `json:"timing"`
	Breakdown       map[Component]float64 `json:"breakdown"`
	Recommendations []string              `json:"recommendations"`
	Warnings        []string              `json:"warnings"`
}
