package stageradar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{
		WithoutDotenv(),
		WithClock(func() time.Time { return testNow }),
	}, opts...)
	eng, err := New(opts...)
	require.NoError(t, err)
	return eng
}

func daysFromNow(d int) *time.Time {
	ts := testNow.AddDate(0, 0, d)
	return &ts
}

func TestNew_RejectsInvalidProfile(t *testing.T) {
	_, err := New(
		WithoutDotenv(),
		WithProfile(Profile{BudgetMin: 100, BudgetMax: 50}),
	)
	require.Error(t, err)
}

func TestScoreLead_CompleteLead(t *testing.T) {
	eng := newTestEngine(t)
	budget := 30000.0
	res := eng.ScoreLead(Candidate{
		Title:       "Festival électro recherche tête d'affiche",
		Description: "Grande scène, festival annuel, programmation électro et techno.",
		Deadline:    daysFromNow(14),
		Budget:      &budget,
		Contacts:    []Contact{{Email: "prog@festival.fr"}},
	})

	assert.Equal(t, TimingOptimal, res.Timing)
	assert.True(t, res.TotalScore > 0 && res.TotalScore <= 100)
	assert.Len(t, res.Breakdown, 6)
	assert.NotEmpty(t, res.Grade)
}

func TestScoreLead_TitleOnlyNeverFails(t *testing.T) {
	eng := newTestEngine(t)
	res := eng.ScoreLead(Candidate{Title: "Concert"})
	assert.Equal(t, TimingUnknown, res.Timing)
	assert.NotEmpty(t, res.Warnings)
}

func TestQuickScore(t *testing.T) {
	eng := newTestEngine(t)
	hit := eng.QuickScore("Festival électro", "recherche artistes")
	miss := eng.QuickScore("Réunion de copropriété", "")
	assert.Greater(t, hit, miss)
}

func TestFilterLeads_OrderAndThreshold(t *testing.T) {
	eng := newTestEngine(t)
	budget := 40000.0
	leads := []Candidate{
		{Title: "Concert"},
		{
			Title:    "Festival électro recherche artistes",
			Deadline: daysFromNow(20),
			Budget:   &budget,
			Contacts: []Contact{{Email: "x@y.fr"}},
		},
	}
	kept := eng.FilterLeads(leads, GradeC)
	require.NotEmpty(t, kept)
	for i := 1; i < len(kept); i++ {
		assert.GreaterOrEqual(t, kept[i-1].Result.TotalScore, kept[i].Result.TotalScore)
	}
	for _, sl := range kept {
		assert.GreaterOrEqual(t, sl.Result.TotalScore, 50.0)
	}
}

func TestScoreAll_PreservesOrder(t *testing.T) {
	eng := newTestEngine(t)
	var leads []Candidate
	for _, title := range []string{"Festival électro", "Concert jazz", "Soirée privée", "Gala"} {
		leads = append(leads, Candidate{Title: title})
	}

	scored, err := eng.ScoreAll(context.Background(), leads)
	require.NoError(t, err)
	require.Len(t, scored, len(leads))
	for i, sl := range scored {
		assert.Equal(t, leads[i].Title, sl.Candidate.Title)
	}
}

func TestScoreAll_CancelledContext(t *testing.T) {
	eng := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.ScoreAll(ctx, []Candidate{{Title: "a"}, {Title: "b"}})
	require.Error(t, err)
}

func TestRememberLead_ThenDuplicate(t *testing.T) {
	eng := newTestEngine(t)
	lead := Candidate{
		Title:        "Fête de la Musique - scène principale",
		Organization: "Ville de Nantes",
		URL:          "https://nantes.fr/fete-musique",
	}
	rec, err := eng.RememberLead(lead)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Fingerprint)

	d := eng.CheckDuplicate(context.Background(), lead)
	assert.True(t, d.IsDuplicate)
	require.NotNil(t, d.Matched)
	assert.Equal(t, rec.ID, d.Matched.ID)
	assert.InDelta(t, 1.0, d.Similarity, 0.001)

	fresh := eng.CheckDuplicate(context.Background(), Candidate{
		Title: "Appel à candidatures jazz",
		URL:   "https://other.fr/jazz",
	})
	assert.False(t, fresh.IsDuplicate)
}

type fakeStore struct {
	byURL map[string]StoredLead
}

func (f fakeStore) LookupURL(_ context.Context, u string) (*StoredLead, error) {
	if rec, ok := f.byURL[u]; ok {
		return &rec, nil
	}
	return nil, nil
}
func (f fakeStore) LookupExternalID(context.Context, string) (*StoredLead, error) {
	return nil, nil
}
func (f fakeStore) LookupFingerprint(context.Context, string) (*StoredLead, error) {
	return nil, nil
}
func (f fakeStore) RecentByOrganization(context.Context, string, time.Time) ([]StoredLead, error) {
	return nil, nil
}

func TestExternalStore_ReadOnly(t *testing.T) {
	store := fakeStore{byURL: map[string]StoredLead{
		"https://venue.fr/call": {Title: "Call", URL: "https://venue.fr/call"},
	}}
	eng := newTestEngine(t, WithRecordStore(store))

	_, err := eng.RememberLead(Candidate{Title: "Call"})
	assert.ErrorIs(t, err, ErrReadOnlyStore)

	d := eng.CheckDuplicate(context.Background(), Candidate{Title: "Call", URL: "https://venue.fr/call"})
	assert.True(t, d.IsDuplicate)
}

func TestFingerprint_Stable(t *testing.T) {
	c := Candidate{Title: "Festival", Organization: "Org"}
	assert.Equal(t, Fingerprint(c), Fingerprint(c))
	assert.NotEmpty(t, Fingerprint(c))
	assert.NotEqual(t, Fingerprint(c), Fingerprint(Candidate{Title: "Autre", Organization: "Org"}))
}

func sampleMetrics() ArtistMetrics {
	return ArtistMetrics{
		Name:                    "Nova Caine",
		Genre:                   "trap",
		Country:                 "FR",
		SpotifyMonthlyListeners: 320_000,
		SpotifyFollowers:        140_000,
		YouTubeSubscribers:      90_000,
		InstagramFollowers:      210_000,
		TikTokFollowers:         380_000,
		ListenerHistory: []Snapshot{
			{Date: testNow.AddDate(0, -4, 0), Value: 180_000},
			{Date: testNow.AddDate(0, -2, 0), Value: 240_000},
			{Date: testNow.AddDate(0, -1, 0), Value: 290_000},
		},
	}
}

func TestAnalyzeArtist_FullReport(t *testing.T) {
	eng := newTestEngine(t)
	report, err := eng.AnalyzeArtist(context.Background(), sampleMetrics(), false)
	require.NoError(t, err)

	assert.Equal(t, "Nova Caine", report.ArtistName)
	assert.Equal(t, TierEstablished, report.Tier)
	assert.Greater(t, report.Booking.FeeMax, report.Booking.FeeMin)
	assert.GreaterOrEqual(t, report.Booking.OptimalFee, report.Booking.FeeMin)
	assert.LessOrEqual(t, report.Booking.OptimalFee, report.Booking.FeeMax)
	assert.NotEmpty(t, report.Booking.BookingWindow)
	assert.Len(t, report.Booking.Seasonal, 12)
	assert.NotEmpty(t, report.Content.RecommendedPlatforms)
	assert.Contains(t, report.Summary, "Nova Caine")
	assert.NotEmpty(t, report.Recommendations)
	assert.True(t, report.OverallScore >= 0 && report.OverallScore <= 100)
	assert.True(t, report.RiskScore >= 0 && report.RiskScore <= 1)
	assert.True(t, report.OpportunityScore >= 0 && report.OpportunityScore <= 1)
	assert.Equal(t, testNow, report.GeneratedAt)
	assert.Positive(t, report.ListenerPrediction.GrowthRateMonthly)
}

func TestAnalyzeArtist_RequiresName(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.AnalyzeArtist(context.Background(), ArtistMetrics{}, false)
	require.Error(t, err)
}

func TestAnalyzeArtist_CacheAndForce(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	first, err := eng.AnalyzeArtist(ctx, sampleMetrics(), false)
	require.NoError(t, err)
	second, err := eng.AnalyzeArtist(ctx, sampleMetrics(), false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "second call should come from cache")

	third, err := eng.AnalyzeArtist(ctx, sampleMetrics(), true)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID, "force should bypass the cache")
}

func TestAnalyzeArtist_NoDataStillReports(t *testing.T) {
	eng := newTestEngine(t)
	report, err := eng.AnalyzeArtist(context.Background(), ArtistMetrics{Name: "Unknown Act"}, false)
	require.NoError(t, err)

	assert.Equal(t, TierUnderground, report.Tier)
	assert.Positive(t, report.Booking.FeeMax)
	assert.NotEmpty(t, report.Summary)
}
