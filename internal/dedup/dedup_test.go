package dedup

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stageradar/stageradar/internal/model"
)

func newTestDeduplicator(t *testing.T) (*Deduplicator, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return New(store, slog.Default(), DefaultThreshold, DefaultWindow), store
}

func TestCheck_URLMatch(t *testing.T) {
	d, store := newTestDeduplicator(t)
	store.Add(model.StoredRecord{
		Title: "Jazz à Vienne — appel à candidatures",
		URL:   "https://example.com/jazz-vienne/",
	})

	// Same URL modulo case and trailing slash.
	dec := d.Check(context.Background(), model.Candidate{
		Title: "Completely different title",
		URL:   "HTTPS://EXAMPLE.COM/jazz-vienne",
	})
	assert.True(t, dec.IsDuplicate)
	assert.Equal(t, 1.0, dec.Similarity)
	require.NotNil(t, dec.Matched)
	assert.Equal(t, "Jazz à Vienne — appel à candidatures", dec.Matched.Title)
}

func TestCheck_ExternalIDMatch(t *testing.T) {
	d, store := newTestDeduplicator(t)
	store.Add(model.StoredRecord{Title: "Booking open", ExternalID: "src-42"})

	dec := d.Check(context.Background(), model.Candidate{Title: "Other", ExternalID: "src-42"})
	assert.True(t, dec.IsDuplicate)
	assert.Equal(t, 1.0, dec.Similarity)
}

func TestCheck_FingerprintMatch(t *testing.T) {
	d, store := newTestDeduplicator(t)
	deadline := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	store.Add(model.StoredRecord{
		Title:        "Festival des Lumières — programmation",
		Organization: "Ville de Lyon",
		Deadline:     &deadline,
	})

	// Same title/org/deadline date, different URL and time-of-day.
	sameDay := time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)
	dec := d.Check(context.Background(), model.Candidate{
		Title:        "  festival des   lumières — PROGRAMMATION ",
		Organization: "ville de lyon",
		Deadline:     &sameDay,
		URL:          "https://other-source.example/fdl",
	})
	assert.True(t, dec.IsDuplicate)
	assert.Equal(t, 1.0, dec.Similarity)
}

func TestCheck_FuzzyFlagsPossibleDuplicate(t *testing.T) {
	d, store := newTestDeduplicator(t)
	store.Add(model.StoredRecord{
		Title:        "Appel à candidatures festival électro Paris 2026",
		Organization: "Mairie de Paris",
	})

	dec := d.Check(context.Background(), model.Candidate{
		Title:        "Appel à candidatures festival électro Paris",
		Organization: "Mairie de Paris",
	})
	assert.False(t, dec.IsDuplicate, "fuzzy evidence alone never claims a hard duplicate")
	assert.True(t, dec.PossibleDuplicate)
	assert.GreaterOrEqual(t, dec.Similarity, DefaultThreshold)
	assert.Less(t, dec.Similarity, 1.0)
	assert.NotNil(t, dec.Matched)
}

func TestCheck_BelowThresholdIsNew(t *testing.T) {
	d, store := newTestDeduplicator(t)
	store.Add(model.StoredRecord{Title: "Concert caritatif hiver", Organization: "Org"})

	dec := d.Check(context.Background(), model.Candidate{
		Title:        "Résidence d'artiste printemps",
		Organization: "Org",
	})
	assert.False(t, dec.IsDuplicate)
	assert.False(t, dec.PossibleDuplicate)
}

func TestCheck_EmptyTitleAlwaysNew(t *testing.T) {
	d, store := newTestDeduplicator(t)
	store.Add(model.StoredRecord{Title: "Anything", Organization: "Org"})

	dec := d.Check(context.Background(), model.Candidate{Organization: "Org"})
	assert.False(t, dec.IsDuplicate)
	assert.False(t, dec.PossibleDuplicate)
	assert.Zero(t, dec.Similarity)
}

func TestCheck_Idempotence(t *testing.T) {
	d, store := newTestDeduplicator(t)
	cand := model.Candidate{
		Title: "Showcase SXSW candidature",
		URL:   "https://events.example/sxsw",
	}

	first := d.Check(context.Background(), cand)
	require.False(t, first.IsDuplicate)

	store.AddCandidate(cand)

	second := d.Check(context.Background(), cand)
	assert.True(t, second.IsDuplicate)
	assert.Equal(t, 1.0, second.Similarity)
}

func TestCheck_OldRecordsOutsideWindowIgnored(t *testing.T) {
	store := NewMemoryStore()
	d := New(store, slog.Default(), 0.70, 30*24*time.Hour)
	store.Add(model.StoredRecord{
		Title:        "Festival du Printemps candidatures ouvertes",
		Organization: "Org",
		CreatedAt:    time.Now().Add(-60 * 24 * time.Hour),
	})

	dec := d.Check(context.Background(), model.Candidate{
		Title:        "Festival du Printemps candidatures ouvertes bis",
		Organization: "Org",
	})
	assert.False(t, dec.PossibleDuplicate, "records older than the window are not fuzzy candidates")
}

func TestFingerprint(t *testing.T) {
	d1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("stable across whitespace and case", func(t *testing.T) {
		a := Fingerprint("Grand Concert", "Salle Pleyel", &d1)
		b := Fingerprint("  grand   concert ", "SALLE PLEYEL", &d1)
		assert.Equal(t, a, b)
	})

	t.Run("deadline date matters, time of day does not", func(t *testing.T) {
		sameDay := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
		otherDay := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, Fingerprint("T", "O", &d1), Fingerprint("T", "O", &sameDay))
		assert.NotEqual(t, Fingerprint("T", "O", &d1), Fingerprint("T", "O", &otherDay))
	})

	t.Run("missing fields still hash", func(t *testing.T) {
		assert.NotEmpty(t, Fingerprint("Title only", "", nil))
		assert.NotEqual(t, Fingerprint("Title only", "", nil), Fingerprint("", "Title only", nil))
	})

	t.Run("all empty yields empty", func(t *testing.T) {
		assert.Empty(t, Fingerprint("", "", nil))
	})
}
