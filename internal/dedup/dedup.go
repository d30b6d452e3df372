// Package dedup decides whether a new candidate lead duplicates a
// previously stored record. Matching runs in strict priority order:
// normalized URL, source external ID, content fingerprint, then fuzzy
// title similarity against recent records from the same organization.
//
// Check is total: malformed or missing fields shrink the comparison
// surface instead of failing it, and store errors degrade to "no match".
package dedup

import (
	"context"
	"log/slog"
	"time"

	"github.com/stageradar/stageradar/internal/model"
	"github.com/stageradar/stageradar/internal/textutil"
)

// DefaultThreshold is the similarity above which a candidate is flagged
// as a possible duplicate for human review. The original pipeline used
// 0.70; it is tunable per deployment.
const DefaultThreshold = 0.70

// DefaultWindow bounds how far back the fuzzy title scan looks.
const DefaultWindow = 90 * 24 * time.Hour

// Store supplies previously persisted records for comparison. The
// production implementation is the external persistence layer;
// MemoryStore in this package backs tests and embedded use.
type Store interface {
	// LookupURL returns the record with the given normalized URL, or nil.
	LookupURL(ctx context.Context, normalizedURL string) (*model.StoredRecord, error)
	// LookupExternalID returns the record with the given source-provided ID, or nil.
	LookupExternalID(ctx context.Context, externalID string) (*model.StoredRecord, error)
	// LookupFingerprint returns the record with the given content fingerprint, or nil.
	LookupFingerprint(ctx context.Context, fingerprint string) (*model.StoredRecord, error)
	// RecentByOrganization returns records from the given organization
	// created after since. An empty organization matches all records.
	RecentByOrganization(ctx context.Context, organization string, since time.Time) ([]model.StoredRecord, error)
}

// Decision annotates a candidate before storage; it is never persisted
// as its own entity.
type Decision struct {
	IsDuplicate bool                `json:"is_duplicate"`
	Matched     *model.StoredRecord `json:"matched,omitempty"`
	Similarity  float64             `json:"similarity"`

	// PossibleDuplicate is set when similarity crossed the threshold
	// without an exact match: the caller should route the record to
	// human review rather than silently merge it.
	PossibleDuplicate bool `json:"possible_duplicate,omitempty"`
}

// Deduplicator checks candidates against a record store.
type Deduplicator struct {
	store     Store
	logger    *slog.Logger
	threshold float64
	window    time.Duration
	now       func() time.Time
}

// New creates a deduplicator. A non-positive threshold falls back to
// DefaultThreshold; a non-positive window falls back to DefaultWindow.
func New(store Store, logger *slog.Logger, threshold float64, window time.Duration) *Deduplicator {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Deduplicator{
		store:     store,
		logger:    logger,
		threshold: threshold,
		window:    window,
		now:       time.Now,
	}
}

// SetNow overrides the clock. Test hook.
func (d *Deduplicator) SetNow(now func() time.Time) { d.now = now }

// Check determines whether the candidate duplicates a stored record.
// First match wins, in priority order:
//
//  1. Exact normalized-URL match           -> duplicate, similarity 1.0
//  2. Exact external-ID match              -> duplicate, similarity 1.0
//  3. Content fingerprint match            -> duplicate, similarity 1.0
//  4. Fuzzy title similarity >= threshold  -> possible duplicate, flagged
//
// An empty title skips the fuzzy step entirely; the record is treated
// as new. Store errors are logged and treated as misses.
func (d *Deduplicator) Check(ctx context.Context, c model.Candidate) Decision {
	if u := textutil.NormalizeURL(c.URL); u != "" {
		if rec := d.lookup(ctx, "url", func() (*model.StoredRecord, error) {
			return d.store.LookupURL(ctx, u)
		}); rec != nil {
			return Decision{IsDuplicate: true, Matched: rec, Similarity: 1.0}
		}
	}
	for _, alt := range c.AltURLs {
		if u := textutil.NormalizeURL(alt); u != "" {
			if rec := d.lookup(ctx, "alt_url", func() (*model.StoredRecord, error) {
				return d.store.LookupURL(ctx, u)
			}); rec != nil {
				return Decision{IsDuplicate: true, Matched: rec, Similarity: 1.0}
			}
		}
	}

	if c.ExternalID != "" {
		if rec := d.lookup(ctx, "external_id", func() (*model.StoredRecord, error) {
			return d.store.LookupExternalID(ctx, c.ExternalID)
		}); rec != nil {
			return Decision{IsDuplicate: true, Matched: rec, Similarity: 1.0}
		}
	}

	if fp := Fingerprint(c.Title, c.Organization, c.Deadline); fp != "" {
		if rec := d.lookup(ctx, "fingerprint", func() (*model.StoredRecord, error) {
			return d.store.LookupFingerprint(ctx, fp)
		}); rec != nil {
			return Decision{IsDuplicate: true, Matched: rec, Similarity: 1.0}
		}
	}

	return d.fuzzyCheck(ctx, c)
}

// fuzzyCheck scans recent records from the candidate's organization for
// near-identical titles. Crossing the threshold flags the candidate for
// review; it never claims a hard duplicate on fuzzy evidence alone.
func (d *Deduplicator) fuzzyCheck(ctx context.Context, c model.Candidate) Decision {
	if textutil.NormalizeText(c.Title) == "" {
		return Decision{}
	}

	since := d.now().Add(-d.window)
	recent, err := d.store.RecentByOrganization(ctx, textutil.NormalizeText(c.Organization), since)
	if err != nil {
		d.logger.Warn("dedup: recent scan failed", "organization", c.Organization, "error", err)
		return Decision{}
	}

	var best *model.StoredRecord
	var bestSim float64
	for i := range recent {
		sim := textutil.TokenSetSimilarity(c.Title, recent[i].Title)
		if sim > bestSim {
			best = &recent[i]
			bestSim = sim
		}
	}
	if best == nil || bestSim < d.threshold {
		return Decision{Similarity: bestSim}
	}
	d.logger.Debug("dedup: possible duplicate",
		"title", c.Title, "matched_title", best.Title, "similarity", bestSim)
	return Decision{Matched: best, Similarity: bestSim, PossibleDuplicate: true}
}

// lookup runs one exact-match probe, logging and swallowing store errors.
func (d *Deduplicator) lookup(ctx context.Context, kind string, fn func() (*model.StoredRecord, error)) *model.StoredRecord {
	rec, err := fn()
	if err != nil {
		d.logger.Warn("dedup: lookup failed", "kind", kind, "error", err)
		return nil
	}
	return rec
}
