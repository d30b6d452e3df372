package stageradar

import (
	"context"
	"time"

	"github.com/stageradar/stageradar/internal/model"
)

// RecordStore supplies previously accepted leads for duplicate
// comparison. Lookups return nil (not an error) on a miss.
//
// Implementations back onto whatever the host application persists
// leads in; the engine ships an in-memory store for callers that
// don't bring their own.
type RecordStore interface {
	// LookupURL returns the lead with the given normalized URL, or nil.
	LookupURL(ctx context.Context, normalizedURL string) (*StoredLead, error)
	// LookupExternalID returns the lead with the given source-provided ID, or nil.
	LookupExternalID(ctx context.Context, externalID string) (*StoredLead, error)
	// LookupFingerprint returns the lead with the given content fingerprint, or nil.
	LookupFingerprint(ctx context.Context, fingerprint string) (*StoredLead, error)
	// RecentByOrganization returns leads from the given organization
	// created after since. An empty organization matches all leads.
	RecentByOrganization(ctx context.Context, organization string, since time.Time) ([]StoredLead, error)
}

// storeAdapter bridges a caller-supplied RecordStore onto the internal
// dedup store interface.
type storeAdapter struct {
	rs RecordStore
}

func (a storeAdapter) LookupURL(ctx context.Context, normalizedURL string) (*model.StoredRecord, error) {
	rec, err := a.rs.LookupURL(ctx, normalizedURL)
	return toModelStoredRecord(rec), err
}

func (a storeAdapter) LookupExternalID(ctx context.Context, externalID string) (*model.StoredRecord, error) {
	rec, err := a.rs.LookupExternalID(ctx, externalID)
	return toModelStoredRecord(rec), err
}

func (a storeAdapter) LookupFingerprint(ctx context.Context, fingerprint string) (*model.StoredRecord, error) {
	rec, err := a.rs.LookupFingerprint(ctx, fingerprint)
	return toModelStoredRecord(rec), err
}

func (a storeAdapter) RecentByOrganization(ctx context.Context, organization string, since time.Time) ([]model.StoredRecord, error) {
	recs, err := a.rs.RecentByOrganization(ctx, organization, since)
	if recs == nil {
		return nil, err
	}
	out := make([]model.StoredRecord, len(recs))
	for i := range recs {
		out[i] = model.StoredRecord(recs[i])
	}
	return out, err
}
