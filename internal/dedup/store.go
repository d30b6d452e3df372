package dedup

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stageradar/stageradar/internal/model"
	"github.com/stageradar/stageradar/internal/textutil"
)

// MemoryStore is an in-memory Store keyed by normalized URL, external
// ID, and content fingerprint. It backs tests and small embedded
// deployments; production deployments supply a database-backed Store.
//
// Safe for concurrent use.
type MemoryStore struct {
	mu            sync.RWMutex
	byURL         map[string]*model.StoredRecord
	byExternalID  map[string]*model.StoredRecord
	byFingerprint map[string]*model.StoredRecord
	records       []*model.StoredRecord
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byURL:         make(map[string]*model.StoredRecord),
		byExternalID:  make(map[string]*model.StoredRecord),
		byFingerprint: make(map[string]*model.StoredRecord),
	}
}

// Add indexes a record. A zero ID gets a fresh UUID; an empty
// fingerprint is computed from the record's own fields.
func (s *MemoryStore) Add(rec model.StoredRecord) model.StoredRecord {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Fingerprint == "" {
		rec.Fingerprint = Fingerprint(rec.Title, rec.Organization, rec.Deadline)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := &rec
	s.records = append(s.records, stored)
	if u := textutil.NormalizeURL(rec.URL); u != "" {
		s.byURL[u] = stored
	}
	if rec.ExternalID != "" {
		s.byExternalID[rec.ExternalID] = stored
	}
	if rec.Fingerprint != "" {
		s.byFingerprint[rec.Fingerprint] = stored
	}
	return rec
}

// AddCandidate stores an accepted candidate as a record.
func (s *MemoryStore) AddCandidate(c model.Candidate) model.StoredRecord {
	return s.Add(model.StoredRecord{
		ExternalID:   c.ExternalID,
		URL:          c.URL,
		Title:        c.Title,
		Organization: c.Organization,
		Deadline:     c.Deadline,
	})
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// LookupURL implements Store.
func (s *MemoryStore) LookupURL(_ context.Context, normalizedURL string) (*model.StoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRec(s.byURL[normalizedURL]), nil
}

// LookupExternalID implements Store.
func (s *MemoryStore) LookupExternalID(_ context.Context, externalID string) (*model.StoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRec(s.byExternalID[externalID]), nil
}

// LookupFingerprint implements Store.
func (s *MemoryStore) LookupFingerprint(_ context.Context, fingerprint string) (*model.StoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRec(s.byFingerprint[fingerprint]), nil
}

// RecentByOrganization implements Store. An empty organization matches
// every record, so candidates without an organization are still fuzzy
// checked against the recent window.
func (s *MemoryStore) RecentByOrganization(_ context.Context, organization string, since time.Time) ([]model.StoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.StoredRecord
	for _, rec := range s.records {
		if rec.CreatedAt.Before(since) {
			continue
		}
		if organization != "" && textutil.NormalizeText(rec.Organization) != organization {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func copyRec(rec *model.StoredRecord) *model.StoredRecord {
	if rec == nil {
		return nil
	}
	cp := *rec
	return &cp
}
