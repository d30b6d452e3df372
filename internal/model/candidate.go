// Package model holds the domain value types shared by the scoring,
// deduplication, and artist intelligence engines. All types are plain
// value objects: computed once, never mutated afterward.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a point of contact attached to a candidate lead.
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

// Candidate is a raw lead produced by the external ingestion layer
// (RSS, HTML, email, APIs). The core never fetches anything itself;
// every field here arrives pre-extracted and possibly noisy.
//
// Title is the only required field. Everything else may be missing,
// and the scorer degrades each missing field to a neutral contribution
// instead of failing.
type Candidate struct {
	ExternalID   string     `json:"external_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Organization string     `json:"organization,omitempty"`
	URL          string     `json:"url,omitempty"`
	AltURLs      []string   `json:"alt_urls,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`

	// Deadline is the parsed response deadline when the ingestion layer
	// could parse one; DeadlineText carries the raw text otherwise and
	// the scorer attempts a best-effort parse.
	Deadline     *time.Time `json:"deadline,omitempty"`
	DeadlineText string     `json:"deadline_text,omitempty"`
	EventDate    *time.Time `json:"event_date,omitempty"`

	Location Location `json:"location,omitempty"`

	// Budget is the extracted amount when numeric; BudgetText carries
	// free-text hints ("cachet à négocier"); PricePoints lists every
	// amount found in the source text.
	Budget      *float64  `json:"budget,omitempty"`
	BudgetText  string    `json:"budget_text,omitempty"`
	PricePoints []float64 `json:"price_points,omitempty"`

	Contacts   []Contact `json:"contacts,omitempty"`
	Conditions string    `json:"conditions,omitempty"`

	Source     string `json:"source,omitempty"`
	SourceType string `json:"source_type,omitempty"`
}

// Text returns the candidate's searchable text (title + description),
// used by the keyword-driven scoring components.
func (c Candidate) Text() string {
	if c.Description == "" {
		return c.Title
	}
	return c.Title + " " + c.Description
}

// HasBudgetInfo reports whether any budget signal is present.
func (c Candidate) HasBudgetInfo() bool {
	return c.Budget != nil || c.BudgetText != "" || len(c.PricePoints) > 0
}

// BudgetAmount returns the best numeric budget estimate: the explicit
// amount when present, otherwise the highest listed price point.
// The boolean is false when no numeric signal exists.
func (c Candidate) BudgetAmount() (float64, bool) {
	if c.Budget != nil {
		return *c.Budget, true
	}
	if len(c.PricePoints) == 0 {
		return 0, false
	}
	maxPoint := c.PricePoints[0]
	for _, p := range c.PricePoints[1:] {
		if p > maxPoint {
			maxPoint = p
		}
	}
	return maxPoint, true
}

// StoredRecord is the persisted view of a previously accepted lead,
// as supplied by the external persistence collaborator for duplicate
// comparison. The core never writes these.
type StoredRecord struct {
	ID           uuid.UUID  `json:"id"`
	ExternalID   string     `json:"external_id,omitempty"`
	URL          string     `json:"url,omitempty"`
	Title        string     `json:"title"`
	Organization string     `json:"organization,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Fingerprint  string     `json:"fingerprint,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
