// Package reportcache keeps recently generated artist reports in a
// bounded in-memory LRU with a freshness TTL, keyed by normalized
// artist name.
package reportcache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/stageradar/stageradar/internal/model"
)

// Cache is safe for concurrent use.
type Cache struct {
	lru *expirable.LRU[string, *model.Report]
}

// New builds a cache holding at most size reports, each valid for ttl.
// A non-positive size falls back to 128 entries; a non-positive ttl
// disables expiry.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 128
	}
	return &Cache{lru: expirable.NewLRU[string, *model.Report](size, nil, ttl)}
}

func key(artistName string) string {
	return strings.ToLower(strings.TrimSpace(artistName))
}

// Get returns the cached report for the artist, or false when absent
// or expired.
func (c *Cache) Get(artistName string) (*model.Report, bool) {
	k := key(artistName)
	if k == "" {
		return nil, false
	}
	return c.lru.Get(k)
}

// Put stores the report under its artist name. Empty names are ignored.
func (c *Cache) Put(artistName string, report *model.Report) {
	k := key(artistName)
	if k == "" || report == nil {
		return
	}
	c.lru.Add(k, report)
}

// Invalidate drops a single artist's cached report.
func (c *Cache) Invalidate(artistName string) {
	c.lru.Remove(key(artistName))
}

// Purge drops everything.
func (c *Cache) Purge() { c.lru.Purge() }

// Len reports the number of live entries.
func (c *Cache) Len() int { return c.lru.Len() }
