package stageradar

import (
	"log/slog"
	"time"
)

// Option configures an Engine.
type Option func(*resolvedOptions)

// resolvedOptions holds all extension points after applying defaults.
// Unexported — callers use the With* functions.
type resolvedOptions struct {
	logger         *slog.Logger
	profile        *Profile
	store          RecordStore
	clock          func() time.Time
	dedupThreshold float64
	dedupWindow    time.Duration
	cacheSize      int
	cacheTTL       time.Duration
	maxParallel    int
	skipDotenv     bool
}

// WithLogger sets the structured logger for the Engine.
// If not set, the default slog logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *resolvedOptions) { o.logger = logger }
}

// WithProfile replaces the env-derived agency profile used for lead
// scoring.
func WithProfile(p Profile) Option {
	return func(o *resolvedOptions) { o.profile = &p }
}

// WithRecordStore supplies the store of previously accepted leads
// consulted during duplicate checks. Without it the Engine keeps an
// in-memory store fed via RememberLead.
func WithRecordStore(rs RecordStore) Option {
	return func(o *resolvedOptions) { o.store = rs }
}

// WithClock overrides the time source. Deadline buckets, dedup windows,
// and seasonal factors all derive from it, so tests can pin a date and
// get bit-identical output.
func WithClock(now func() time.Time) Option {
	return func(o *resolvedOptions) { o.clock = now }
}

// WithDedupThreshold overrides the fuzzy title similarity above which a
// lead is flagged as a possible duplicate (STAGERADAR_DEDUP_THRESHOLD).
func WithDedupThreshold(threshold float64) Option {
	return func(o *resolvedOptions) { o.dedupThreshold = threshold }
}

// WithDedupWindow overrides how far back fuzzy matching looks
// (STAGERADAR_DEDUP_WINDOW).
func WithDedupWindow(window time.Duration) Option {
	return func(o *resolvedOptions) { o.dedupWindow = window }
}

// WithReportCache overrides the artist report cache bounds
// (STAGERADAR_CACHE_SIZE, STAGERADAR_CACHE_TTL).
func WithReportCache(size int, ttl time.Duration) Option {
	return func(o *resolvedOptions) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

// WithMaxParallel overrides the concurrency bound for batch scoring
// (STAGERADAR_MAX_PARALLEL).
func WithMaxParallel(n int) Option {
	return func(o *resolvedOptions) { o.maxParallel = n }
}

// WithoutDotenv skips loading a .env file during New. Mainly for tests
// and hosts that manage their own environment.
func WithoutDotenv() Option {
	return func(o *resolvedOptions) { o.skipDotenv = true }
}
