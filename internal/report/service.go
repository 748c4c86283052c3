package report

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/airlens/airlens/internal/aqi"
	"github.com/airlens/airlens/internal/city"
	"github.com/airlens/airlens/internal/telemetry"
)

// coordinateKey is the synthetic cache key used for "lat,lon" queries.
const coordinateKey = "current"

// coordinateState is the state label attached to coordinate lookups.
const coordinateState = "Your Location"

// Source produces normalized payloads for place queries.
type Source interface {
	Fetch(ctx context.Context, query string) (Payload, error)
}

// ServiceConfig holds configuration for the record service.
type ServiceConfig struct {
	// Source is the external data adapter (required).
	Source Source

	// Directory is the city directory (required).
	Directory *city.Directory

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long a record stays fresh (default: 5 minutes).
	// Expiry is per key; a record past its TTL is refreshed on the next
	// access for that key only.
	CacheTTL time.Duration

	// Metrics records cache hit/miss counts (optional).
	Metrics *telemetry.ProviderMetrics
}

// Service owns the per-key record cache and orchestrates fetches on miss.
// Concurrent misses for the same key are coalesced into a single upstream
// call; all callers receive the same record.
type Service struct {
	source   Source
	dir      *city.Directory
	logger   zerolog.Logger
	cacheTTL time.Duration
	metrics  *telemetry.ProviderMetrics

	mu    sync.RWMutex
	cache map[string]*cachedRecord
	group singleflight.Group
}

type cachedRecord struct {
	record    Record
	expiresAt time.Time
}

// NewService creates a record service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &Service{
		source:   cfg.Source,
		dir:      cfg.Directory,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
		metrics:  cfg.Metrics,
		cache:    make(map[string]*cachedRecord),
	}
}

// GetOrFetch returns the record cached under key, fetching it from the
// adapter when absent or expired. The query is the literal string sent
// upstream; name and state are the caller-supplied identity defaults, which
// yield to the adapter-reported location when present.
func (s *Service) GetOrFetch(ctx context.Context, key, query, name, state string) (Record, error) {
	if record, ok := s.lookup(key); ok {
		s.metrics.RecordCacheHit(key)
		return record, nil
	}
	s.metrics.RecordCacheMiss(key)

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have stored the record while this one
		// waited on the flight group.
		if record, ok := s.lookup(key); ok {
			return record, nil
		}

		s.logger.Debug().
			Str("key", key).
			Str("query", query).
			Msg("cache miss, fetching record")

		payload, fetchErr := s.source.Fetch(ctx, query)
		if fetchErr != nil {
			return Record{}, fetchErr
		}

		record := buildRecord(key, name, state, payload)
		s.store(key, record)
		return record, nil
	})
	if err != nil {
		return Record{}, err
	}

	return v.(Record), nil
}

// GetByQuery serves the weather lookup surface. A query containing a comma
// is treated as a verbatim "lat,lon" pair under the synthetic coordinate
// key; anything else is resolved against the directory, with unmatched
// queries synthesized into ad-hoc identities.
func (s *Service) GetByQuery(ctx context.Context, query string) (Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Record{}, ErrEmptyQuery
	}

	if strings.Contains(query, ",") {
		return s.GetOrFetch(ctx, coordinateKey, query, query, coordinateState)
	}

	identity, ok := s.dir.Resolve(query)
	if !ok {
		identity = s.dir.Synthesize(query)
	}

	return s.GetOrFetch(ctx, identity.ID, identity.Name, identity.Name, identity.State)
}

// GetAll returns one record per directory entry, fetching concurrently.
func (s *Service) GetAll(ctx context.Context) ([]Record, error) {
	entries := s.dir.Entries()
	records := make([]Record, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		g.Go(func() error {
			record, err := s.GetOrFetch(ctx, entry.ID, entry.Name, entry.Name, entry.State)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// InvalidateCache drops every cached record.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedRecord)
}

// CacheStats reports the current cache state.
func (s *Service) CacheStats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	fresh := 0
	for _, c := range s.cache {
		if now.Before(c.expiresAt) {
			fresh++
		}
	}

	return CacheStats{
		Entries:      len(s.cache),
		FreshEntries: fresh,
		TTL:          s.cacheTTL,
	}
}

// CacheStats contains record cache statistics.
type CacheStats struct {
	Entries      int           `json:"entries"`
	FreshEntries int           `json:"freshEntries"`
	TTL          time.Duration `json:"ttl"`
}

// lookup returns the record under key if present and fresh.
func (s *Service) lookup(key string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cache[key]
	if !ok || time.Now().After(c.expiresAt) {
		return Record{}, false
	}
	return c.record, true
}

// store replaces the record under key wholesale.
func (s *Service) store(key string, record Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = &cachedRecord{
		record:    record,
		expiresAt: time.Now().Add(s.cacheTTL),
	}
}

// buildRecord attaches an identity to a payload, preferring the
// provider-reported name and state over the caller-supplied defaults.
func buildRecord(key, name, state string, payload Payload) Record {
	if payload.LocationName != "" {
		name = payload.LocationName
	}
	if payload.Region != "" {
		state = payload.Region
	}

	return Record{
		Identity: city.Identity{
			ID:    key,
			Name:  name,
			State: state,
		},
		AQI:           payload.AQI,
		Category:      aqi.CategoryFor(payload.AQI),
		MainPollutant: payload.MainPollutant,
		Pollutants:    payload.Pollutants,
		Weather:       payload.Weather,
		History:       payload.History,
		DataSource:    payload.DataSource,
		IsFallback:    payload.IsFallback,
		FetchedAt:     time.Now(),
	}
}
