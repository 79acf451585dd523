// Package cache holds the in-memory dataset snapshots served to the
// matching pipeline. Entries expire after a TTL; expired reads trigger a
// single-flight refresh from the sheet, and a failed refresh falls back to
// the stale copy so the bot keeps answering during sheet outages.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/wayacademy/manychat-bot-go/internal/errors"
	"github.com/wayacademy/manychat-bot-go/internal/logger"
	"github.com/wayacademy/manychat-bot-go/internal/metrics"
	"github.com/wayacademy/manychat-bot-go/internal/record"
	"github.com/wayacademy/manychat-bot-go/internal/storage"
)

// Dataset names served by the store.
const (
	DatasetCourses = "courses"
	DatasetFAQs    = "faqs"
)

// Fetcher retrieves raw worksheet rows. Satisfied by sheets.Client.
type Fetcher interface {
	FetchRows(ctx context.Context, sheet string) ([][]string, error)
}

// Dataset binds a cache key to its worksheet and record kind.
type Dataset struct {
	Name  string
	Sheet string
	Kind  record.Kind
}

// DefaultDatasets maps the two worksheets the bot answers from.
func DefaultDatasets(coursesSheet, faqSheet string) []Dataset {
	return []Dataset{
		{Name: DatasetCourses, Sheet: coursesSheet, Kind: record.KindCourse},
		{Name: DatasetFAQs, Sheet: faqSheet, Kind: record.KindFAQ},
	}
}

type entry struct {
	records   []record.Record
	fetchedAt time.Time
}

// Store is a TTL cache over the configured datasets.
type Store struct {
	fetcher  Fetcher
	db       *storage.DB // nil disables persistence
	ttl      time.Duration
	metrics  *metrics.Metrics
	log      *logger.Logger
	now      func() time.Time
	group    singleflight.Group
	datasets map[string]Dataset

	mu      sync.RWMutex
	entries map[string]*entry
}

// Option configures a Store.
type Option func(*Store)

// WithStorage enables snapshot persistence across restarts.
func WithStorage(db *storage.DB) Option {
	return func(s *Store) { s.db = db }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithClock overrides the time source in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store over the given datasets.
func New(fetcher Fetcher, datasets []Dataset, ttl time.Duration, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		fetcher:  fetcher,
		ttl:      ttl,
		log:      log.WithModule("cache"),
		now:      time.Now,
		datasets: make(map[string]Dataset, len(datasets)),
		entries:  make(map[string]*entry, len(datasets)),
	}
	for _, d := range datasets {
		s.datasets[d.Name] = d
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the records for a dataset, refreshing when the cached copy
// has expired. A failed refresh serves the stale copy, then the persisted
// snapshot, then an empty slice. Only an unknown dataset name errors.
func (s *Store) Get(ctx context.Context, dataset string) ([]record.Record, error) {
	d, ok := s.datasets[dataset]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownDataset, dataset)
	}

	s.mu.RLock()
	e := s.entries[dataset]
	s.mu.RUnlock()

	if e != nil && s.now().Sub(e.fetchedAt) < s.ttl {
		if s.metrics != nil {
			s.metrics.RecordCacheHit(dataset)
		}
		return e.records, nil
	}

	if s.metrics != nil {
		s.metrics.RecordCacheMiss(dataset)
	}

	records, err, shared := s.group.Do(dataset, func() (any, error) {
		// A concurrent caller may have refreshed while this one waited
		// for the flight slot.
		s.mu.RLock()
		e := s.entries[dataset]
		s.mu.RUnlock()
		if e != nil && s.now().Sub(e.fetchedAt) < s.ttl {
			return e.records, nil
		}
		// The flight is shared; the triggering request's cancellation
		// must not starve the other waiters.
		return s.refresh(context.WithoutCancel(ctx), d), nil
	})
	if shared && s.metrics != nil {
		s.metrics.RecordSingleflightDedup(dataset)
	}
	if err != nil {
		// refresh never errors; this is singleflight plumbing only
		return nil, err
	}
	return records.([]record.Record), nil
}

// refresh fetches, parses, caches and persists one dataset. On failure it
// returns the best available fallback and leaves the cache entry's expiry
// untouched so the next read retries.
func (s *Store) refresh(ctx context.Context, d Dataset) []record.Record {
	rows, err := s.fetcher.FetchRows(ctx, d.Sheet)
	if err == nil {
		records, parseErr := record.FromRows(d.Kind, rows)
		if parseErr == nil {
			s.store(d.Name, records)
			s.persist(ctx, d.Name, records)
			return records
		}
		err = parseErr
	}

	s.log.WithError(err).WithField("dataset", d.Name).Warn("refresh failed, serving fallback")

	// Stale in-memory copy first
	s.mu.RLock()
	e := s.entries[d.Name]
	s.mu.RUnlock()
	if e != nil {
		if s.metrics != nil {
			s.metrics.RecordCacheStaleServed(d.Name)
		}
		return e.records
	}

	// Then the persisted snapshot from a previous run
	if s.db != nil {
		snap, loadErr := s.db.LoadSnapshot(ctx, d.Name)
		if loadErr == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheStaleServed(d.Name)
			}
			// Cache it as already-expired so the next read retries the sheet
			s.storeAt(d.Name, snap.Records, s.now().Add(-s.ttl))
			return snap.Records
		}
	}

	return []record.Record{}
}

func (s *Store) store(dataset string, records []record.Record) {
	s.storeAt(dataset, records, s.now())
}

func (s *Store) storeAt(dataset string, records []record.Record, fetchedAt time.Time) {
	s.mu.Lock()
	s.entries[dataset] = &entry{records: records, fetchedAt: fetchedAt}
	s.mu.Unlock()
}

func (s *Store) persist(ctx context.Context, dataset string, records []record.Record) {
	if s.db == nil {
		return
	}
	if err := s.db.SaveSnapshot(ctx, dataset, records); err != nil {
		s.log.WithError(err).WithField("dataset", dataset).Warn("failed to persist snapshot")
	}
}

// RefreshAll force-refreshes every dataset and returns record counts by
// dataset name. Used by the admin endpoint and the background job.
func (s *Store) RefreshAll(ctx context.Context) map[string]int {
	counts := make(map[string]int, len(s.datasets))
	for name, d := range s.datasets {
		records, _, _ := s.group.Do("force:"+name, func() (any, error) {
			return s.refresh(ctx, d), nil
		})
		counts[name] = len(records.([]record.Record))
	}
	return counts
}

// WarmFromStorage loads persisted snapshots into memory, marked expired so
// the first read still refreshes. Called once at startup.
func (s *Store) WarmFromStorage(ctx context.Context) {
	if s.db == nil {
		return
	}
	for name := range s.datasets {
		snap, err := s.db.LoadSnapshot(ctx, name)
		if err != nil {
			continue
		}
		s.storeAt(name, snap.Records, s.now().Add(-s.ttl))
		s.log.WithFields(map[string]any{
			"dataset": name,
			"records": len(snap.Records),
		}).Info("warmed dataset from snapshot")
	}
}

// Status reports per-dataset record counts and ages for readiness checks.
func (s *Store) Status() map[string]DatasetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]DatasetStatus, len(s.datasets))
	for name := range s.datasets {
		st := DatasetStatus{}
		if e := s.entries[name]; e != nil {
			st.Loaded = true
			st.Records = len(e.records)
			st.AgeSeconds = s.now().Sub(e.fetchedAt).Seconds()
		}
		out[name] = st
	}
	return out
}

// DatasetStatus describes one cached dataset.
type DatasetStatus struct {
	Loaded     bool    `json:"loaded"`
	Records    int     `json:"records"`
	AgeSeconds float64 `json:"age_seconds"`
}
