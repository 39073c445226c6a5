// Package recent keeps the capped, most-recent-first history of shows the
// user drilled into, and resolves it against the metadata service.
package recent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/mmcdole/tvshelf/internal/resource"
	"github.com/sourcegraph/conc/iter"
)

const defaultConcurrency = 4

// FailurePolicy decides what Load returns for an entry whose lookup failed
type FailurePolicy int

const (
	// DropFailed omits the entry
	DropFailed FailurePolicy = iota
	// KeepPlaceholder returns the stored id and name flagged as a placeholder
	KeepPlaceholder
)

// ParseFailurePolicy maps a config value to a policy. Unknown values drop.
func ParseFailurePolicy(s string) FailurePolicy {
	if s == "placeholder" {
		return KeepPlaceholder
	}
	return DropFailed
}

// Option configures a Store
type Option func(*Store)

// WithFailurePolicy sets the per-entry failure policy for Load
func WithFailurePolicy(p FailurePolicy) Option {
	return func(s *Store) { s.policy = p }
}

// WithConcurrency bounds the number of parallel show lookups
func WithConcurrency(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the recent-searches cache
type Store struct {
	kv          domain.KeyValueStore
	shows       domain.ShowFetcher
	notifier    domain.Notifier
	logger      *slog.Logger
	policy      FailurePolicy
	concurrency int

	mu  sync.Mutex // Serializes read-modify-write on the stored list
	res *resource.Resource[[]domain.RecentShow]
}

// NewStore creates a recent-searches store
func NewStore(kv domain.KeyValueStore, shows domain.ShowFetcher, notifier domain.Notifier, opts ...Option) *Store {
	if notifier == nil {
		notifier = domain.NoOpNotifier{}
	}
	s := &Store{
		kv:          kv,
		shows:       shows,
		notifier:    notifier,
		logger:      slog.Default(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.res = resource.New(s.Load)
	return s
}

// Entries returns the stored list without resolving it.
// A missing or unreadable blob is an empty list.
func (s *Store) Entries(ctx context.Context) ([]domain.RecentSearch, error) {
	raw, ok, err := s.kv.Get(ctx, domain.KeyRecentSearches)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent searches: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return domain.DecodeRecentSearches(raw), nil
}

// Load returns the stored shows resolved against the metadata service, in
// stored order. Lookups run concurrently; each failure is reported once and
// then handled by the failure policy. Only persistence errors are returned.
func (s *Store) Load(ctx context.Context) ([]domain.RecentShow, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		s.notifier.Notify(domain.NoticeFailure, "Failed to load recent searches", err.Error())
		return nil, err
	}
	if len(entries) == 0 {
		return []domain.RecentShow{}, nil
	}

	type lookup struct {
		show *domain.Show
		err  error
	}

	mapper := iter.Mapper[domain.RecentSearch, lookup]{MaxGoroutines: s.concurrency}
	lookups := mapper.Map(entries, func(e *domain.RecentSearch) lookup {
		show, err := s.shows.GetShow(ctx, e.ID)
		if err == nil && show == nil {
			err = fmt.Errorf("show %d: %w", e.ID, domain.ErrShowNotFound)
		}
		return lookup{show: show, err: err}
	})

	shows := make([]domain.RecentShow, 0, len(entries))
	for i, l := range lookups {
		entry := entries[i]
		if l.err != nil {
			s.logger.Warn("failed to resolve recent search", "id", entry.ID, "name", entry.Name, "error", l.err)
			s.notifier.Notify(domain.NoticeFailure, "Failed to fetch data", l.err.Error())
			if s.policy == KeepPlaceholder {
				shows = append(shows, domain.RecentShow{
					Show:        domain.Show{ID: entry.ID, Name: entry.Name},
					Placeholder: true,
				})
			}
			continue
		}
		shows = append(shows, domain.RecentShow{Show: *l.show})
	}

	s.logger.Debug("loaded recent searches", "stored", len(entries), "resolved", len(shows))
	return shows, nil
}

// Add moves entry to the front of the list, capping it at MaxRecentSearches
func (s *Store) Add(ctx context.Context, entry domain.RecentSearch) error {
	if !entry.Valid() {
		s.logger.Debug("ignoring invalid recent search", "id", entry.ID)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.Entries(ctx)
	if err != nil {
		return s.fail(err)
	}
	if err := s.write(ctx, domain.PrependRecent(entries, entry)); err != nil {
		return s.fail(err)
	}

	s.logger.Info("added recent search", "id", entry.ID, "name", entry.Name)
	s.res.Invalidate()
	return nil
}

// Remove drops every entry with entry's id. Absent ids are not an error.
func (s *Store) Remove(ctx context.Context, entry domain.RecentSearch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.Entries(ctx)
	if err != nil {
		return s.fail(err)
	}

	if updated, removed := domain.RemoveRecent(entries, entry.ID); removed {
		if err := s.write(ctx, updated); err != nil {
			return s.fail(err)
		}
		s.logger.Info("removed recent search", "id", entry.ID)
	}

	s.res.Invalidate()
	return nil
}

// Revalidate reloads the resolved list and publishes it
func (s *Store) Revalidate(ctx context.Context) resource.Snapshot[[]domain.RecentShow] {
	return s.res.Revalidate(ctx)
}

// Snapshot returns the last published state without loading
func (s *Store) Snapshot() resource.Snapshot[[]domain.RecentShow] {
	return s.res.Snapshot()
}

// Subscribe registers fn for every published state, including invalidations
func (s *Store) Subscribe(fn func(resource.Snapshot[[]domain.RecentShow])) (unsubscribe func()) {
	return s.res.Subscribe(fn)
}

func (s *Store) write(ctx context.Context, entries []domain.RecentSearch) error {
	raw, err := domain.EncodeRecentSearches(entries)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, domain.KeyRecentSearches, raw); err != nil {
		return fmt.Errorf("failed to save recent searches: %w", err)
	}
	return nil
}

func (s *Store) fail(err error) error {
	s.logger.Error("recent searches update failed", "error", err)
	s.notifier.Notify(domain.NoticeFailure, "Failed to update recent searches", err.Error())
	return err
}
