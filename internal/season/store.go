// Package season persists the pinned "current season" pointer and derives
// the pinned show's season bounds on load.
package season

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/mmcdole/tvshelf/internal/resource"
)

// Option configures a Store
type Option func(*Store)

// WithPreferences sets the configured default show and season used by Preferred
func WithPreferences(p domain.Preferences) Option {
	return func(s *Store) { s.prefs = p }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the current-season cache
type Store struct {
	kv       domain.KeyValueStore
	shows    domain.ShowFetcher
	notifier domain.Notifier
	logger   *slog.Logger
	prefs    domain.Preferences

	mu  sync.Mutex // Serializes writes of the pointer
	res *resource.Resource[domain.CurrentSeason]
}

// NewStore creates a current-season store
func NewStore(kv domain.KeyValueStore, shows domain.ShowFetcher, notifier domain.Notifier, opts ...Option) *Store {
	if notifier == nil {
		notifier = domain.NoOpNotifier{}
	}
	s := &Store{
		kv:       kv,
		shows:    shows,
		notifier: notifier,
		logger:   slog.Default(),
		prefs:    domain.Preferences{CurrShowSeason: -1},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.res = resource.New(s.Load)
	return s
}

// Pointer returns the stored pointer, or nil when nothing is pinned or the
// stored value is unreadable.
func (s *Store) Pointer(ctx context.Context) (*domain.SeasonPointer, error) {
	raw, ok, err := s.kv.Get(ctx, domain.KeyCurrentSeason)
	if err != nil {
		return nil, fmt.Errorf("failed to read current season: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return domain.DecodeSeasonPointer(raw), nil
}

// Load returns the pinned pointer and the bounds of its show.
// Nothing pinned means no remote call. A failed show lookup is reported and
// the pointer comes back with zero bounds.
func (s *Store) Load(ctx context.Context) (domain.CurrentSeason, error) {
	p, err := s.Pointer(ctx)
	if err != nil {
		s.notifier.Notify(domain.NoticeFailure, "Failed to load current season", err.Error())
		return domain.CurrentSeason{}, err
	}
	if p == nil {
		return domain.CurrentSeason{}, nil
	}
	return domain.CurrentSeason{Pointer: p, Bounds: s.bounds(ctx, p.ID)}, nil
}

// Set pins p. A nil or invalid pointer is ignored.
func (s *Store) Set(ctx context.Context, p *domain.SeasonPointer) error {
	if p == nil || !p.Valid() {
		s.logger.Debug("ignoring invalid season pointer")
		return nil
	}
	if err := s.write(ctx, p); err != nil {
		return err
	}
	s.logger.Info("pinned current season", "id", p.ID, "season", p.SeasonNumber)
	s.res.Invalidate()
	return nil
}

// Clear unpins the current season
func (s *Store) Clear(ctx context.Context) error {
	if err := s.write(ctx, nil); err != nil {
		return err
	}
	s.logger.Info("cleared current season")
	s.res.Invalidate()
	return nil
}

// Preferred returns the season configured in preferences together with the
// bounds of its show. It does not touch the stored pointer.
func (s *Store) Preferred(ctx context.Context) (domain.CurrentSeason, error) {
	if !s.prefs.IsSet() {
		s.notifier.Notify(domain.NoticeFailure, "No show and/or season is set in preferences", "")
		return domain.CurrentSeason{}, domain.ErrNoPreferredShow
	}
	p := s.prefs.Pointer()
	return domain.CurrentSeason{Pointer: &p, Bounds: s.bounds(ctx, p.ID)}, nil
}

// Revalidate reloads the current season and publishes it
func (s *Store) Revalidate(ctx context.Context) resource.Snapshot[domain.CurrentSeason] {
	return s.res.Revalidate(ctx)
}

// Snapshot returns the last published state without loading
func (s *Store) Snapshot() resource.Snapshot[domain.CurrentSeason] {
	return s.res.Snapshot()
}

// Subscribe registers fn for every published state, including invalidations
func (s *Store) Subscribe(fn func(resource.Snapshot[domain.CurrentSeason])) (unsubscribe func()) {
	return s.res.Subscribe(fn)
}

func (s *Store) bounds(ctx context.Context, showID int) domain.SeasonBounds {
	show, err := s.shows.GetShow(ctx, showID)
	if err == nil && show == nil {
		err = fmt.Errorf("show %d: %w", showID, domain.ErrShowNotFound)
	}
	if err != nil {
		s.logger.Warn("failed to resolve current season show", "id", showID, "error", err)
		s.notifier.Notify(domain.NoticeFailure, "Failed to fetch data", err.Error())
		return domain.SeasonBounds{}
	}
	return show.Bounds()
}

func (s *Store) write(ctx context.Context, p *domain.SeasonPointer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := domain.EncodeSeasonPointer(p)
	if err == nil {
		err = s.kv.Set(ctx, domain.KeyCurrentSeason, raw)
	}
	if err != nil {
		err = fmt.Errorf("failed to save current season: %w", err)
		s.logger.Error("current season update failed", "error", err)
		s.notifier.Notify(domain.NoticeFailure, "Failed to update current season", err.Error())
		return err
	}
	return nil
}
