package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/tvshelf/internal/domain"
)

// Result is a remote search hit with its local match quality
type Result struct {
	Show     *domain.Show
	Matched  bool // Title contains the query as an in-order subsequence
	Distance int  // Edit distance to the title, only meaningful when Matched
}

// Service handles show search and discovery against the metadata client
type Service struct {
	client domain.MetadataClient
	logger *slog.Logger
}

// NewService creates a new search service
func NewService(client domain.MetadataClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		logger: logger,
	}
}

// Search queries the remote service and re-ranks the hits locally.
// Titles that fuzzy-match the query come first, closest first; the rest
// follow in server order. An empty query returns nil without a remote call.
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	shows, err := s.client.SearchShows(ctx, query)
	if err != nil {
		s.logger.Error("show search failed", "query", query, "error", err)
		return nil, err
	}

	results := Rank(query, shows)
	s.logger.Debug("show search", "query", query, "results", len(results))
	return results, nil
}

// Trending returns today's trending shows
func (s *Service) Trending(ctx context.Context) ([]*domain.Show, error) {
	shows, err := s.client.TrendingShows(ctx)
	if err != nil {
		s.logger.Error("trending lookup failed", "error", err)
		return nil, err
	}
	return shows, nil
}

// Rank orders shows by how well their titles match query
func Rank(query string, shows []*domain.Show) []Result {
	if len(shows) == 0 {
		return nil
	}

	titles := make([]string, len(shows))
	for i, sh := range shows {
		titles[i] = sh.DisplayTitle()
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	results := make([]Result, 0, len(shows))
	matched := make([]bool, len(shows))
	for _, r := range ranks {
		matched[r.OriginalIndex] = true
		results = append(results, Result{
			Show:     shows[r.OriginalIndex],
			Matched:  true,
			Distance: r.Distance,
		})
	}
	for i, sh := range shows {
		if !matched[i] {
			results = append(results, Result{Show: sh})
		}
	}
	return results
}

// FilterRecent keeps the recent shows whose titles fuzzy-match query,
// in their stored order. An empty query keeps everything.
func FilterRecent(query string, recent []domain.RecentShow) []domain.RecentShow {
	query = strings.TrimSpace(query)
	if query == "" {
		return recent
	}
	var out []domain.RecentShow
	for _, r := range recent {
		if fuzzy.MatchNormalizedFold(query, r.DisplayTitle()) {
			out = append(out, r)
		}
	}
	return out
}
