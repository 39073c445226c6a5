package tui

import (
	"strings"

	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/mmcdole/tvshelf/internal/search"
	"github.com/sahilm/fuzzy"
)

// Section titles on the search screen
const (
	SectionRecent   = "Recent Searches"
	SectionTrending = "Trending"
	SectionResults  = "Search Results"
)

// row is one selectable show on the search screen
type row struct {
	Section     string
	Show        domain.Show
	Recent      bool
	Placeholder bool
	Matched     bool
}

// buildRows lays out the search screen. Recent searches show while the
// query is empty or has no results; trending shows join them when the query
// is empty and the recent list is short.
func buildRows(input string, recent []domain.RecentShow, trending []*domain.Show, query string, results []search.Result, threshold int) []row {
	input = strings.TrimSpace(input)
	hasResults := input != "" && len(results) > 0

	var rows []row
	if !hasResults {
		for _, r := range search.FilterRecent(input, recent) {
			rows = append(rows, row{Section: SectionRecent, Show: r.Show, Recent: true, Placeholder: r.Placeholder})
		}
	}
	if input == "" && len(recent) <= threshold {
		for _, s := range trending {
			rows = append(rows, row{Section: SectionTrending, Show: *s})
		}
	}
	if hasResults {
		for _, r := range results {
			rows = append(rows, row{Section: SectionResults, Show: *r.Show, Matched: r.Matched})
		}
	}
	return rows
}

// episodeMatch is a visible episode with the name offsets that matched the filter
type episodeMatch struct {
	Episode        domain.Episode
	MatchedIndexes []int
}

// episodeSource implements fuzzy.Source over episode names
type episodeSource []domain.Episode

func (s episodeSource) String(i int) string { return s[i].Name }
func (s episodeSource) Len() int            { return len(s) }

// visibleEpisodes applies the episode filter. A number selects that episode
// (plus specials numbered 0), anything else fuzzy-matches names, best first.
func visibleEpisodes(episodes []domain.Episode, filter string) []episodeMatch {
	filter = strings.TrimSpace(filter)

	selected := domain.AllEpisodes
	if filter != "" && isDigits(filter) {
		selected = strings.TrimLeft(filter, "0")
		if selected == "" {
			selected = "0"
		}
	}

	if filter == "" || selected != domain.AllEpisodes {
		kept := domain.FilterEpisodes(episodes, selected)
		out := make([]episodeMatch, len(kept))
		for i, ep := range kept {
			out[i] = episodeMatch{Episode: ep}
		}
		return out
	}

	matches := fuzzy.FindFrom(filter, episodeSource(episodes))
	out := make([]episodeMatch, len(matches))
	for i, match := range matches {
		out[i] = episodeMatch{Episode: episodes[match.Index], MatchedIndexes: match.MatchedIndexes}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
