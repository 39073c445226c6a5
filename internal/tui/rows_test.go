package tui

import (
	"testing"

	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/mmcdole/tvshelf/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recentShows(names ...string) []domain.RecentShow {
	out := make([]domain.RecentShow, len(names))
	for i, n := range names {
		out[i] = domain.RecentShow{Show: domain.Show{ID: i + 1, Name: n}}
	}
	return out
}

func sections(rows []row) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.Section)
	}
	return out
}

func TestBuildRows_EmptyQueryShowsTrendingUnderThreshold(t *testing.T) {
	recent := recentShows("Severance", "Andor")
	trending := []*domain.Show{{ID: 100, Name: "The Bear"}}

	rows := buildRows("", recent, trending, "", nil, 3)

	assert.Equal(t, []string{SectionRecent, SectionRecent, SectionTrending}, sections(rows))
	assert.True(t, rows[0].Recent)
	assert.Equal(t, "The Bear", rows[2].Show.Name)
}

func TestBuildRows_HidesTrendingOverThreshold(t *testing.T) {
	recent := recentShows("A", "B", "C", "D")
	trending := []*domain.Show{{ID: 100, Name: "The Bear"}}

	rows := buildRows("", recent, trending, "", nil, 3)

	assert.Equal(t, []string{SectionRecent, SectionRecent, SectionRecent, SectionRecent}, sections(rows))
}

func TestBuildRows_ResultsReplaceRecent(t *testing.T) {
	recent := recentShows("Severance")
	results := []search.Result{
		{Show: &domain.Show{ID: 7, Name: "Severance"}, Matched: true},
		{Show: &domain.Show{ID: 8, Name: "Severed"}},
	}

	rows := buildRows("sev", recent, nil, "sev", results, 3)

	require.Len(t, rows, 2)
	assert.Equal(t, SectionResults, rows[0].Section)
	assert.True(t, rows[0].Matched)
	assert.False(t, rows[1].Recent)
}

func TestBuildRows_NoResultsFiltersRecent(t *testing.T) {
	recent := recentShows("Severance", "Andor")

	rows := buildRows("andr", recent, nil, "", nil, 3)

	require.Len(t, rows, 1)
	assert.Equal(t, "Andor", rows[0].Show.Name)
	assert.Equal(t, SectionRecent, rows[0].Section)
}

func TestBuildRows_PlaceholderCarried(t *testing.T) {
	recent := []domain.RecentShow{{Show: domain.Show{ID: 3, Name: "Gone"}, Placeholder: true}}

	rows := buildRows("", recent, nil, "", nil, 0)

	require.Len(t, rows, 1)
	assert.True(t, rows[0].Placeholder)
}

func testEpisodes() []domain.Episode {
	return []domain.Episode{
		{EpisodeNumber: 0, Name: "Special"},
		{EpisodeNumber: 1, Name: "Pilot"},
		{EpisodeNumber: 2, Name: "The Return"},
		{EpisodeNumber: 12, Name: "Finale"},
	}
}

func episodeNumbers(matches []episodeMatch) []int {
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Episode.EpisodeNumber
	}
	return out
}

func TestVisibleEpisodes(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   []int
	}{
		{"empty keeps all", "", []int{0, 1, 2, 12}},
		{"whitespace keeps all", "  ", []int{0, 1, 2, 12}},
		{"number selects episode and specials", "2", []int{0, 2}},
		{"leading zeros ignored", "012", []int{0, 12}},
		{"zero selects specials", "0", []int{0}},
		{"unknown number keeps specials", "40", []int{0}},
		{"name match", "pilot", []int{1}},
		{"no match", "zzz", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, episodeNumbers(visibleEpisodes(testEpisodes(), tt.filter)))
		})
	}
}

func TestVisibleEpisodes_NameMatchHasIndexes(t *testing.T) {
	matches := visibleEpisodes(testEpisodes(), "fin")

	require.Len(t, matches, 1)
	assert.Equal(t, []int{0, 1, 2}, matches[0].MatchedIndexes)
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name               string
		total, cursor, h   int
		wantStart, wantEnd int
	}{
		{"fits", 3, 2, 10, 0, 3},
		{"cursor at top", 20, 0, 5, 0, 5},
		{"cursor centered", 20, 10, 5, 8, 13},
		{"cursor at bottom", 20, 19, 5, 15, 20},
		{"zero height", 5, 3, 0, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := window(tt.total, tt.cursor, tt.h)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestSectionCount(t *testing.T) {
	rows := []row{{Section: SectionRecent}, {Section: SectionRecent}, {Section: SectionTrending}}
	assert.Equal(t, 2, sectionCount(rows))
	assert.Equal(t, 0, sectionCount(nil))
}
