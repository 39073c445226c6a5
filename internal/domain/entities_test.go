package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBoundsOfSortsSeasons(t *testing.T) {
	seasons := []Season{{SeasonNumber: 3}, {SeasonNumber: 0}, {SeasonNumber: 5}, {SeasonNumber: 1}}
	assert.Equal(t, SeasonBounds{Start: 0, End: 5}, BoundsOf(seasons))
	assert.Equal(t, SeasonBounds{}, BoundsOf(nil))
	assert.Equal(t, SeasonBounds{Start: 2, End: 2}, BoundsOf([]Season{{SeasonNumber: 2}}))
}

func TestSeasonNavigation(t *testing.T) {
	assert.Equal(t, 2, NextSeason(1, 4))
	assert.Equal(t, 0, NextSeason(4, 4))
	assert.Equal(t, 1, NextSeason(0, 4))

	assert.Equal(t, 6, NextEpisode(5, 10))
	assert.Equal(t, 1, NextEpisode(10, 10))
	assert.Equal(t, 4, PreviousEpisode(5, 10))
	assert.Equal(t, 10, PreviousEpisode(1, 10))
}

func TestEpisodeBoundsAndFilter(t *testing.T) {
	episodes := []Episode{{EpisodeNumber: 2}, {EpisodeNumber: 0}, {EpisodeNumber: 1}, {EpisodeNumber: 3}}

	start, end := EpisodeBounds(episodes)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	assert.Len(t, FilterEpisodes(episodes, AllEpisodes), 4)
	filtered := FilterEpisodes(episodes, "2")
	assert.Equal(t, []Episode{{EpisodeNumber: 2}, {EpisodeNumber: 0}}, filtered)
	assert.Equal(t, []Episode{{EpisodeNumber: 0}}, FilterEpisodes(episodes, "42"))
}

func TestShowDisplay(t *testing.T) {
	assert.Equal(t, "Dark", Show{Name: "Dark", OriginalName: "Dark DE"}.DisplayTitle())
	assert.Equal(t, "Dark DE", Show{OriginalName: "Dark DE"}.DisplayTitle())
	assert.Equal(t, "Unknown Show", Show{}.DisplayTitle())

	assert.Equal(t, "Not Rated", Show{}.RatingText())
	assert.Equal(t, "8.4 (12,034 votes)", Show{VoteAverage: 8.4, VoteCount: 12034}.RatingText())
}

func TestSeasonAndEpisodeDisplay(t *testing.T) {
	assert.Equal(t, "Specials", Season{SeasonNumber: 0, Name: "Extras"}.DisplayTitle())
	assert.Equal(t, "Season 2", Season{SeasonNumber: 2, Name: "Season 2"}.DisplayTitle())
	assert.Equal(t, "Season 2: The Return", Season{SeasonNumber: 2, Name: "The Return"}.DisplayTitle())
	assert.Equal(t, "1 Episode", Season{EpisodeCount: 1}.Description())

	ep := Episode{SeasonNumber: 1, EpisodeNumber: 5}
	assert.Equal(t, "S01E05", ep.EpisodeCode())
	assert.Equal(t, "Episode 5 - Unknown Episode", ep.DisplayTitle())
	assert.Equal(t, "No Ratings", ep.RatingText())
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "Not Rated", Rating(0))
	assert.Equal(t, "7.50 ⭐⭐⭐⭐", Rating(7.5))
	assert.Equal(t, "2h", FormatMovieDuration(120))
	assert.Equal(t, "1h05", FormatMovieDuration(65))
	assert.Equal(t, "05m", FormatEpisodeDuration(5))
	assert.Equal(t, "1h 05m", FormatEpisodeDuration(65))
	assert.Equal(t, "Unknown", FormatAirDate(time.Time{}))
	assert.Equal(t, "Mar 4, 2021", FormatAirDate(time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)))
}

func TestPreferences(t *testing.T) {
	assert.False(t, Preferences{}.IsSet())
	assert.False(t, Preferences{CurrShow: 42, CurrShowSeason: -1}.IsSet())
	assert.True(t, Preferences{CurrShow: 42, CurrShowSeason: 0}.IsSet())
	assert.Equal(t, SeasonPointer{ID: 42, SeasonNumber: 3}, Preferences{CurrShow: 42, CurrShowSeason: 3}.Pointer())
}
