package tui

import (
	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/mmcdole/tvshelf/internal/resource"
	"github.com/mmcdole/tvshelf/internal/search"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// RecentLoadedMsg carries a revalidated recent-searches snapshot
type RecentLoadedMsg struct {
	Snapshot resource.Snapshot[[]domain.RecentShow]
}

// CurrentSeasonLoadedMsg carries a revalidated current-season snapshot
type CurrentSeasonLoadedMsg struct {
	Snapshot resource.Snapshot[domain.CurrentSeason]
}

// RecentInvalidatedMsg signals that the recent searches changed
type RecentInvalidatedMsg struct{}

// CurrentSeasonInvalidatedMsg signals that the pinned season changed
type CurrentSeasonInvalidatedMsg struct{}

// NoticeMsg delivers a notice raised by a service
type NoticeMsg struct {
	Notice domain.Notice
}

// searchTickMsg fires after the input settles; stale ticks are ignored
type searchTickMsg struct {
	Seq   int
	Query string
}

// SearchResultsMsg signals that search results are ready
type SearchResultsMsg struct {
	Query   string
	Results []search.Result
}

// TrendingLoadedMsg signals that trending shows have been loaded
type TrendingLoadedMsg struct {
	Shows []*domain.Show
}

// ShowLoadedMsg signals that a show and its season list have been loaded
type ShowLoadedMsg struct {
	Show *domain.Show
}

// SeasonLoadedMsg signals that a season and its episodes have been loaded.
// LastSeason is the highest season number of the show, used to wrap.
type SeasonLoadedMsg struct {
	Season     *domain.Season
	LastSeason int
}

// EpisodeLoadedMsg signals that full episode details have been loaded
type EpisodeLoadedMsg struct {
	Episode *domain.Episode
}

// OpenSeasonMsg asks the model to open a season for the given pointer
type OpenSeasonMsg struct {
	Current domain.CurrentSeason
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
