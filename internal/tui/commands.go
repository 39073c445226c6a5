package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/mmcdole/tvshelf/internal/recent"
	"github.com/mmcdole/tvshelf/internal/search"
	"github.com/mmcdole/tvshelf/internal/season"
)

// Command factories for async operations

const (
	fetchTimeout   = 30 * time.Second
	storeTimeout   = 5 * time.Second
	searchDebounce = 300 * time.Millisecond
)

// LoadRecentCmd revalidates the recent searches
func LoadRecentCmd(store *recent.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return RecentLoadedMsg{Snapshot: store.Revalidate(ctx)}
	}
}

// LoadCurrentSeasonCmd revalidates the pinned season
func LoadCurrentSeasonCmd(store *season.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return CurrentSeasonLoadedMsg{Snapshot: store.Revalidate(ctx)}
	}
}

// AddRecentCmd records a show in the recent searches
func AddRecentCmd(store *recent.Store, show domain.Show) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		// Failures are reported through the notifier
		_ = store.Add(ctx, domain.RecentSearch{Name: show.DisplayTitle(), ID: show.ID})
		return nil
	}
}

// RemoveRecentCmd drops a show from the recent searches
func RemoveRecentCmd(store *recent.Store, show domain.Show) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := store.Remove(ctx, domain.RecentSearch{Name: show.Name, ID: show.ID}); err != nil {
			return nil
		}
		return StatusMsg{Message: "Removed " + show.DisplayTitle() + " from recent searches"}
	}
}

// PinSeasonCmd pins a season as current
func PinSeasonCmd(store *season.Store, showID, seasonNumber int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := store.Set(ctx, &domain.SeasonPointer{ID: showID, SeasonNumber: seasonNumber}); err != nil {
			return nil
		}
		return StatusMsg{Message: fmt.Sprintf("Pinned season %d", seasonNumber)}
	}
}

// ClearSeasonCmd unpins the current season
func ClearSeasonCmd(store *season.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := store.Clear(ctx); err != nil {
			return nil
		}
		return StatusMsg{Message: "Cleared current season"}
	}
}

// PreferredSeasonCmd resolves the season configured in preferences
func PreferredSeasonCmd(store *season.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		current, err := store.Preferred(ctx)
		if err != nil {
			// Already reported through the notifier
			return nil
		}
		return OpenSeasonMsg{Current: current}
	}
}

// SearchDebounceCmd schedules a search once typing pauses
func SearchDebounceCmd(seq int, query string) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{Seq: seq, Query: query}
	})
}

// SearchCmd runs a remote show search
func SearchCmd(svc *search.Service, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		results, err := svc.Search(ctx, query)
		if err != nil {
			return ErrMsg{Err: err, Context: "searching"}
		}
		return SearchResultsMsg{Query: query, Results: results}
	}
}

// LoadTrendingCmd loads today's trending shows
func LoadTrendingCmd(svc *search.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		shows, err := svc.Trending(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading trending"}
		}
		return TrendingLoadedMsg{Shows: shows}
	}
}

// LoadShowCmd loads a show with its season list
func LoadShowCmd(client domain.MetadataClient, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		show, err := client.GetShow(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading show"}
		}
		return ShowLoadedMsg{Show: show}
	}
}

// LoadSeasonCmd loads a season with its episodes
func LoadSeasonCmd(client domain.MetadataClient, showID, seasonNumber, lastSeason int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		s, err := client.GetSeason(ctx, showID, seasonNumber)
		if err != nil {
			return ErrMsg{Err: err, Context: fmt.Sprintf("loading season %d", seasonNumber)}
		}
		return SeasonLoadedMsg{Season: s, LastSeason: lastSeason}
	}
}

// LoadEpisodeCmd loads full details for one episode
func LoadEpisodeCmd(client domain.MetadataClient, showID, seasonNumber, episodeNumber int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		ep, err := client.GetEpisode(ctx, showID, seasonNumber, episodeNumber)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading episode"}
		}
		return EpisodeLoadedMsg{Episode: ep}
	}
}

// CopyCmd writes text to the system clipboard
func CopyCmd(text, label string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: err, Context: "copying to clipboard"}
		}
		return StatusMsg{Message: "Copied " + label}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
