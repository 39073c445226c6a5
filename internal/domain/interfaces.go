package domain

import "context"

// KeyValueStore is the local persistence collaborator.
// Get reports ok=false for a missing key; that is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ShowFetcher resolves a show by id, including its season list
type ShowFetcher interface {
	GetShow(ctx context.Context, id int) (*Show, error)
}

// MetadataClient provides the remote metadata operations (implemented by the TMDB client)
type MetadataClient interface {
	ShowFetcher

	// SearchShows returns shows matching a free-text query
	SearchShows(ctx context.Context, query string) ([]*Show, error)

	// TrendingShows returns today's trending shows
	TrendingShows(ctx context.Context) ([]*Show, error)

	// GetSeason returns a season with its episodes
	GetSeason(ctx context.Context, showID, seasonNumber int) (*Season, error)

	// GetEpisode returns full details for a single episode
	GetEpisode(ctx context.Context, showID, seasonNumber, episodeNumber int) (*Episode, error)
}

// Notifier receives transient user-facing messages. Fire-and-forget.
type Notifier interface {
	Notify(style NoticeStyle, title, detail string)
}

// NoOpNotifier discards notices (for testing/batch operations).
type NoOpNotifier struct{}

func (NoOpNotifier) Notify(NoticeStyle, string, string) {}
