package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mmcdole/tvshelf/internal/config"
	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/mmcdole/tvshelf/internal/notify"
	"github.com/mmcdole/tvshelf/internal/recent"
	"github.com/mmcdole/tvshelf/internal/search"
	"github.com/mmcdole/tvshelf/internal/season"
	"github.com/mmcdole/tvshelf/internal/store"
	"github.com/mmcdole/tvshelf/internal/tmdb"
)

// app is the wired object graph shared by the TUI and the subcommands
type app struct {
	kv      store.Backend
	client  *tmdb.Client
	notices chan domain.Notice
	recent  *recent.Store
	season  *season.Store
	search  *search.Service
	logger  *slog.Logger
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	dataDir, err := config.ExpandPath(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	kv, err := store.Open(cfg.Storage.Driver, dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	logger.Info("storage opened", "driver", cfg.Storage.Driver, "path", dataDir)

	client := tmdb.NewClient(cfg.TMDB.APIKey, logger,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithRetry(cfg.TMDB.Retries, 500*time.Millisecond),
	)

	notices := make(chan domain.Notice, 16)
	notifier := notify.Tee(notify.NewLog(logger), notify.NewChannel(notices))

	return &app{
		kv:      kv,
		client:  client,
		notices: notices,
		recent: recent.NewStore(kv, client, notifier,
			recent.WithFailurePolicy(recent.ParseFailurePolicy(cfg.Preferences.RecentFailurePolicy)),
			recent.WithLogger(logger),
		),
		season: season.NewStore(kv, client, notifier,
			season.WithPreferences(cfg.ToPreferences()),
			season.WithLogger(logger),
		),
		search: search.NewService(client, logger),
		logger: logger,
	}, nil
}

// drainNotices writes pending notices to w
func (a *app) drainNotices(w io.Writer) {
	for {
		select {
		case n := <-a.notices:
			if n.Detail != "" {
				fmt.Fprintf(w, "%s: %s: %s\n", n.Style, n.Title, n.Detail)
			} else {
				fmt.Fprintf(w, "%s: %s\n", n.Style, n.Title)
			}
		default:
			return
		}
	}
}

func (a *app) Close() error {
	return a.kv.Close()
}
