package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tvshelf/internal/config"
	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/mmcdole/tvshelf/internal/log"
	"github.com/mmcdole/tvshelf/internal/tmdb"
	"github.com/mmcdole/tvshelf/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli holds state shared by all commands
type cli struct {
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "tvshelf",
		Short:        "Browse TV shows, seasons and episodes from TMDB",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "config file (default ~/.config/tvshelf/config.yaml)")

	root.AddCommand(
		newRecentCmd(c),
		newSeasonCmd(c),
		newSearchCmd(c),
		newTrendingCmd(c),
		newResetCmd(c),
	)
	return root
}

// init loads configuration and sets up logging
func (c *cli) init() error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.cfg = cfg

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	c.logger = logger

	logger.Info("starting tvshelf", "version", Version)
	return nil
}

// open wires the stores and the metadata client, failing when no API key is set
func (c *cli) open() (*app, error) {
	if !c.cfg.IsConfigured() {
		return nil, fmt.Errorf("no TMDB API key configured; run tvshelf once to set it up or set TVSHELF_TMDB_API_KEY")
	}
	return newApp(c.cfg, c.logger)
}

func (c *cli) runTUI(cmd *cobra.Command) error {
	if !c.cfg.IsConfigured() {
		return runSetupFlow(cmd.InOrStdin(), cmd.OutOrStdout(), c.cfg, c.logger)
	}

	a, err := newApp(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(tui.Deps{
		Recent:            a.recent,
		Season:            a.season,
		Search:            a.search,
		Client:            a.client,
		Notices:           a.notices,
		TrendingThreshold: c.cfg.UI.TrendingThreshold,
		Logger:            c.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	c.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		c.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	c.logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for a TMDB API key, verifies it and saves it
func runSetupFlow(in io.Reader, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to tvshelf!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "tvshelf needs a TMDB API key (v3 key or v4 read access token).")
	fmt.Fprintln(out, "Create one at https://www.themoviedb.org/settings/api")
	fmt.Fprintln(out)

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "API key: ")
		apiKey, err := readSecret(in, reader)
		fmt.Fprintln(out)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if apiKey == "" {
			fmt.Fprintln(out, "API key cannot be empty. Please try again.")
			continue
		}

		fmt.Fprint(out, "Verifying key...")
		err = verifyKey(apiKey, cfg, logger)
		fmt.Fprint(out, "\r                \r")
		if errors.Is(err, domain.ErrAuthFailed) {
			fmt.Fprintln(out, "✗ TMDB rejected the key. Please try again.")
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to verify key: %w", err)
		}

		cfg.TMDB.APIKey = apiKey
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out, "✓ Configuration saved to", cfg.Path())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run tvshelf again to start the application.")
	return nil
}

// readSecret reads a line without echo when in is a terminal
func readSecret(in io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		return strings.TrimSpace(string(b)), err
	}
	line, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func verifyKey(apiKey string, cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := tmdb.NewClient(apiKey, logger,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
	)
	_, err := client.TrendingShows(ctx)
	return err
}
