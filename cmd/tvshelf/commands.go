package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/spf13/cobra"
)

const commandTimeout = 30 * time.Second

// withApp runs fn against a freshly wired app and reports queued notices
func (c *cli) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app, out io.Writer) error) error {
	a, err := c.open()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	err = fn(ctx, a, cmd.OutOrStdout())
	a.drainNotices(cmd.ErrOrStderr())
	return err
}

func newRecentCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Manage recent searches",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent searches",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withApp(cmd, func(ctx context.Context, a *app, out io.Writer) error {
					shows, err := a.recent.Load(ctx)
					if err != nil {
						return err
					}
					if len(shows) == 0 {
						fmt.Fprintln(out, "No recent searches")
						return nil
					}
					for _, s := range shows {
						line := fmt.Sprintf("%-8d %s", s.ID, s.DisplayTitle())
						if s.Placeholder {
							line += " (unavailable)"
						}
						fmt.Fprintln(out, line)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <show-id> [name]",
			Short: "Add a show to the recent searches",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "show id")
				if err != nil {
					return err
				}
				return c.withApp(cmd, func(ctx context.Context, a *app, out io.Writer) error {
					name := strings.Join(args[1:], " ")
					if name == "" {
						show, err := a.client.GetShow(ctx, id)
						if err != nil {
							return err
						}
						name = show.DisplayTitle()
					}
					if err := a.recent.Add(ctx, domain.RecentSearch{Name: name, ID: id}); err != nil {
						return err
					}
					fmt.Fprintf(out, "Added %s\n", name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <show-id>",
			Short: "Remove a show from the recent searches",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "show id")
				if err != nil {
					return err
				}
				return c.withApp(cmd, func(ctx context.Context, a *app, out io.Writer) error {
					if err := a.recent.Remove(ctx, domain.RecentSearch{ID: id}); err != nil {
						return err
					}
					fmt.Fprintf(out, "Removed %d\n", id)
					return nil
				})
			},
		},
	)
	return cmd
}

func newSeasonCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Manage the pinned season",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the pinned season",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withApp(cmd, func(ctx context.Context, a *app, out io.Writer) error {
					current, err := a.season.Load(ctx)
					if err != nil {
						return err
					}
					printCurrentSeason(out, current)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <show-id> <season>",
			Short: "Pin a season",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "show id")
				if err != nil {
					return err
				}
				n, err := strconv.Atoi(args[1])
				if err != nil || n < 0 {
					return fmt.Errorf("invalid season number: %q", args[1])
				}
				return c.withApp(cmd, func(ctx context.Context, a *app, out io.Writer) error {
					if err := a.season.Set(ctx, &domain.SeasonPointer{ID: id, SeasonNumber: n}); err != nil {
						return err
					}
					fmt.Fprintf(out, "Pinned show %d season %d\n", id, n)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Unpin the current season",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withApp(cmd, func(ctx context.Context, a *app, out io.Writer) error {
					if err := a.season.Clear(ctx); err != nil {
						return err
					}
					fmt.Fprintln(out, "Cleared current season")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "preferred",
			Short: "Show the season configured in preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withApp(cmd, func(ctx context.Context, a *app, out io.Writer) error {
					current, err := a.season.Preferred(ctx)
					if err != nil {
						return err
					}
					printCurrentSeason(out, current)
					return nil
				})
			},
		},
	)
	return cmd
}

func newSearchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search TMDB for shows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				results, err := a.search.Search(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Fprintln(out, "No results")
					return nil
				}
				for _, r := range results {
					printShow(out, r.Show)
				}
				return nil
			})
		},
	}
}

func newTrendingCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "List today's trending shows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				shows, err := a.search.Trending(ctx)
				if err != nil {
					return err
				}
				for _, s := range shows {
					printShow(out, s)
				}
				return nil
			})
		},
	}
}

func newResetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				if err := a.kv.Reset(ctx); err != nil {
					return fmt.Errorf("failed to reset storage: %w", err)
				}
				fmt.Fprintln(out, "Stored data deleted")
				return nil
			})
		},
	}
}

func printShow(out io.Writer, s *domain.Show) {
	title := s.DisplayTitle()
	if !s.FirstAirDate.IsZero() {
		title = fmt.Sprintf("%s (%d)", title, s.FirstAirDate.Year())
	}
	fmt.Fprintf(out, "%-8d %s  %s\n", s.ID, title, s.RatingText())
}

func printCurrentSeason(out io.Writer, current domain.CurrentSeason) {
	if !current.IsSet() {
		fmt.Fprintln(out, "No season pinned")
		return
	}
	p := current.Pointer
	fmt.Fprintf(out, "show %d season %d (seasons %d-%d)\n", p.ID, p.SeasonNumber, current.Bounds.Start, current.Bounds.End)
}

func parseID(s, what string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", what, s)
	}
	return id, nil
}
