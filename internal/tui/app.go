package tui

import (
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/mmcdole/tvshelf/internal/recent"
	"github.com/mmcdole/tvshelf/internal/resource"
	"github.com/mmcdole/tvshelf/internal/search"
	"github.com/mmcdole/tvshelf/internal/season"
	"github.com/mmcdole/tvshelf/internal/tmdb"
	"github.com/mmcdole/tvshelf/internal/tui/styles"
)

// Screen identifies a level of the navigation stack
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenSeasons
	ScreenEpisodes
	ScreenEpisode
)

// Deps are the services the TUI drives
type Deps struct {
	Recent  *recent.Store
	Season  *season.Store
	Search  *search.Service
	Client  domain.MetadataClient
	Notices <-chan domain.Notice

	// TrendingThreshold shows trending shows while the recent list has at
	// most this many entries
	TrendingThreshold int
	Logger            *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	deps   Deps
	events *Events
	keys   KeyMap

	screens []Screen
	Width   int
	Height  int
	Ready   bool

	// Search screen
	input     textinput.Model
	searchSeq int
	query     string // Query the current results belong to
	results   []search.Result
	trending  []*domain.Show
	recent    resource.Snapshot[[]domain.RecentShow]
	rows      []row
	cursor    int

	pinned domain.CurrentSeason

	// Seasons screen
	show         *domain.Show
	seasonCursor int

	// Episodes screen
	season        *domain.Season
	lastSeason    int
	filter        textinput.Model
	filtering     bool
	visible       []episodeMatch
	episodeCursor int

	// Episode screen
	episode *domain.Episode

	// UI state
	spinner     spinner.Model
	Loading     bool
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates a new application model and subscribes it to store changes
func NewModel(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	input := textinput.New()
	input.Placeholder = "Search TV shows"
	input.Prompt = "› "
	input.PromptStyle = styles.FilterPromptStyle
	input.Focus()

	filter := textinput.New()
	filter.Placeholder = "name or episode number"
	filter.Prompt = "/"
	filter.PromptStyle = styles.FilterPromptStyle

	events := NewEvents(8)
	deps.Recent.Subscribe(invalidation[[]domain.RecentShow](events, RecentInvalidatedMsg{}))
	deps.Season.Subscribe(invalidation[domain.CurrentSeason](events, CurrentSeasonInvalidatedMsg{}))

	return Model{
		deps:    deps,
		events:  events,
		keys:    DefaultKeyMap(),
		screens: []Screen{ScreenSearch},
		input:   input,
		filter:  filter,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		LoadRecentCmd(m.deps.Recent),
		LoadCurrentSeasonCmd(m.deps.Season),
		LoadTrendingCmd(m.deps.Search),
		WaitForEventCmd(m.events),
		WaitForNoticeCmd(m.deps.Notices),
	)
}

// Screen returns the active screen
func (m Model) Screen() Screen {
	return m.screens[len(m.screens)-1]
}

func (m *Model) push(s Screen) {
	if m.Screen() != s {
		m.screens = append(m.screens, s)
	}
}

func (m *Model) pop() {
	if len(m.screens) > 1 {
		m.screens = m.screens[:len(m.screens)-1]
	}
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RecentInvalidatedMsg:
		return m, tea.Batch(LoadRecentCmd(m.deps.Recent), WaitForEventCmd(m.events))

	case CurrentSeasonInvalidatedMsg:
		return m, tea.Batch(LoadCurrentSeasonCmd(m.deps.Season), WaitForEventCmd(m.events))

	case RecentLoadedMsg:
		m.recent = msg.Snapshot
		m.rebuildRows()
		return m, nil

	case CurrentSeasonLoadedMsg:
		m.pinned = msg.Snapshot.Data
		return m, nil

	case NoticeMsg:
		m.StatusMsg = msg.Notice.Title
		if msg.Notice.Detail != "" {
			m.StatusMsg += ": " + msg.Notice.Detail
		}
		m.StatusIsErr = msg.Notice.Style == domain.NoticeFailure
		return m, tea.Batch(WaitForNoticeCmd(m.deps.Notices), ClearStatusCmd(5*time.Second))

	case searchTickMsg:
		if msg.Seq != m.searchSeq {
			return m, nil
		}
		if msg.Query == "" {
			m.query, m.results = "", nil
			m.rebuildRows()
			return m, nil
		}
		m.Loading = true
		return m, SearchCmd(m.deps.Search, msg.Query)

	case SearchResultsMsg:
		m.Loading = false
		if msg.Query != m.input.Value() {
			return m, nil
		}
		m.query, m.results = msg.Query, msg.Results
		m.rebuildRows()
		return m, nil

	case TrendingLoadedMsg:
		m.trending = msg.Shows
		m.rebuildRows()
		return m, nil

	case ShowLoadedMsg:
		m.Loading = false
		m.show = msg.Show
		sort.SliceStable(m.show.Seasons, func(i, j int) bool {
			return m.show.Seasons[i].SeasonNumber < m.show.Seasons[j].SeasonNumber
		})
		m.seasonCursor = 0
		m.screens = []Screen{ScreenSearch, ScreenSeasons}
		return m, nil

	case OpenSeasonMsg:
		p := msg.Current.Pointer
		if p == nil {
			return m, nil
		}
		last := msg.Current.Bounds.End
		if last < p.SeasonNumber {
			last = p.SeasonNumber
		}
		m.Loading = true
		return m, LoadSeasonCmd(m.deps.Client, p.ID, p.SeasonNumber, last)

	case SeasonLoadedMsg:
		m.Loading = false
		m.season = msg.Season
		m.lastSeason = msg.LastSeason
		m.filter.SetValue("")
		m.filtering = false
		m.filter.Blur()
		m.visible = visibleEpisodes(m.season.Episodes, "")
		m.episodeCursor = 0
		if m.Screen() == ScreenEpisode {
			m.pop()
		}
		m.push(ScreenEpisodes)
		return m, nil

	case EpisodeLoadedMsg:
		m.Loading = false
		if m.episode != nil && m.episode.EpisodeNumber == msg.Episode.EpisodeNumber &&
			m.episode.SeasonNumber == msg.Episode.SeasonNumber {
			m.episode = msg.Episode
		}
		return m, nil

	case ErrMsg:
		m.Loading = false
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		m.deps.Logger.Error("tui command failed", "context", msg.Context, "error", msg.Err)
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Refresh) {
		return m, tea.Batch(LoadRecentCmd(m.deps.Recent), LoadCurrentSeasonCmd(m.deps.Season), LoadTrendingCmd(m.deps.Search))
	}

	switch m.Screen() {
	case ScreenSearch:
		return m.handleSearchKey(msg)
	case ScreenSeasons:
		return m.handleSeasonsKey(msg)
	case ScreenEpisodes:
		return m.handleEpisodesKey(msg)
	case ScreenEpisode:
		return m.handleEpisodeKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		r, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.Loading = true
		return m, tea.Batch(
			AddRecentCmd(m.deps.Recent, r.Show),
			LoadShowCmd(m.deps.Client, r.Show.ID),
		)

	case key.Matches(msg, m.keys.RemoveRecent):
		r, ok := m.selectedRow()
		if !ok || !r.Recent {
			return m, nil
		}
		return m, RemoveRecentCmd(m.deps.Recent, r.Show)

	case key.Matches(msg, m.keys.CopyID):
		r, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		return m, CopyCmd(strconv.Itoa(r.Show.ID), "TMDB id")

	case key.Matches(msg, m.keys.PreferredSeason):
		return m, PreferredSeasonCmd(m.deps.Season)

	case key.Matches(msg, m.keys.PinnedSeason):
		if !m.pinned.IsSet() {
			return m, func() tea.Msg { return StatusMsg{Message: "No season pinned"} }
		}
		current := m.pinned
		return m, func() tea.Msg { return OpenSeasonMsg{Current: current} }

	case key.Matches(msg, m.keys.Escape):
		if m.input.Value() == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.searchSeq++
		m.query, m.results = "", nil
		m.rebuildRows()
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == prev {
		return m, cmd
	}

	m.searchSeq++
	m.rebuildRows()
	return m, tea.Batch(cmd, SearchDebounceCmd(m.searchSeq, m.input.Value()))
}

func (m Model) handleSeasonsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.show == nil {
		return m, nil
	}
	seasons := m.show.Seasons

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.pop()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.seasonCursor > 0 {
			m.seasonCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.seasonCursor < len(seasons)-1 {
			m.seasonCursor++
		}

	case key.Matches(msg, m.keys.Enter):
		if len(seasons) == 0 {
			return m, nil
		}
		m.Loading = true
		sel := seasons[m.seasonCursor]
		return m, LoadSeasonCmd(m.deps.Client, m.show.ID, sel.SeasonNumber, m.show.Bounds().End)

	case key.Matches(msg, m.keys.Pin):
		if len(seasons) == 0 {
			return m, nil
		}
		return m, PinSeasonCmd(m.deps.Season, m.show.ID, seasons[m.seasonCursor].SeasonNumber)

	case key.Matches(msg, m.keys.Unpin):
		return m, ClearSeasonCmd(m.deps.Season)

	case key.Matches(msg, m.keys.CopyURL):
		url, what := m.copyURL()
		return m, CopyCmd(url, what)
	}
	return m, nil
}

func (m Model) handleEpisodesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.season == nil {
		return m, nil
	}

	if m.filtering {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.visible = visibleEpisodes(m.season.Episodes, "")
			m.episodeCursor = 0
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			m.filtering = false
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.visible = visibleEpisodes(m.season.Episodes, m.filter.Value())
		m.episodeCursor = 0
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.visible = visibleEpisodes(m.season.Episodes, "")
			m.episodeCursor = 0
			return m, nil
		}
		m.pop()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.Up):
		if m.episodeCursor > 0 {
			m.episodeCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.episodeCursor < len(m.visible)-1 {
			m.episodeCursor++
		}

	case key.Matches(msg, m.keys.NextSeason):
		next := domain.NextSeason(m.season.SeasonNumber, m.lastSeason)
		m.Loading = true
		return m, LoadSeasonCmd(m.deps.Client, m.season.ShowID, next, m.lastSeason)

	case key.Matches(msg, m.keys.Pin):
		return m, PinSeasonCmd(m.deps.Season, m.season.ShowID, m.season.SeasonNumber)

	case key.Matches(msg, m.keys.Enter):
		if len(m.visible) == 0 {
			return m, nil
		}
		ep := m.visible[m.episodeCursor].Episode
		return m.openEpisode(ep)
	}
	return m, nil
}

func (m Model) handleEpisodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.episode == nil || m.season == nil {
		return m, nil
	}
	_, length := domain.EpisodeBounds(m.season.Episodes)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.pop()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if ep, ok := findEpisode(m.season.Episodes, domain.NextEpisode(m.episode.EpisodeNumber, length)); ok {
			return m.openEpisode(ep)
		}

	case key.Matches(msg, m.keys.Prev):
		if ep, ok := findEpisode(m.season.Episodes, domain.PreviousEpisode(m.episode.EpisodeNumber, length)); ok {
			return m.openEpisode(ep)
		}

	case key.Matches(msg, m.keys.CopyURL):
		url, what := m.copyURL()
		return m, CopyCmd(url, what)
	}
	return m, nil
}

// copyURL returns the web page of whatever the current screen highlights
func (m Model) copyURL() (url, what string) {
	switch m.Screen() {
	case ScreenSeasons:
		if m.show == nil {
			return "", ""
		}
		if m.seasonCursor < len(m.show.Seasons) {
			return tmdb.SeasonURL(m.show.ID, m.show.Seasons[m.seasonCursor].SeasonNumber), "season URL"
		}
		return tmdb.ShowURL(m.show.ID), "show URL"
	case ScreenEpisode:
		if m.season == nil || m.episode == nil {
			return "", ""
		}
		return tmdb.EpisodeURL(m.season.ShowID, m.episode.SeasonNumber, m.episode.EpisodeNumber), "episode URL"
	}
	return "", ""
}

// openEpisode shows the season's copy right away and fetches full details
func (m Model) openEpisode(ep domain.Episode) (tea.Model, tea.Cmd) {
	m.episode = &ep
	m.push(ScreenEpisode)
	m.Loading = true
	return m, LoadEpisodeCmd(m.deps.Client, m.season.ShowID, ep.SeasonNumber, ep.EpisodeNumber)
}

func (m Model) selectedRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) rebuildRows() {
	m.rows = buildRows(m.input.Value(), m.recent.Data, m.trending, m.query, m.results, m.deps.TrendingThreshold)
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func findEpisode(episodes []domain.Episode, number int) (domain.Episode, bool) {
	for _, ep := range episodes {
		if ep.EpisodeNumber == number {
			return ep, true
		}
	}
	return domain.Episode{}, false
}
