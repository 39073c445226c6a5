package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/mmcdole/tvshelf/internal/tui/styles"
)

// Vertical chrome: header line plus footer line
const ChromeHeight = 2

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	var content string
	switch m.Screen() {
	case ScreenSearch:
		content = m.renderSearch()
	case ScreenSeasons:
		content = m.renderSeasons()
	case ScreenEpisodes:
		content = m.renderEpisodes()
	case ScreenEpisode:
		content = m.renderEpisode()
	}

	body := lipgloss.NewStyle().
		Height(m.Height - ChromeHeight).
		MaxHeight(m.Height - ChromeHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m Model) renderHeader() string {
	parts := []string{"tvshelf"}
	if m.Screen() != ScreenSearch && m.show != nil {
		parts = append(parts, m.show.DisplayTitle())
	}
	if (m.Screen() == ScreenEpisodes || m.Screen() == ScreenEpisode) && m.season != nil {
		parts = append(parts, m.season.DisplayTitle())
	}
	if m.Screen() == ScreenEpisode && m.episode != nil {
		parts = append(parts, m.episode.EpisodeCode())
	}

	header := styles.AccentStyle.Render(strings.Join(parts, " > "))
	if m.Loading {
		header += " " + m.spinner.View()
	}
	return header
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString("\n")
		if m.recent.IsLoading {
			b.WriteString(styles.DimStyle.Render("Loading recent searches..."))
		} else {
			b.WriteString(styles.DimStyle.Render("No shows yet. Start typing to search."))
		}
		return b.String()
	}

	// Lines left for rows and section headers
	height := m.Height - ChromeHeight - 2
	start, end := window(len(m.rows), m.cursor, height-sectionCount(m.rows)*2)

	section := ""
	for i := start; i < end; i++ {
		r := m.rows[i]
		if r.Section != section {
			section = r.Section
			b.WriteString(styles.SectionStyle.Render(section))
			b.WriteString("\n")
		}
		b.WriteString(styles.RenderRow(showRowText(r, m.Width-4), i == m.cursor, m.Width))
		b.WriteString("\n")
	}
	return b.String()
}

func showRowText(r row, width int) string {
	title := r.Show.DisplayTitle()
	if !r.Show.FirstAirDate.IsZero() {
		title = fmt.Sprintf("%s (%d)", title, r.Show.FirstAirDate.Year())
	}
	title = styles.Truncate(title, width-16)
	if r.Placeholder {
		return title + "  " + styles.DimStyle.Render("unavailable")
	}
	if r.Show.VoteAverage > 0 {
		return title + "  " + styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", r.Show.VoteAverage))
	}
	return title
}

func (m Model) renderSeasons() string {
	if m.show == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.show.DisplayTitle()))
	b.WriteString("\n")
	meta := []string{m.show.RatingText()}
	if !m.show.FirstAirDate.IsZero() {
		meta = append(meta, "First aired "+domain.FormatAirDate(m.show.FirstAirDate))
	}
	b.WriteString(styles.DimStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")
	if m.show.Overview != "" {
		b.WriteString(styles.SubtitleStyle.Width(m.Width - 2).MaxHeight(4).Render(m.show.Overview))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.show.Seasons) == 0 {
		b.WriteString(styles.DimStyle.Render("No seasons"))
		return b.String()
	}

	height := m.Height - ChromeHeight - strings.Count(b.String(), "\n")
	start, end := window(len(m.show.Seasons), m.seasonCursor, height)
	for i := start; i < end; i++ {
		s := m.show.Seasons[i]
		text := fmt.Sprintf("%s  %s", s.DisplayTitle(), styles.DimStyle.Render(s.Description()))
		if m.isPinned(m.show.ID, s.SeasonNumber) {
			text += " " + styles.PinChar
		}
		b.WriteString(styles.RenderRow(text, i == m.seasonCursor, m.Width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderEpisodes() string {
	if m.season == nil {
		return ""
	}
	var b strings.Builder

	title := m.season.DisplayTitle()
	if m.isPinned(m.season.ShowID, m.season.SeasonNumber) {
		title += " " + styles.PinChar
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
	} else {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d episodes", len(m.season.Episodes))))
	}
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(styles.DimStyle.Render("No matching episodes"))
		return b.String()
	}

	height := m.Height - ChromeHeight - 3
	start, end := window(len(m.visible), m.episodeCursor, height)
	for i := start; i < end; i++ {
		match := m.visible[i]
		ep := match.Episode
		name := ep.Name
		if name == "" {
			name = "Unknown Episode"
		}
		text := fmt.Sprintf("%2d  %s", ep.EpisodeNumber, styles.HighlightMatches(name, match.MatchedIndexes))
		if ep.Runtime > 0 {
			text += "  " + styles.DimStyle.Render(domain.FormatEpisodeDuration(ep.Runtime))
		}
		b.WriteString(styles.RenderRow(text, i == m.episodeCursor, m.Width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderEpisode() string {
	if m.episode == nil {
		return ""
	}
	ep := m.episode
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(ep.DisplayTitle()))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(ep.EpisodeCode()))
	b.WriteString("\n\n")

	fields := [][2]string{
		{"Air Date", domain.FormatAirDate(ep.AirDate)},
		{"Runtime", domain.FormatEpisodeDuration(ep.Runtime)},
		{"Rating", ep.RatingText()},
	}
	for _, f := range fields {
		b.WriteString(styles.HelpKeyStyle.Render(fmt.Sprintf("%-9s", f[0])))
		b.WriteString(f[1])
		b.WriteString("\n")
	}

	if ep.Overview != "" {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Width(m.Width - 4).Render(ep.Overview))
	}

	return styles.DetailStyle.Width(m.Width - 2).Render(b.String())
}

func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}

	var bindings []key.Binding
	switch m.Screen() {
	case ScreenSearch:
		bindings = []key.Binding{m.keys.Enter, m.keys.RemoveRecent, m.keys.PinnedSeason, m.keys.PreferredSeason, m.keys.CopyID}
	case ScreenSeasons:
		bindings = []key.Binding{m.keys.Enter, m.keys.Pin, m.keys.Unpin, m.keys.CopyURL, m.keys.Back, m.keys.Quit}
	case ScreenEpisodes:
		bindings = []key.Binding{m.keys.Enter, m.keys.Filter, m.keys.NextSeason, m.keys.Back, m.keys.Quit}
	case ScreenEpisode:
		bindings = []key.Binding{m.keys.Prev, m.keys.Next, m.keys.CopyURL, m.keys.Back, m.keys.Quit}
	}

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(strings.Join(parts, "  "))
}

func (m Model) isPinned(showID, seasonNumber int) bool {
	p := m.pinned.Pointer
	return p != nil && p.ID == showID && p.SeasonNumber == seasonNumber
}

// window returns the visible [start, end) range of a list that keeps the
// cursor on screen
func window(total, cursor, height int) (int, int) {
	if height < 1 {
		height = 1
	}
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

func sectionCount(rows []row) int {
	n, section := 0, ""
	for _, r := range rows {
		if r.Section != section {
			section = r.Section
			n++
		}
	}
	return n
}
