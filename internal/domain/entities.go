package domain

import (
	"fmt"
	"sort"
	"time"
)

// Show represents a TV series in the remote metadata database
type Show struct {
	ID              int       // TMDB show identifier
	Name            string    // Localized title
	OriginalName    string    // Title in the original language
	Overview        string    // Series synopsis
	FirstAirDate    time.Time // Zero if unknown
	LastAirDate     time.Time // Zero if unknown or still airing
	VoteAverage     float64   // 0-10 community rating
	VoteCount       int       // Number of votes behind VoteAverage
	NumberOfSeasons int       // Season count as reported by the API
	PosterPath      string    // Relative image path ("/abc.jpg")
	BackdropPath    string    // Relative image path

	// Seasons is only populated by a full show lookup
	Seasons []Season
}

// DisplayTitle returns the best available title for the show
func (s Show) DisplayTitle() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.OriginalName != "":
		return s.OriginalName
	default:
		return "Unknown Show"
	}
}

// RatingText returns the rating with its vote count, e.g. "8.3 (1,204 votes)"
func (s Show) RatingText() string {
	if s.VoteAverage == 0 {
		return "Not Rated"
	}
	text := fmt.Sprintf("%.1f", s.VoteAverage)
	if s.VoteCount > 0 {
		text += fmt.Sprintf(" (%s votes)", FormatVotes(s.VoteCount))
	}
	return text
}

// Bounds returns the first and last season numbers of the show
func (s Show) Bounds() SeasonBounds {
	return BoundsOf(s.Seasons)
}

// Season represents a numbered grouping of episodes within a show
type Season struct {
	ShowID       int
	SeasonNumber int // 0 = Specials
	Name         string
	Overview     string
	AirDate      time.Time
	EpisodeCount int
	PosterPath   string

	// Episodes is only populated by a season lookup
	Episodes []Episode
}

// DisplayTitle returns the display title for the season
func (s Season) DisplayTitle() string {
	if s.SeasonNumber == 0 {
		return "Specials"
	}
	if s.Name != "" && s.Name != fmt.Sprintf("Season %d", s.SeasonNumber) {
		return fmt.Sprintf("Season %d: %s", s.SeasonNumber, s.Name)
	}
	return fmt.Sprintf("Season %d", s.SeasonNumber)
}

// Description returns secondary info for list rendering
func (s Season) Description() string {
	if s.EpisodeCount == 1 {
		return "1 Episode"
	}
	return fmt.Sprintf("%d Episodes", s.EpisodeCount)
}

// Episode represents a single episode of a season
type Episode struct {
	ID            int
	ShowID        int
	SeasonNumber  int
	EpisodeNumber int
	Name          string
	Overview      string
	AirDate       time.Time
	Runtime       int // Minutes
	VoteAverage   float64
	VoteCount     int
	StillPath     string
}

// EpisodeCode returns the formatted episode code (e.g., "S01E05")
func (e Episode) EpisodeCode() string {
	return fmt.Sprintf("S%02dE%02d", e.SeasonNumber, e.EpisodeNumber)
}

// DisplayTitle returns "Episode N - Name"
func (e Episode) DisplayTitle() string {
	name := e.Name
	if name == "" {
		name = "Unknown Episode"
	}
	return fmt.Sprintf("Episode %d - %s", e.EpisodeNumber, name)
}

// RatingText returns the episode rating with its vote count
func (e Episode) RatingText() string {
	if e.VoteAverage == 0 {
		return "No Ratings"
	}
	text := fmt.Sprintf("%.1f", e.VoteAverage)
	if e.VoteCount > 0 {
		text += fmt.Sprintf(" (from %s votes)", FormatVotes(e.VoteCount))
	}
	return text
}

// RecentShow is a recent-search entry resolved against the remote database.
// Placeholder is set when the lookup failed and only the stored name is known.
type RecentShow struct {
	Show
	Placeholder bool
}

// SeasonBounds holds the first and last season numbers of a show.
// Derived on every load, never persisted.
type SeasonBounds struct {
	Start int
	End   int
}

// BoundsOf computes season bounds from a season list.
// The list is sorted by season number first; API order is not trusted.
func BoundsOf(seasons []Season) SeasonBounds {
	if len(seasons) == 0 {
		return SeasonBounds{}
	}
	numbers := make([]int, len(seasons))
	for i, s := range seasons {
		numbers[i] = s.SeasonNumber
	}
	sort.Ints(numbers)
	return SeasonBounds{Start: numbers[0], End: numbers[len(numbers)-1]}
}

// CurrentSeason is the pinned season pointer together with its derived bounds
type CurrentSeason struct {
	Pointer *SeasonPointer
	Bounds  SeasonBounds
}

// IsSet reports whether a season is pinned
func (c CurrentSeason) IsSet() bool {
	return c.Pointer != nil
}

// Preferences holds the configured default show and season
type Preferences struct {
	CurrShow       int
	CurrShowSeason int
}

// IsSet reports whether both the show and the season are configured
func (p Preferences) IsSet() bool {
	return p.CurrShow > 0 && p.CurrShowSeason >= 0
}

// Pointer converts the preferences to a season pointer
func (p Preferences) Pointer() SeasonPointer {
	return SeasonPointer{ID: p.CurrShow, SeasonNumber: p.CurrShowSeason}
}

// NoticeStyle classifies transient user notices
type NoticeStyle int

const (
	NoticeFailure NoticeStyle = iota
	NoticeSuccess
	NoticeInfo
)

// String returns a human-readable representation of the notice style
func (s NoticeStyle) String() string {
	switch s {
	case NoticeFailure:
		return "failure"
	case NoticeSuccess:
		return "success"
	case NoticeInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notice is a transient message shown to the user
type Notice struct {
	Style  NoticeStyle
	Title  string
	Detail string
}
