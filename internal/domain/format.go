package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const star = "⭐"

// Rating renders a 0-10 rating with one star per two points
func Rating(rating float64) string {
	if rating == 0 {
		return "Not Rated"
	}
	stars := int(math.Round(rating / 2))
	return fmt.Sprintf("%.2f %s", rating, strings.Repeat(star, stars))
}

// FormatMovieDuration renders minutes as "2h" or "1h05"
func FormatMovieDuration(minutes int) string {
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%02d", hours, rest)
}

// FormatEpisodeDuration renders minutes as "45m" or "1h 05m"
func FormatEpisodeDuration(minutes int) string {
	hours := minutes / 60
	rest := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%02dm", rest)
	}
	return fmt.Sprintf("%dh %02dm", hours, rest)
}

// FormatAirDate renders a date as "Jan 2, 2006", or "Unknown" for the zero time
func FormatAirDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("Jan 2, 2006")
}

// FormatVotes renders a vote count with thousands separators
func FormatVotes(n int) string {
	return humanize.Comma(int64(n))
}
