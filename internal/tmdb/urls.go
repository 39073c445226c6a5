package tmdb

import "fmt"

const webBaseURL = "https://www.themoviedb.org"

// ShowURL returns the public web page of a show
func ShowURL(id int) string {
	return fmt.Sprintf("%s/tv/%d", webBaseURL, id)
}

// SeasonURL returns the public web page of a season
func SeasonURL(id, season int) string {
	return fmt.Sprintf("%s/tv/%d/season/%d", webBaseURL, id, season)
}

// EpisodeURL returns the public web page of an episode
func EpisodeURL(id, season, episode int) string {
	return fmt.Sprintf("%s/tv/%d/season/%d/episode/%d", webBaseURL, id, season, episode)
}
