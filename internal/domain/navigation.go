package domain

import (
	"sort"
	"strconv"
)

// AllEpisodes is the episode filter value that keeps every episode
const AllEpisodes = "all"

// NextSeason advances to the following season, wrapping to 0 (Specials)
// after the last one.
func NextSeason(current, numberOfSeasons int) int {
	if current < numberOfSeasons {
		return current + 1
	}
	return 0
}

// NextEpisode advances within a season, wrapping to the first episode
func NextEpisode(current, seasonLength int) int {
	if current < seasonLength {
		return current + 1
	}
	return 1
}

// PreviousEpisode steps back within a season, wrapping to the last episode
func PreviousEpisode(current, seasonLength int) int {
	if current > 1 {
		return current - 1
	}
	return seasonLength
}

// EpisodeBounds returns the first and last episode numbers in a season
func EpisodeBounds(episodes []Episode) (start, end int) {
	if len(episodes) == 0 {
		return 0, 0
	}
	numbers := make([]int, len(episodes))
	for i, e := range episodes {
		numbers[i] = e.EpisodeNumber
	}
	sort.Ints(numbers)
	return numbers[0], numbers[len(numbers)-1]
}

// FilterEpisodes narrows a season to the selected episode number.
// Episode 0 always passes; AllEpisodes keeps everything.
func FilterEpisodes(episodes []Episode, selected string) []Episode {
	if selected == "" || selected == AllEpisodes {
		return episodes
	}
	var out []Episode
	for _, e := range episodes {
		if e.EpisodeNumber == 0 || strconv.Itoa(e.EpisodeNumber) == selected {
			out = append(out, e)
		}
	}
	return out
}
