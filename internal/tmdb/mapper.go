package tmdb

import (
	"time"

	"github.com/mmcdole/tvshelf/internal/domain"
)

const dateLayout = "2006-01-02"

// MapShows converts list results to domain shows, skipping entries without an id
func MapShows(results []ShowResult) []*domain.Show {
	shows := make([]*domain.Show, 0, len(results))
	for _, r := range results {
		if r.ID <= 0 {
			continue
		}
		show := mapShowResult(r)
		shows = append(shows, &show)
	}
	return shows
}

// MapShow converts a full show response, including its season list
func MapShow(d ShowDetails) *domain.Show {
	show := mapShowResult(d.ShowResult)
	show.LastAirDate = parseDate(d.LastAirDate)
	show.NumberOfSeasons = d.NumberOfSeasons

	show.Seasons = make([]domain.Season, 0, len(d.Seasons))
	for _, s := range d.Seasons {
		show.Seasons = append(show.Seasons, domain.Season{
			ShowID:       d.ID,
			SeasonNumber: s.SeasonNumber,
			Name:         s.Name,
			Overview:     s.Overview,
			AirDate:      parseDate(s.AirDate),
			EpisodeCount: s.EpisodeCount,
			PosterPath:   s.PosterPath,
		})
	}
	return &show
}

// MapSeason converts a season response with its episodes
func MapSeason(showID int, d SeasonDetails) *domain.Season {
	season := &domain.Season{
		ShowID:       showID,
		SeasonNumber: d.SeasonNumber,
		Name:         d.Name,
		Overview:     d.Overview,
		AirDate:      parseDate(d.AirDate),
		EpisodeCount: len(d.Episodes),
		PosterPath:   d.PosterPath,
		Episodes:     make([]domain.Episode, 0, len(d.Episodes)),
	}
	for _, e := range d.Episodes {
		season.Episodes = append(season.Episodes, MapEpisode(showID, e))
	}
	return season
}

// MapEpisode converts a single episode. The show id is taken from the
// request since TMDB omits it on some endpoints.
func MapEpisode(showID int, e EpisodeDetails) domain.Episode {
	return domain.Episode{
		ID:            e.ID,
		ShowID:        showID,
		SeasonNumber:  e.SeasonNumber,
		EpisodeNumber: e.EpisodeNumber,
		Name:          e.Name,
		Overview:      e.Overview,
		AirDate:       parseDate(e.AirDate),
		Runtime:       e.Runtime,
		VoteAverage:   e.VoteAverage,
		VoteCount:     e.VoteCount,
		StillPath:     e.StillPath,
	}
}

func mapShowResult(r ShowResult) domain.Show {
	return domain.Show{
		ID:           r.ID,
		Name:         r.Name,
		OriginalName: r.OriginalName,
		Overview:     r.Overview,
		FirstAirDate: parseDate(r.FirstAirDate),
		VoteAverage:  r.VoteAverage,
		VoteCount:    r.VoteCount,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
	}
}

// parseDate returns the zero time for empty or malformed dates
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
