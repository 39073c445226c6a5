package tmdb

// ShowResult is a show as returned by list endpoints (search, trending)
type ShowResult struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
}

// ShowDetails is the full /tv/{id} response
type ShowDetails struct {
	ShowResult
	LastAirDate     string          `json:"last_air_date"`
	NumberOfSeasons int             `json:"number_of_seasons"`
	Seasons         []SeasonSummary `json:"seasons"`
}

// SeasonSummary is a season entry embedded in ShowDetails
type SeasonSummary struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	AirDate      string `json:"air_date"`
	EpisodeCount int    `json:"episode_count"`
	PosterPath   string `json:"poster_path"`
}

// SeasonDetails is the /tv/{id}/season/{n} response
type SeasonDetails struct {
	SeasonNumber int              `json:"season_number"`
	Name         string           `json:"name"`
	Overview     string           `json:"overview"`
	AirDate      string           `json:"air_date"`
	PosterPath   string           `json:"poster_path"`
	Episodes     []EpisodeDetails `json:"episodes"`
}

// EpisodeDetails is an episode, both embedded in SeasonDetails and from
// /tv/{id}/season/{s}/episode/{e}
type EpisodeDetails struct {
	ID            int     `json:"id"`
	ShowID        int     `json:"show_id"`
	SeasonNumber  int     `json:"season_number"`
	EpisodeNumber int     `json:"episode_number"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	AirDate       string  `json:"air_date"`
	Runtime       int     `json:"runtime"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	StillPath     string  `json:"still_path"`
}

// PagedShows wraps paginated list responses
type PagedShows struct {
	Page         int          `json:"page"`
	Results      []ShowResult `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

// ErrorResponse is the body TMDB sends with non-2xx statuses
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
