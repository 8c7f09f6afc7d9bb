package tmdb

// SearchMoviesResponse is the TMDB /search/movie response.
type SearchMoviesResponse struct {
	Page         int           `json:"page"`
	Results      []MovieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// MovieResult represents a movie in TMDB search results.
type MovieResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	OriginalTitle string `json:"original_title"`
	ReleaseDate  string  `json:"release_date"`
	Overview     string  `json:"overview"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	GenreIDs     []int   `json:"genre_ids"`
}

// SearchPersonsResponse is the TMDB /search/person response.
type SearchPersonsResponse struct {
	Page         int            `json:"page"`
	Results      []PersonResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// PersonResult represents a person in TMDB search results.
type PersonResult struct {
	ID                 int          `json:"id"`
	Name               string       `json:"name"`
	Popularity         float64      `json:"popularity"`
	ProfilePath        *string      `json:"profile_path"`
	KnownForDepartment string       `json:"known_for_department"`
	KnownFor           []KnownForItem `json:"known_for"`
}

// KnownForItem is a credit listed under a person search result.
type KnownForItem struct {
	ID          int    `json:"id"`
	MediaType   string `json:"media_type"`
	Title       string `json:"title"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

// MultiSearchResponse is the TMDB /search/multi response.
type MultiSearchResponse struct {
	Page         int           `json:"page"`
	Results      []MultiResult `json:"results"`
	TotalResults int           `json:"total_results"`
}

// MultiResult is a mixed movie/tv/person entry from multi search.
type MultiResult struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
	Popularity   float64 `json:"popularity"`
	PosterPath   *string `json:"poster_path"`
	ProfilePath  *string `json:"profile_path"`
}

// MovieDetails is the TMDB /movie/{id} response with credits appended.
type MovieDetails struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	ReleaseDate  string  `json:"release_date"`
	Overview     string  `json:"overview"`
	Runtime      int     `json:"runtime"`
	ImdbID       string  `json:"imdb_id"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	Genres       []Genre `json:"genres"`
	Credits      *Credits `json:"credits"`
	Homepage     string  `json:"homepage"`
	Tagline      string  `json:"tagline"`
}

// Genre is a TMDB genre entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Credits holds cast and crew for a movie.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is a single cast credit.
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	Order       int     `json:"order"`
	ProfilePath *string `json:"profile_path"`
}

// CrewMember is a single crew credit.
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// PersonDetails is the TMDB /person/{id} response with movie credits
// appended.
type PersonDetails struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Biography    string        `json:"biography"`
	Birthday     string        `json:"birthday"`
	Deathday     string        `json:"deathday"`
	PlaceOfBirth string        `json:"place_of_birth"`
	Popularity   float64       `json:"popularity"`
	ProfilePath  *string       `json:"profile_path"`
	KnownForDept string        `json:"known_for_department"`
	MovieCredits *MovieCredits `json:"movie_credits"`
}

// MovieCredits holds a person's filmography.
type MovieCredits struct {
	Cast []FilmographyEntry `json:"cast"`
	Crew []FilmographyEntry `json:"crew"`
}

// FilmographyEntry is a single filmography credit.
type FilmographyEntry struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Character   string  `json:"character"`
	Job         string  `json:"job"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
}

// WatchProvidersResponse is the TMDB /movie/{id}/watch/providers response.
type WatchProvidersResponse struct {
	Results map[string]RegionProviders `json:"results"`
}

// RegionProviders lists streaming options for one region.
type RegionProviders struct {
	Link     string          `json:"link"`
	Flatrate []WatchProvider `json:"flatrate"`
	Rent     []WatchProvider `json:"rent"`
	Buy      []WatchProvider `json:"buy"`
}

// WatchProvider is a single streaming service entry.
type WatchProvider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// ErrorResponse is the TMDB API error payload.
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
