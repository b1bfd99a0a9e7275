package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"Reelrank/config"
	"Reelrank/logger"
	"Reelrank/metrics"
	"Reelrank/models"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// SearchResult is one entry of the TMDB /search/movie results array
type SearchResult struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	VoteAverage   float64 `json:"vote_average"`
	Adult         bool    `json:"adult"`
}

type TMDBMovieSearchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// MovieDetails is the subset of TMDB /movie/{id} the list needs
type MovieDetails struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	Overview    string  `json:"overview"`
	Runtime     int     `json:"runtime"`
	VoteAverage float64 `json:"vote_average"`
	IMDBID      string  `json:"imdb_id"`
}

// TMDBClient talks to The Movie Database v3 API with a bearer token
type TMDBClient struct {
	baseURL      string
	token        string
	language     string
	includeAdult bool
	httpClient   *http.Client
	limiter      *rate.Limiter
}

func NewTMDBClient(cfg config.TMDBConfig) *TMDBClient {
	c := &TMDBClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		token:        cfg.APIToken,
		language:     cfg.Language,
		includeAdult: cfg.IncludeAdult,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(int(cfg.RateLimit), 1))
	}
	return c
}

// SearchByTitle returns the first page of TMDB matches for title, unfiltered
// and in the order TMDB returned them.
func (c *TMDBClient) SearchByTitle(ctx context.Context, title string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", title)
	params.Set("include_adult", strconv.FormatBool(c.includeAdult))
	params.Set("language", c.language)
	params.Set("page", "1")

	var resp TMDBMovieSearchResponse
	if err := c.get(ctx, "search", "/search/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("search for %q: %w", title, err)
	}
	if resp.Results == nil {
		resp.Results = []SearchResult{}
	}
	return resp.Results, nil
}

// FetchDetails loads a single movie by its TMDB id
func (c *TMDBClient) FetchDetails(ctx context.Context, externalID int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("language", c.language)

	var details MovieDetails
	if err := c.get(ctx, "details", "/movie/"+strconv.Itoa(externalID), params, &details); err != nil {
		return nil, fmt.Errorf("details for tmdb id %d: %w", externalID, err)
	}
	return &details, nil
}

func (c *TMDBClient) get(ctx context.Context, endpoint, path string, params url.Values, v any) (err error) {
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.TMDBRequests.WithLabelValues(endpoint, outcome).Inc()
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", ErrExternalService, err)
		}
	}

	apiURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	logger.Debug().Str("endpoint", endpoint).Str("path", path).Msg("TMDB request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrExternalService, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrExternalService, err)
	}
	return nil
}

// ReleaseYear returns the year part of a TMDB release date such as
// "2010-07-15", or 0 when the date is missing or malformed.
func ReleaseYear(releaseDate string) int {
	yearPart, _, _ := strings.Cut(releaseDate, "-")
	year, err := strconv.Atoi(strings.TrimSpace(yearPart))
	if err != nil {
		return 0
	}
	return year
}

// NewMovieFromDetails builds an unrated movie ready to be stored
func NewMovieFromDetails(d *MovieDetails, imageBaseURL string) models.Movie {
	imgURL := ""
	if d.PosterPath != "" {
		imgURL = imageBaseURL + d.PosterPath
	}
	return models.Movie{
		Title:       truncate(d.Title, models.MaxTitleLength),
		Year:        ReleaseYear(d.ReleaseDate),
		Description: truncate(d.Overview, models.MaxDescriptionLength),
		Rating:      0.0,
		Ranking:     1,
		ImgURL:      imgURL,
	}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
