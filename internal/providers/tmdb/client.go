// Package tmdb is the metadata client for The Movie Database API.
package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/models"
	"github.com/haguru/kakashi/internal/providers"
)

const (
	ProviderName = "tmdb"

	maxCast    = 10
	maxSimilar = 5
)

type searchResponse struct {
	Results []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	} `json:"results"`
}

type detailsResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Cast []struct {
			Name string `json:"name"`
		} `json:"cast"`
	} `json:"credits"`
	Similar struct {
		Results []struct {
			Title string `json:"title"`
		} `json:"results"`
	} `json:"similar"`
}

// Client looks up movies by title. It is stateless and safe for concurrent use.
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	httpClient   *http.Client
	breaker      *providers.Breaker
}

func NewClient(cfg config.TMDBConfig, apiKey string, httpClient *http.Client, breaker *providers.Breaker) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:       apiKey,
		httpClient:   httpClient,
		breaker:      breaker,
	}
}

// FetchMovie searches for query and returns the details of the best match,
// including top billed cast and similar titles.
func (c *Client) FetchMovie(ctx context.Context, query string) (*models.Movie, error) {
	if c.apiKey == "" {
		return nil, providers.MissingCredential(ProviderName, config.TMDBAPIKeyEnv)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, providers.NewError(ProviderName, providers.KindUpstreamError, providers.ErrNoResults)
	}

	return providers.Call(ctx, c.breaker, func(ctx context.Context) (*models.Movie, error) {
		var search searchResponse
		if err := providers.GetJSON(ctx, c.httpClient, ProviderName, c.url("/search/movie", url.Values{"query": {query}}), &search); err != nil {
			return nil, err
		}
		if len(search.Results) == 0 {
			return nil, providers.NewError(ProviderName, providers.KindUpstreamError, fmt.Errorf("%q: %w", query, providers.ErrNoResults))
		}

		var details detailsResponse
		path := fmt.Sprintf("/movie/%d", search.Results[0].ID)
		if err := providers.GetJSON(ctx, c.httpClient, ProviderName, c.url(path, url.Values{"append_to_response": {"credits,similar"}}), &details); err != nil {
			return nil, err
		}
		return c.toMovie(details), nil
	})
}

func (c *Client) url(path string, params url.Values) string {
	params.Set("api_key", c.apiKey)
	return c.baseURL + path + "?" + params.Encode()
}

func (c *Client) toMovie(d detailsResponse) *models.Movie {
	movie := &models.Movie{
		ID:            d.ID,
		Title:         d.Title,
		Plot:          d.Overview,
		Rating:        d.VoteAverage,
		ReleaseDate:   d.ReleaseDate,
		Genres:        make([]string, 0, len(d.Genres)),
		Cast:          make([]string, 0, maxCast),
		SimilarTitles: make([]string, 0, maxSimilar),
	}
	if d.PosterPath != "" {
		movie.PosterURL = c.imageBaseURL + d.PosterPath
	}
	for _, g := range d.Genres {
		movie.Genres = append(movie.Genres, g.Name)
	}
	for i, member := range d.Credits.Cast {
		if i == maxCast {
			break
		}
		movie.Cast = append(movie.Cast, member.Name)
	}
	for i, s := range d.Similar.Results {
		if i == maxSimilar {
			break
		}
		movie.SimilarTitles = append(movie.SimilarTitles, s.Title)
	}
	return movie
}
