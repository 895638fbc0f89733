// Package serpapi is the web search client used for streaming availability lookups.
package serpapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/providers"
)

const (
	ProviderName = "serpapi"
	engine       = "google"
)

type searchResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

type Client struct {
	baseURL    string
	apiKey     string
	results    int
	httpClient *http.Client
	breaker    *providers.Breaker
}

func NewClient(cfg config.SerpAPIConfig, apiKey string, httpClient *http.Client, breaker *providers.Breaker) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     apiKey,
		results:    cfg.Results,
		httpClient: httpClient,
		breaker:    breaker,
	}
}

// Snippets returns the non-empty snippets of the organic results for query.
// An empty slice means the search ran but found nothing useful.
func (c *Client) Snippets(ctx context.Context, query string) ([]string, error) {
	if c.apiKey == "" {
		return nil, providers.MissingCredential(ProviderName, config.SerpAPIKeyEnv)
	}

	params := url.Values{
		"engine":  {engine},
		"q":       {query},
		"num":     {strconv.Itoa(c.results)},
		"api_key": {c.apiKey},
	}
	reqURL := c.baseURL + "/search.json?" + params.Encode()

	return providers.Call(ctx, c.breaker, func(ctx context.Context) ([]string, error) {
		var resp searchResponse
		if err := providers.GetJSON(ctx, c.httpClient, ProviderName, reqURL, &resp); err != nil {
			return nil, err
		}
		if resp.Error != "" {
			if emptyResultSet(resp.Error) {
				return []string{}, nil
			}
			return nil, classifyError(resp.Error)
		}

		snippets := make([]string, 0, len(resp.OrganicResults))
		for _, r := range resp.OrganicResults {
			if s := strings.TrimSpace(r.Snippet); s != "" {
				snippets = append(snippets, s)
			}
		}
		return snippets, nil
	})
}

// emptyResultSet reports whether the "error" field only says the search
// matched nothing. That is not a failure: callers get no snippets.
func emptyResultSet(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "hasn't returned any results")
}

// classifyError maps the "error" field of a 200 response.
func classifyError(msg string) *providers.Error {
	if strings.Contains(strings.ToLower(msg), "api key") {
		return providers.NewError(ProviderName, providers.KindAuthFailure, errors.New(msg))
	}
	return providers.NewError(ProviderName, providers.KindUpstreamError, errors.New(msg))
}
