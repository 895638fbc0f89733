package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/models"
	"github.com/haguru/kakashi/internal/providers"
	"github.com/haguru/kakashi/pkg/zerolog"
)

const detailsBody = `{
	"id": 949,
	"title": "Heat",
	"overview": "Obsessive master thief Neil McCauley leads a top-notch crew.",
	"vote_average": 7.9,
	"release_date": "1995-12-15",
	"poster_path": "/heat.jpg",
	"genres": [{"name": "Action"}, {"name": "Crime"}],
	"credits": {"cast": [
		{"name": "Al Pacino"}, {"name": "Robert De Niro"}, {"name": "Val Kilmer"},
		{"name": "Jon Voight"}, {"name": "Tom Sizemore"}, {"name": "Diane Venora"},
		{"name": "Amy Brenneman"}, {"name": "Ashley Judd"}, {"name": "Mykelti Williamson"},
		{"name": "Wes Studi"}, {"name": "Ted Levine"}
	]},
	"similar": {"results": [
		{"title": "Ronin"}, {"title": "Thief"}, {"title": "Collateral"},
		{"title": "The Town"}, {"title": "Sicario"}, {"title": "Den of Thieves"}
	]}
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newClient(baseURL, key string) *Client {
	return NewClient(config.TMDBConfig{
		BaseURL:      baseURL,
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
	}, key, providers.NewHTTPClient(2*time.Second), providers.NewBreaker(ProviderName, nil, zerolog.NewLogger("test", io.Discard)))
}

func TestClient_FetchMovie(t *testing.T) {
	srv, hits := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		switch r.URL.Path {
		case "/search/movie":
			assert.Equal(t, "heat", r.URL.Query().Get("query"))
			fmt.Fprint(w, `{"results":[{"id":949,"title":"Heat"},{"id":1,"title":"Heat 2"}]}`)
		case "/movie/949":
			assert.Equal(t, "credits,similar", r.URL.Query().Get("append_to_response"))
			fmt.Fprint(w, detailsBody)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	movie, err := newClient(srv.URL, "test-key").FetchMovie(context.Background(), " heat ")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))

	assert.Equal(t, &models.Movie{
		ID:          949,
		Title:       "Heat",
		Plot:        "Obsessive master thief Neil McCauley leads a top-notch crew.",
		Rating:      7.9,
		ReleaseDate: "1995-12-15",
		PosterURL:   "https://image.tmdb.org/t/p/w500/heat.jpg",
		Genres:      []string{"Action", "Crime"},
		Cast: []string{
			"Al Pacino", "Robert De Niro", "Val Kilmer", "Jon Voight", "Tom Sizemore",
			"Diane Venora", "Amy Brenneman", "Ashley Judd", "Mykelti Williamson", "Wes Studi",
		},
		SimilarTitles: []string{"Ronin", "Thief", "Collateral", "The Town", "Sicario"},
	}, movie)
}

func TestClient_FetchMovieErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		query   string
		handler http.HandlerFunc
		wantErr []error
		wantHit bool
	}{
		{
			name:    "missing key makes no request",
			key:     "",
			query:   "Heat",
			wantErr: []error{providers.ErrAuthFailure, providers.ErrMissingCredential},
		},
		{
			name:    "empty query makes no request",
			key:     "k",
			query:   "  ",
			wantErr: []error{providers.ErrUpstream, providers.ErrNoResults},
		},
		{
			name:  "rejected key",
			key:   "bad",
			query: "Heat",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key."}`)
			},
			wantErr: []error{providers.ErrAuthFailure},
			wantHit: true,
		},
		{
			name:  "no match",
			key:   "k",
			query: "zzzzzz",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"results":[]}`)
			},
			wantErr: []error{providers.ErrUpstream, providers.ErrNoResults},
			wantHit: true,
		},
		{
			name:  "server error",
			key:   "k",
			query: "Heat",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantErr: []error{providers.ErrUpstream},
			wantHit: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := tt.handler
			if handler == nil {
				handler = func(w http.ResponseWriter, r *http.Request) {}
			}
			srv, hits := newTestServer(t, handler)

			movie, err := newClient(srv.URL, tt.key).FetchMovie(context.Background(), tt.query)
			assert.Nil(t, movie)
			for _, target := range tt.wantErr {
				assert.ErrorIs(t, err, target)
			}
			assert.Equal(t, tt.wantHit, atomic.LoadInt32(hits) > 0)
			if tt.key != "" {
				assert.False(t, strings.Contains(err.Error(), "api_key="+tt.key))
			}
		})
	}
}
