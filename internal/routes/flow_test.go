package routes

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/accountrepo"
	"github.com/haguru/kakashi/internal/accountservice"
	"github.com/haguru/kakashi/internal/interfaces/mocks"
	"github.com/haguru/kakashi/internal/models"
	"github.com/haguru/kakashi/internal/models/dto"
	"github.com/haguru/kakashi/internal/watchlistrepo"
	"github.com/haguru/kakashi/internal/watchlistservice"
	"github.com/haguru/kakashi/pkg/databases/sqlite"
	"github.com/haguru/kakashi/pkg/metrics"
	"github.com/haguru/kakashi/pkg/zerolog"
)

// newTestServer serves every endpoint over an in-memory SQLite store. Only
// the assistant is mocked.
func newTestServer(t *testing.T, limiter *rate.Limiter) (*httptest.Server, *mocks.MockAssistantService) {
	t.Helper()
	ctx := context.Background()
	logger := zerolog.NewLogger("test", io.Discard)

	db := sqlite.NewSQLiteDatabaseClient(&config.SQLiteConfig{
		ValidTables: []string{accountrepo.UsersCollection, watchlistrepo.WatchlistCollection},
		ValidFields: []string{
			"id", "username", "password_hash", "created_at",
			"owner_username", "movie_ref", "rating", "summary", "poster_url", "available_on", "added_at",
		},
	}, logger)
	require.NoError(t, db.Connect(ctx, sqlite.MemoryDSN))

	accountRepo, err := accountrepo.NewSQLAccountRepository(db)
	require.NoError(t, err)
	require.NoError(t, accountRepo.EnsureIndices(ctx))
	watchlistRepo, err := watchlistrepo.NewSQLWatchlistRepository(db)
	require.NoError(t, err)
	require.NoError(t, watchlistRepo.EnsureIndices(ctx))
	t.Cleanup(func() {
		_ = watchlistRepo.Close(ctx)
		_ = accountRepo.Close(ctx)
	})

	accounts := accountservice.NewAccountService(accountRepo, logger)
	accounts.Cost = bcrypt.MinCost

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	m := metrics.NewMetrics("test")
	RegisterMetrics(m)

	assistantMock := mocks.NewMockAssistantService(t)
	route := NewRoute(Options{
		Metrics:          m,
		AccountService:   accounts,
		WatchlistService: watchlistservice.NewWatchlistService(watchlistRepo, logger),
		Assistant:        assistantMock,
		DB:               db,
		PrivateKey:       key,
		Session:          config.SessionConfig{TTL: time.Hour},
		Logger:           logger,
	})

	mux := http.NewServeMux()
	for _, e := range route.Endpoints(limiter) {
		mux.Handle(e.Path, e.Handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, assistantMock
}

func newJarClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func do(t *testing.T, c *http.Client, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set(ContentType, ContentTypeJson)
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestFlow_AccountAndWatchlist(t *testing.T) {
	srv, assistantMock := newTestServer(t, rate.NewLimiter(rate.Inf, 1))
	c := newJarClient(t)
	creds := `{"username":"alice","password":"secret123"}`

	resp, _ := do(t, c, http.MethodGet, srv.URL+WatchlistRouteAPI, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, c, http.MethodPost, srv.URL+SignupRouteAPI, creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = do(t, c, http.MethodPost, srv.URL+SignupRouteAPI, `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = do(t, c, http.MethodPost, srv.URL+LoginRouteAPI, `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	// the conflicting signup did not replace the stored password
	resp, _ = do(t, c, http.MethodPost, srv.URL+LoginRouteAPI, creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, c, http.MethodPost, srv.URL+WatchlistRouteAPI, `{"title":"Heat","rating":7.9,"available_on":["Netflix","Max"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = do(t, c, http.MethodPost, srv.URL+WatchlistRouteAPI, `{"title":"Heat"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body := do(t, c, http.MethodGet, srv.URL+WatchlistRouteAPI, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.WatchlistResponseDTO
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "Heat", list.Entries[0].MovieRef)
	assert.Equal(t, []string{"Netflix", "Max"}, list.Entries[0].AvailableOn)

	assistantMock.On("PersonalRecommendations", mock.Anything, []string{"Heat"}).Return([]string{"Ronin", "Thief"}, nil)
	resp, body = do(t, c, http.MethodGet, srv.URL+PersonalRecommendRouteAPI, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"titles":["Ronin","Thief"]}`, string(body))

	assistantMock.On("MovieInfo", mock.Anything, "heat").
		Return(&models.MovieInfo{Movie: &models.Movie{Title: "Heat"}}, nil)
	resp, body = do(t, c, http.MethodGet, srv.URL+"/search?title=heat", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"in_watchlist":true`)

	resp, _ = do(t, c, http.MethodDelete, srv.URL+"/watchlist?title=Heat", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, c, http.MethodDelete, srv.URL+"/watchlist?title=Heat", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, c, http.MethodPost, srv.URL+LogoutRouteAPI, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, c, http.MethodGet, srv.URL+WatchlistRouteAPI, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFlow_LoginIsRateLimited(t *testing.T) {
	srv, _ := newTestServer(t, rate.NewLimiter(rate.Every(time.Hour), 2))
	c := newJarClient(t)

	var codes []int
	for i := 0; i < 3; i++ {
		resp, _ := do(t, c, http.MethodPost, srv.URL+LoginRouteAPI, `{"username":"nobody","password":"x"}`)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)

	resp, body := do(t, c, http.MethodGet, srv.URL+MetricsRouteAPI, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `test_rate_limited_requests_total{path="/login"} 1`))
}

func TestFlow_Health(t *testing.T) {
	srv, _ := newTestServer(t, rate.NewLimiter(rate.Inf, 1))

	resp, body := do(t, http.DefaultClient, http.MethodGet, srv.URL+HealthRouteAPI, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"ok"}`, string(body))
}
