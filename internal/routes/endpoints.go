package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/haguru/kakashi/internal/middleware"
)

// Endpoint is a path with its fully wrapped handler.
type Endpoint struct {
	Path    string
	Handler http.Handler
}

// Endpoints returns every route of the service. Signup and login share
// limiter; the assistant and watchlist routes require a session.
func (r *Route) Endpoints(limiter *rate.Limiter) []Endpoint {
	limited := middleware.RateLimitMiddleware(limiter, r.RateLimited)
	protected := middleware.RequireSession(&r.PrivateKey.PublicKey, r.Sessions, r.Logger)

	endpoints := []Endpoint{
		{SignupRouteAPI, limited(http.HandlerFunc(r.Signup))},
		{LoginRouteAPI, limited(http.HandlerFunc(r.Login))},
		{LogoutRouteAPI, protected(http.HandlerFunc(r.Logout))},
		{SearchRouteAPI, protected(http.HandlerFunc(r.Search))},
		{RecommendRouteAPI, protected(http.HandlerFunc(r.Recommend))},
		{PersonalRecommendRouteAPI, protected(http.HandlerFunc(r.PersonalRecommend))},
		{SummarizeRouteAPI, protected(http.HandlerFunc(r.Summarize))},
		{WatchlistRouteAPI, protected(http.HandlerFunc(r.Watchlist))},
		{WatchlistClearRouteAPI, protected(http.HandlerFunc(r.ClearWatchlist))},
		{HealthRouteAPI, http.HandlerFunc(r.Health)},
	}
	if r.Metrics != nil {
		endpoints = append(endpoints, Endpoint{
			MetricsRouteAPI,
			promhttp.HandlerFor(r.Metrics.GetRegistry(), promhttp.HandlerOpts{}),
		})
	}
	return endpoints
}
