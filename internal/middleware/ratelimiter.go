package middleware

import (
	"net/http"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/haguru/kakashi/internal/models/dto"
)

const MsgTooManyRequests = "Too many requests. Please try again later."

// RateLimitMiddleware rejects requests beyond limiter with 429. onLimited,
// when set, is called for each rejected request.
func RateLimitMiddleware(limiter *rate.Limiter, onLimited func(*http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if onLimited != nil {
					onLimited(r)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				resp := dto.RateLimitResponse{Message: MsgTooManyRequests}
				_ = json.NewEncoder(w).Encode(resp)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
