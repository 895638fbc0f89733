package middleware

import (
	"crypto/ecdsa"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/haguru/kakashi/internal/auth"
	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/internal/models/dto"
)

const MsgLoginRequired = "Please log in"

var (
	ErrMissingSession = errors.New("missing session cookie")
	ErrRevokedSession = errors.New("session has been logged out")
)

// RequireSession rejects requests without a valid, unrevoked session cookie
// with 401. Accepted requests carry the session in their context.
func RequireSession(publicKey *ecdsa.PublicKey, store *auth.SessionStore, logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.COOKIE_NAME)
			if err != nil || cookie.Value == "" {
				unauthorized(w, ErrMissingSession)
				return
			}

			session, err := auth.VerifyToken(cookie.Value, publicKey)
			if err != nil {
				logger.Debug("rejected session token", "path", r.URL.Path, "error", err)
				unauthorized(w, err)
				return
			}
			if store != nil && store.IsRevoked(session.ID) {
				unauthorized(w, ErrRevokedSession)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: err.Error(), Message: MsgLoginRequired})
}
