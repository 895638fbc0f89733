package routes

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/accountservice"
	"github.com/haguru/kakashi/internal/assistant"
	"github.com/haguru/kakashi/internal/auth"
	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/internal/models/dto"
	"github.com/haguru/kakashi/internal/providers"
	"github.com/haguru/kakashi/internal/watchlistservice"
)

// maxRequestBodySize bounds JSON request bodies.
const maxRequestBodySize = 1 << 20

// Options holds what the handlers depend on. Metrics may be nil.
type Options struct {
	Metrics          interfaces.Metrics
	AccountService   interfaces.AccountService
	WatchlistService interfaces.WatchlistService
	Assistant        interfaces.AssistantService
	DB               interfaces.DBClient
	PrivateKey       *ecdsa.PrivateKey
	Sessions         *auth.SessionStore
	Session          config.SessionConfig
	Validator        *structValidator.Validate
	Logger           interfaces.Logger
}

type Route struct {
	Metrics          interfaces.Metrics
	AccountService   interfaces.AccountService
	WatchlistService interfaces.WatchlistService
	Assistant        interfaces.AssistantService
	DB               interfaces.DBClient
	PrivateKey       *ecdsa.PrivateKey
	Sessions         *auth.SessionStore
	Session          config.SessionConfig
	Logger           interfaces.Logger
	validator        *structValidator.Validate
}

// NewRoute creates a new Route instance.
func NewRoute(opts Options) *Route {
	validator := opts.Validator
	if validator == nil {
		validator = structValidator.New()
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = auth.NewSessionStore()
	}

	return &Route{
		Metrics:          opts.Metrics,
		AccountService:   opts.AccountService,
		WatchlistService: opts.WatchlistService,
		Assistant:        opts.Assistant,
		DB:               opts.DB,
		PrivateKey:       opts.PrivateKey,
		Sessions:         sessions,
		Session:          opts.Session,
		Logger:           opts.Logger,
		validator:        validator,
	}
}

// RegisterMetrics registers every metric the handlers update.
func RegisterMetrics(m interfaces.Metrics) {
	m.RegisterCounter(SignupRequestsTotal, SignupRequestsTotalHelp)
	m.RegisterCounter(SignupSuccessTotal, SignupSuccessTotalHelp)
	m.RegisterCounter(SignupErrorsTotal, SignupErrorsTotalHelp)
	m.RegisterHistogram(SignupDurationSeconds, SignupDurationSecondsHelp, SignupDurationSecondsBuckets)

	m.RegisterCounter(LoginRequestsTotal, LoginRequestsTotalHelp)
	m.RegisterCounter(LoginSuccessTotal, LoginSuccessTotalHelp)
	m.RegisterCounter(LoginFailedTotal, LoginFailedTotalHelp)
	m.RegisterHistogram(LoginDurationSeconds, LoginDurationSecondsHelp, LoginDurationSecondsBuckets)

	m.RegisterCounterVec(RateLimitedTotal, RateLimitedTotalHelp, []string{"path"})
	m.RegisterCounterVec(ActionRequestsTotal, ActionRequestsTotalHelp, []string{"action", "status"})
	m.RegisterHistogramVec(ActionDurationSeconds, ActionDurationSecondsHelp, ActionDurationSecondsBuckets, []string{"action"})
}

// RateLimited counts a request rejected by the rate limiter.
func (r *Route) RateLimited(req *http.Request) {
	if r.Metrics != nil {
		r.Metrics.IncCounterVec(RateLimitedTotal, req.URL.Path)
	}
}

func (r *Route) observeAction(action string, status int, start time.Time) {
	if r.Metrics == nil {
		return
	}
	r.Metrics.IncCounterVec(ActionRequestsTotal, action, fmt.Sprint(status))
	r.Metrics.ObserveHistogramVec(ActionDurationSeconds, time.Since(start).Seconds(), action)
}

// allowMethod writes 405 and returns false when req does not use one of methods.
func (r *Route) allowMethod(w http.ResponseWriter, req *http.Request, methods ...string) bool {
	for _, m := range methods {
		if req.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	r.errorResponse(w, http.StatusMethodNotAllowed, fmt.Errorf(ErrMethodNotAllowedFormat, req.Method), MsgMethodNotAllowed)
	return false
}

// decodeRequest reads a JSON body into dst and validates it. On failure the
// error response has been written and false is returned.
func (r *Route) decodeRequest(w http.ResponseWriter, req *http.Request, dst interface{}) bool {
	if ct := req.Header.Get(ContentType); !strings.HasPrefix(ct, ContentTypeJson) {
		r.errorResponse(w, http.StatusBadRequest, fmt.Errorf(ErrInvalidContentTypeFormat, ct), MsgInvalidContentType)
		return false
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxRequestBodySize)).Decode(dst); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgInvalidRequestBody)
		return false
	}

	if err := r.validator.Struct(dst); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgValidationFailed)
		return false
	}
	return true
}

// session returns the session put in the context by middleware.RequireSession.
func (r *Route) session(w http.ResponseWriter, req *http.Request) (*auth.Session, bool) {
	session, ok := auth.SessionFromContext(req.Context())
	if !ok {
		r.errorResponse(w, http.StatusUnauthorized, errors.New("no session"), "Please log in")
		return nil, false
	}
	return session, true
}

// serviceError maps an error from a service call to a response and returns
// the status written.
func (r *Route) serviceError(w http.ResponseWriter, err error) int {
	var status int
	var code, message string

	kind, isProvider := providers.KindOf(err)
	switch {
	case errors.Is(err, accountservice.ErrInvalidInput),
		errors.Is(err, watchlistservice.ErrInvalidEntry),
		errors.Is(err, assistant.ErrInvalidInput):
		status, code, message = http.StatusBadRequest, err.Error(), MsgValidationFailed
	case errors.Is(err, accountservice.ErrDuplicateUsername):
		status, code, message = http.StatusConflict, err.Error(), MsgUsernameTaken
	case errors.Is(err, accountservice.ErrNotFound), errors.Is(err, accountservice.ErrInvalidCredentials):
		status, code, message = http.StatusUnauthorized, accountservice.ErrInvalidCredentials.Error(), MsgInvalidCredentials
	case errors.Is(err, watchlistservice.ErrDuplicateEntry):
		status, code, message = http.StatusConflict, err.Error(), MsgAlreadyInWatchlist
	case errors.Is(err, watchlistservice.ErrEntryNotFound):
		status, code, message = http.StatusNotFound, err.Error(), MsgNotInWatchlist
	case isProvider && errors.Is(err, providers.ErrNoResults):
		status, code, message = http.StatusNotFound, providers.ErrNoResults.Error(), providers.Message(err)
	case isProvider:
		status, code, message = providerStatus(kind), kind.String(), providers.Message(err)
		r.Logger.Warn("provider request failed", "kind", kind.String(), "error", err)
	default:
		status, code, message = http.StatusInternalServerError, "internal error", MsgInternalError
		r.Logger.Error("request failed", "error", err)
	}

	r.errorResponse(w, status, errors.New(code), message)
	return status
}

func providerStatus(kind providers.Kind) int {
	switch kind {
	case providers.KindAuthFailure:
		return http.StatusServiceUnavailable
	case providers.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (r *Route) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		r.Logger.Error("failed to encode response", "error", err)
	}
}

func (r *Route) errorResponse(w http.ResponseWriter, status int, err error, message string) {
	r.writeJSON(w, status, dto.ErrorResponse{
		Error:   err.Error(),
		Message: message,
	})
}
