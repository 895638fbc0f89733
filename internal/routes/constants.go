package routes

var (
	SignupDurationSecondsBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	LoginDurationSecondsBuckets  = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	ActionDurationSecondsBuckets = []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30}
)

const (
	// API route constants
	SignupRouteAPI            = "/signup"
	LoginRouteAPI             = "/login"
	LogoutRouteAPI            = "/logout"
	SearchRouteAPI            = "/search"
	RecommendRouteAPI         = "/recommend"
	PersonalRecommendRouteAPI = "/recommend/personal"
	SummarizeRouteAPI         = "/summarize"
	WatchlistRouteAPI         = "/watchlist"
	WatchlistClearRouteAPI    = "/watchlist/clear"
	HealthRouteAPI            = "/healthz"
	MetricsRouteAPI           = "/metrics"

	TitleQueryParam = "title"

	// Content-Type constants
	ContentType     = "Content-Type"
	ContentTypeJson = "application/json"

	// message constants
	MsgAccountCreated       = "Account created. Please log in."
	MsgLoginSuccessful      = "Login successful"
	MsgLoggedOut            = "Logged out"
	MsgAddedToWatchlist     = "Added to your watchlist"
	MsgRemovedFromWatchlist = "Removed from your watchlist"
	MsgWatchlistCleared     = "Watchlist cleared"
	MsgHealthy              = "ok"

	// user facing error messages
	MsgMethodNotAllowed         = "Method not allowed"
	MsgInvalidContentType       = "Request Content-Type must be application/json"
	MsgInvalidRequestBody       = "Invalid request body"
	MsgValidationFailed         = "Request validation failed"
	MsgUsernameTaken            = "Username already exists"
	MsgInvalidCredentials       = "Invalid username or password"
	MsgTitleRequired            = "A title is required"
	MsgAlreadyInWatchlist       = "Already in your watchlist"
	MsgNotInWatchlist           = "Not in your watchlist"
	MsgInternalError            = "Something went wrong. Please try again."
	MsgDatabaseUnavailable      = "Database is unavailable"
	ErrInvalidContentTypeFormat = "invalid content-type: %s"
	ErrMethodNotAllowedFormat   = "method %s not allowed"

	// metrics constants
	SignupRequestsTotal       = "signup_requests_total"
	SignupRequestsTotalHelp   = "Total number of signup requests received"
	SignupSuccessTotal        = "signup_success_total"
	SignupSuccessTotalHelp    = "Total number of successful signup requests"
	SignupErrorsTotal         = "signup_errors_total"
	SignupErrorsTotalHelp     = "Total number of errors during signup requests"
	SignupDurationSeconds     = "signup_duration_seconds"
	SignupDurationSecondsHelp = "Duration of signup requests in seconds"
	LoginRequestsTotal        = "login_requests_total"
	LoginRequestsTotalHelp    = "Total number of login requests received"
	LoginSuccessTotal         = "login_success_total"
	LoginSuccessTotalHelp     = "Total number of successful login requests"
	LoginFailedTotal          = "login_failed_total"
	LoginFailedTotalHelp      = "Total number of failed login requests"
	LoginDurationSeconds      = "login_duration_seconds"
	LoginDurationSecondsHelp  = "Duration of login requests in seconds"
	RateLimitedTotal          = "rate_limited_requests_total"
	RateLimitedTotalHelp      = "Total number of requests rejected by the rate limiter"
	ActionRequestsTotal       = "action_requests_total"
	ActionRequestsTotalHelp   = "Total number of assistant and watchlist requests by action and status"
	ActionDurationSeconds     = "action_duration_seconds"
	ActionDurationSecondsHelp = "Duration of assistant and watchlist requests in seconds"
)

// Action label values for the action metrics.
const (
	ActionSearch            = "search"
	ActionRecommend         = "recommend"
	ActionPersonalRecommend = "recommend_personal"
	ActionSummarize         = "summarize"
	ActionWatchlistList     = "watchlist_list"
	ActionWatchlistAdd      = "watchlist_add"
	ActionWatchlistRemove   = "watchlist_remove"
	ActionWatchlistClear    = "watchlist_clear"
)
