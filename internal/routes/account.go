package routes

import (
	"net/http"
	"time"

	"github.com/haguru/kakashi/internal/auth"
	"github.com/haguru/kakashi/internal/models/dto"
)

// Signup handles user signup requests.
func (r *Route) Signup(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(SignupRequestsTotal)
	}

	signupRequest := &dto.CredentialsRequestDTO{}
	if !r.decodeRequest(w, req, signupRequest) {
		if r.Metrics != nil {
			r.Metrics.IncCounter(SignupErrorsTotal)
		}
		return
	}

	startTime := time.Now()
	if err := r.AccountService.Register(req.Context(), signupRequest.Username, signupRequest.Password); err != nil {
		r.serviceError(w, err)
		if r.Metrics != nil {
			r.Metrics.IncCounter(SignupErrorsTotal)
		}
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(SignupSuccessTotal)
		r.Metrics.ObserveHistogram(SignupDurationSeconds, time.Since(startTime).Seconds())
	}

	r.writeJSON(w, http.StatusCreated, &dto.UserSignupResponseDTO{
		Message:  MsgAccountCreated,
		Username: signupRequest.Username,
	})
}

// Login handles user login requests. A successful login sets the session cookie.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(LoginRequestsTotal)
	}

	loginRequest := &dto.CredentialsRequestDTO{}
	if !r.decodeRequest(w, req, loginRequest) {
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}

	startTime := time.Now()
	identity, err := r.AccountService.Authenticate(req.Context(), loginRequest.Username, loginRequest.Password)
	if r.Metrics != nil {
		r.Metrics.ObserveHistogram(LoginDurationSeconds, time.Since(startTime).Seconds())
	}
	if err != nil {
		r.serviceError(w, err)
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}

	token, session, err := auth.CreateToken(identity.Username, r.PrivateKey, r.Session.TTL)
	if err != nil {
		r.Logger.Error("failed to generate session token", "user", identity.Username, "error", err)
		r.errorResponse(w, http.StatusInternalServerError, err, "Failed to generate session token")
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(LoginSuccessTotal)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.COOKIE_NAME,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   r.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	r.writeJSON(w, http.StatusOK, &dto.LoginResponseDTO{
		Message:   MsgLoginSuccessful,
		Username:  identity.Username,
		ExpiresAt: session.ExpiresAt.Unix(),
	})
}

// Logout revokes the current session and clears the cookie.
func (r *Route) Logout(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}

	session, ok := r.session(w, req)
	if !ok {
		return
	}
	r.Sessions.Revoke(session)
	r.Logger.Info("User logged out", "user", session.Username)

	http.SetCookie(w, &http.Cookie{
		Name:     auth.COOKIE_NAME,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	r.writeJSON(w, http.StatusOK, &dto.MessageResponseDTO{Message: MsgLoggedOut})
}

