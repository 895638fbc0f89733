package dto

// CredentialsRequestDTO is the body of /signup and /login.
type CredentialsRequestDTO struct {
	Username string `json:"username" validate:"required,max=64"`
	// bcrypt only uses the first 72 bytes
	Password string `json:"password" validate:"required,max=72"`
}

type UserSignupResponseDTO struct {
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
}

type LoginResponseDTO struct {
	Message   string `json:"message"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"`
}

type MessageResponseDTO struct {
	Message string `json:"message"`
}

type RateLimitResponse struct {
	Message string `json:"message"`
}
