package auth

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ISSUER  = "github.com/haguru/kakashi"
	SUBJECT = "SESSION"
	// COOKIE_NAME is the cookie carrying the signed session token.
	COOKIE_NAME = "session_token"
)

var ErrInvalidToken = errors.New("invalid token or claims")

type CustomClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session is the verified content of a session token.
type Session struct {
	ID        string
	Username  string
	ExpiresAt time.Time
}

// CreateToken signs an ES256 session token for username valid for ttl.
func CreateToken(username string, privateKey *ecdsa.PrivateKey, ttl time.Duration) (string, *Session, error) {
	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		ExpiresAt: now.Add(ttl).Truncate(time.Second),
	}

	claims := CustomClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    ISSUER,
			Subject:   SUBJECT,
			Audience:  []string{"api." + ISSUER},
			ID:        session.ID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(privateKey)
	if err != nil {
		return "", nil, err
	}
	return signed, session, nil
}

// VerifyToken checks the signature, expiry, issuer and audience of
// tokenString and returns the session it carries.
func VerifyToken(tokenString string, publicKey *ecdsa.PublicKey) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	},
		jwt.WithIssuer(ISSUER),
		jwt.WithAudience("api."+ISSUER),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Username == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return &Session{
		ID:        claims.ID,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
