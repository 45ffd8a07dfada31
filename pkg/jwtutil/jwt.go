package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"staffboard/pkg/config"
)

var (
	secret           = []byte("staffboard-secret-key")
	expiration       = 8 * time.Hour
	workerExpiration = 12 * time.Hour
)

// Initialize configures the signing key and token lifetimes.
func Initialize(cfg *config.JWTConfig) {
	secret = []byte(cfg.SigningKey)
	if cfg.ExpirationHours > 0 {
		expiration = time.Duration(cfg.ExpirationHours) * time.Hour
	}
	if cfg.WorkerExpirationHours > 0 {
		workerExpiration = time.Duration(cfg.WorkerExpirationHours) * time.Hour
	}
}

// Claims represents the JWT claims for authenticated sessions. Operator
// tokens carry the user id and role; self-service tokens carry role "worker"
// and the worker id they are bound to.
type Claims struct {
	UserID   uint   `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
	WorkerID *uint  `json:"worker_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a session token for an operator account.
func GenerateToken(userID uint, username, role string) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateWorkerToken creates a limited self-service token bound to one worker.
func GenerateWorkerToken(workerID uint, name string) (string, error) {
	claims := Claims{
		Username: name,
		Role:     "worker",
		WorkerID: &workerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(workerExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses a token string.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
