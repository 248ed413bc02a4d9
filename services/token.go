package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrMissingUserID    = errors.New("invalid user ID in token")
)

// TokenService issues and verifies HS256 access tokens carrying a user_id
// claim.
type TokenService struct {
	secretKey  []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

func NewTokenService(secretKey, issuer string, expiration time.Duration) *TokenService {
	return &TokenService{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken signs an access token for userID.
func (s *TokenService) GenerateToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    "access",
		"iss":     s.issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(s.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseUserID verifies signature, issuer, expiry and token type and returns
// the user_id claim.
func (s *TokenService) ParseUserID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (interface{}, error) {
			return s.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	if tokenType, exists := claims["type"]; exists && tokenType == "refresh" {
		return "", ErrInvalidTokenType
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrMissingUserID
	}
	return userID, nil
}
