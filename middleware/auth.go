package middleware

import (
	"context"
	"errors"
	"strings"

	"inotebook/services"
	"inotebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "user_id"

type TokenVerifier interface {
	ParseUserID(tokenString string) (string, error)
}

type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, tokenString string) (bool, error)
}

// AuthMiddleware resolves the bearer token to a user id. blacklist may be
// nil, in which case revocation is not checked.
func AuthMiddleware(verifier TokenVerifier, blacklist TokenBlacklist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			TrackAuthAttempt("failure")
			utils.Unauthorized(c, "Missing or invalid token")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := verifier.ParseUserID(tokenString)
		if err != nil {
			TrackAuthAttempt("failure")
			utils.Unauthorized(c, authErrorMessage(err))
			return
		}

		if blacklist != nil {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), tokenString)
			if err != nil {
				logger.Error("token blacklist lookup failed", zap.Error(err))
				TrackError("auth")
				utils.InternalError(c, utils.MsgInternalError)
				return
			}
			if revoked {
				TrackAuthAttempt("failure")
				utils.Unauthorized(c, "Token has been invalidated")
				return
			}
		}

		TrackAuthAttempt("success")
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, services.ErrInvalidTokenType):
		return "Invalid token type"
	case errors.Is(err, services.ErrMissingUserID):
		return "Invalid user ID in token"
	default:
		return "Invalid token"
	}
}

// CurrentUserID returns the id stored by AuthMiddleware.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

