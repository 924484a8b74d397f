package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quizbit/server/internal/model"
	"github.com/quizbit/server/internal/repository"
	"github.com/quizbit/server/internal/service"
	"github.com/rs/zerolog/log"
)

// identityKey is where the resolved user lands in the gin context.
const identityKey = "currentUser"

type unauthenticatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RequireAuth converts a bearer token into a verified user identity or
// aborts with 401. Identity resolution only; ownership checks stay with the
// services that read CurrentUser.
func RequireAuth(authSvc service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer") {
			abortUnauthenticated(c, "Not authorized, token missing")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			abortUnauthenticated(c, "Not authorized, token missing")
			return
		}

		userID, err := authSvc.VerifyToken(strings.TrimSpace(parts[1]))
		if err != nil {
			log.Warn().Err(err).Str("path", c.FullPath()).Msg("JWT verification failed")
			abortUnauthenticated(c, "Token invalid or expired")
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			log.Warn().Err(err).Uint("userID", userID).Msg("Token subject has no account")
			abortUnauthenticated(c, "User not found")
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, unauthenticatedResponse{Success: false, Message: message})
}

// CurrentUser returns the identity attached by RequireAuth.
func CurrentUser(c *gin.Context) (*model.User, error) {
	val, ok := c.Get(identityKey)
	if !ok {
		return nil, errors.New("no authenticated user in context")
	}
	user, ok := val.(*model.User)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}
