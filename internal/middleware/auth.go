package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/logger"
	"github.com/notehive/notehive-backend/internal/requestdata"
	"github.com/notehive/notehive-backend/internal/response"
	"github.com/notehive/notehive-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), authService: authService}
}

// RequireAuth verifies the bearer token and attaches the principal to
// the request context. Missing, malformed, or expired tokens all end
// the request with 401 before any handler runs.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			response.RespondError(c, 401, apierr.CodeUnauthorized, apierr.Unauthorized("missing or invalid token"))
			c.Abort()
			return
		}
		email, role, err := am.authService.VerifyToken(tokenString)
		if err != nil {
			response.RespondAPIError(c, err)
			c.Abort()
			return
		}
		rd := &requestdata.RequestData{
			TokenString: tokenString,
			Email:       email,
			Role:        role,
		}
		c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
