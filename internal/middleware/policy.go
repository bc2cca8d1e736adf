package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/policy"
	"github.com/notehive/notehive-backend/internal/requestdata"
	"github.com/notehive/notehive-backend/internal/response"
)

// RequirePolicy evaluates the static access table against the verified
// principal. It short-circuits with 403 before the handler, so an
// unauthorized request can never produce a partial side effect.
func RequirePolicy(op policy.Operation, level policy.Level) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			response.RespondAPIError(c, apierr.Unauthorized("missing or invalid token"))
			c.Abort()
			return
		}
		if !policy.Allowed(rd.Role, op, level) {
			response.RespondAPIError(c, apierr.Forbidden("admins only"))
			c.Abort()
			return
		}
		c.Next()
	}
}
