package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/threadboard/threadboard/internal/service"
)

const ctxKeyUserID = "auth_user_id"

const bearerPrefix = "Bearer "

// RequireAuth extracts and verifies the bearer token, then binds the caller
// identity to the request context. Missing header, wrong scheme, failed
// verification, and an unparseable subject all produce the same 401 so the
// response never reveals which check failed.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c)
			return
		}

		claims, err := auth.VerifyToken(header[len(bearerPrefix):])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ctxKeyUserID, userID)
		c.Next()
	}
}

// CurrentUser returns the identity bound by RequireAuth for this request.
func CurrentUser(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return uuid.UUID{}, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
