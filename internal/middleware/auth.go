package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/teamhub/project-management-api/internal/constants"
	apierrors "github.com/teamhub/project-management-api/internal/errors"
	"github.com/teamhub/project-management-api/internal/policy"
	"github.com/teamhub/project-management-api/internal/token"
)

// RequireAuth resolves the bearer token into an actor and stores it in the
// request context. Requests without a valid token are rejected with 401.
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := token.ExtractToken(c.GetHeader("Authorization"))
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		actor, err := tokens.Verify(raw)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyActor, *actor)
		c.Next()
	}
}

// GetActor retrieves the current actor from context.
func GetActor(c *gin.Context) (policy.Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return policy.Actor{}, false
	}

	actor, ok := value.(policy.Actor)
	if !ok {
		return policy.Actor{}, false
	}
	return actor, true
}
