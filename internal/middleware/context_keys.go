package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// actorKey holds the authenticated staff email; roleKey holds the JWT role.
const (
	actorKey = contextKey("actor")
	roleKey  = contextKey("role")
)

// GetActorFromContext retrieves the authenticated actor (staff email) from the Gin context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	if actor, ok := c.Get(string(actorKey)); ok {
		if s, ok := actor.(string); ok && s != "" {
			return s, true
		}
	}
	// check in the request context as well
	return GetActorFromCtx(c.Request.Context())
}

// GetActorFromCtx retrieves the actor from a standard context.
func GetActorFromCtx(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorKey).(string)
	return actor, ok && actor != ""
}

// GetRoleFromContext retrieves the authenticated role from the Gin context.
func GetRoleFromContext(c *gin.Context) string {
	role, _ := c.Get(string(roleKey))
	s, _ := role.(string)
	return s
}
