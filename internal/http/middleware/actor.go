package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ActorHeader = "X-User"
	actorKey    = "actor"
)

// Actor records the calling user's name for history entries.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(actorKey, strings.TrimSpace(c.GetHeader(ActorHeader)))
		c.Next()
	}
}

// ActorFrom returns the user set by Actor, or "" when none was supplied.
func ActorFrom(c *gin.Context) string {
	return c.GetString(actorKey)
}
