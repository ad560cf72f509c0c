package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"secret-santa-backend/internal/common/errors"
)

// RequireAdmin lets through only callers whose Telegram id is in adminIDs.
func RequireAdmin(adminIDs []int64, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := TelegramUser(c)
		if !ok {
			AbortWithError(c, errors.NewUnauthorizedError("Telegram init data required"), logger)
			return
		}
		if !isAdmin(user.ID, adminIDs) {
			AbortWithError(c, errors.NewForbiddenError("admin access required"), logger)
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin restricts a route to the participant named by the path
// parameter param, or to an admin. A giver's assignment is secret to them.
func RequireSelfOrAdmin(param string, adminIDs []int64, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := TelegramUser(c)
		if !ok {
			AbortWithError(c, errors.NewUnauthorizedError("Telegram init data required"), logger)
			return
		}
		if isAdmin(user.ID, adminIDs) {
			c.Next()
			return
		}
		if self, _ := ParticipantID(c); self != c.Param(param) {
			AbortWithError(c, errors.NewForbiddenError("assignments are visible only to their giver"), logger)
			return
		}
		c.Next()
	}
}
