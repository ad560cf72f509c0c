package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"secret-santa-backend/internal/common/errors"
)

const InitDataHeader = "init_data"

// TelegramInitData validates the init_data header against the bot token and
// stores the Telegram user under "user" and its id under "user_id".
// A zero ttl disables the auth_date expiration check.
func TelegramInitData(token string, ttl time.Duration, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		initDataQuery := c.GetHeader(InitDataHeader)
		if initDataQuery == "" {
			AbortWithError(c, errors.NewUnauthorizedError("Telegram init data required"), logger)
			return
		}

		if token == "" {
			logger.Error().Msg("BOT_TOKEN is not configured; rejecting authenticated request")
			AbortWithError(c, errors.New(errors.ErrCodeInternal, "Server configuration error"), logger)
			return
		}

		if err := initdata.Validate(initDataQuery, token, ttl); err != nil {
			AbortWithError(c, errors.Wrap(err, errors.ErrCodeUnauthorized, "Invalid init data"), logger)
			return
		}

		parsed, err := initdata.Parse(initDataQuery)
		if err != nil {
			AbortWithError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Failed to parse init data"), logger)
			return
		}

		logger.Debug().Int64("user_id", parsed.User.ID).Str("username", parsed.User.Username).Msg("Init data validated")

		c.Set("user", parsed.User)
		c.Set("user_id", parsed.User.ID)
		c.Next()
	}
}
