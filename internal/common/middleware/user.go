package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

// TelegramUser returns the user stored by TelegramInitData.
func TelegramUser(c *gin.Context) (initdata.User, bool) {
	user, exists := c.Get("user")
	if !exists {
		return initdata.User{}, false
	}
	telegramUser, ok := user.(initdata.User)
	return telegramUser, ok
}

// ParticipantID is the registry id of the caller: their Telegram id in decimal.
func ParticipantID(c *gin.Context) (string, bool) {
	user, ok := TelegramUser(c)
	if !ok {
		return "", false
	}
	return strconv.FormatInt(user.ID, 10), true
}

func isAdmin(id int64, adminIDs []int64) bool {
	for _, adminID := range adminIDs {
		if id == adminID {
			return true
		}
	}
	return false
}
