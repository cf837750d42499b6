package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"github.com/usmm07/foodcourt/internal/domain/user"
	"github.com/usmm07/foodcourt/internal/schema"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	initDataHeader  = "X-Telegram-Init-Data"
	telegramUserKey = "telegram_user"
)

// requestID tags every request with a unique id, honoring one supplied by
// the caller.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// telegramAuth validates Telegram Mini App init data and stores the parsed
// Telegram user for handlers. Init data travels in the X-Telegram-Init-Data
// header, with a query fallback for WebView environments that cannot set
// headers.
func (s *Server) telegramAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(initDataHeader)
		if raw == "" {
			raw = c.Query("init_data")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing init data"})
			return
		}

		if !s.cfg.SkipAuthCheck {
			if err := initdata.Validate(raw, s.cfg.BotToken, s.cfg.AuthTTL); err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid init data"})
				return
			}
		}

		parsed, err := initdata.Parse(raw)
		if err != nil || parsed.User.ID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed init data"})
			return
		}

		c.Set(telegramUserKey, parsed.User)
		c.Next()
	}
}

// currentUser resolves the authenticated Telegram identity into a stored
// user, creating the record on first contact. Returns false after writing
// the error response.
func (s *Server) currentUser(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(telegramUserKey)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing init data"})
		return user.User{}, false
	}
	tg := v.(initdata.User)

	firstName := tg.FirstName
	if firstName == "" {
		firstName = tg.Username
	}
	if firstName == "" {
		firstName = "Guest"
	}

	u, err := s.users.Resolve(c.Request.Context(), schema.InsertUser{
		TelegramID: strconv.FormatInt(tg.ID, 10),
		FirstName:  firstName,
		LastName:   tg.LastName,
		Username:   tg.Username,
	})
	if err != nil {
		s.respondError(c, err)
		return user.User{}, false
	}
	return u, true
}
