package middleware

import (
	"net/http"

	"rental-admin/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	storageKey = "clientStorage"
	sessionKey = "session"

	sidMaxAge = 365 * 24 * 60 * 60
)

// Session identifies the browser by its sid cookie, issuing a new one when
// missing, and exposes its storage and session to the handlers.
func Session(db *gorm.DB, cookieName string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sid, sidMaxAge, "/", "", secure, true)
		}
		storage := services.NewClientStorage(db.WithContext(c.Request.Context()), sid)
		c.Set(storageKey, storage)
		c.Set(sessionKey, services.NewSessionContext(storage))
		c.Next()
	}
}

// RequireSession sends browsers without an auth token to the login page.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := SessionFrom(c).RequireSession(); err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func StorageFrom(c *gin.Context) *services.ClientStorage {
	return c.MustGet(storageKey).(*services.ClientStorage)
}

func SessionFrom(c *gin.Context) *services.SessionContext {
	return c.MustGet(sessionKey).(*services.SessionContext)
}
