package auth

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pkg/quill/models"
	"gorm.io/gorm"
)

const (
	// SessionCookie is the name of the cookie carrying the session token
	SessionCookie = "quill_session"
	// ContextKeyUser is the key for the resolved user in gin context
	ContextKeyUser = "current_user"
	// LoginPath is where unauthenticated callers are sent
	LoginPath = "/auth/login"
)

// Identity resolves the optional caller from the session cookie and puts
// the loaded user into the gin context. It never aborts: anonymous
// requests simply carry no user.
func Identity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookie)
		if err != nil || tokenString == "" {
			c.Next()
			return
		}

		claims, err := ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.Next()
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// LoginRequired redirects anonymous callers to the login page, carrying
// the original destination in the next parameter.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUser(c); !ok {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, LoginPath+"?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUser returns the resolved user from the gin context
func GetUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	return value.(models.User), true
}

// Viewer adapts the optional caller for templates: the user when logged
// in, a nil interface otherwise, so {{if .User}} behaves.
func Viewer(c *gin.Context) interface{} {
	if user, ok := GetUser(c); ok {
		return user
	}
	return nil
}
