package middleware

import (
	"net/http"
	"strings"
	"time"

	"table_order/internal/auth"
	"table_order/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const loginRequired = "Please log in to access this page"

// Session loads the caller's session and attaches its principal.
func Session(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := manager.Load(c)
		auth.SetPrincipal(c, s.Principal())
		c.Next()
	}
}

// RequireAdmin stops anonymous requests. Pages are redirected to the login
// form, API callers get a 401.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.PrincipalFrom(c).Authenticated() {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}
		session.Flash(c, "error", loginRequired)
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
	}
}

// WantsJSON reports whether the caller expects a JSON response.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Content-Type"), "application/json") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}

func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
