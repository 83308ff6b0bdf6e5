package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"table_order/internal/auth"
	"table_order/internal/logger"
	"table_order/internal/services"
	"table_order/internal/session"

	"github.com/gin-gonic/gin"
)

const genericFailure = "Something went wrong, please try again"

// errorStatus maps a service error to an HTTP status and a user-facing message.
func errorStatus(err error) (int, string) {
	var verr services.ValidationError
	switch {
	case errors.Is(err, services.ErrInvalidOrder):
		return http.StatusBadRequest, "Invalid data"
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden, "Unauthorized"
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, services.ErrConflict):
		var cerr services.ConflictError
		if errors.As(err, &cerr) {
			return http.StatusConflict, cerr.Message
		}
		return http.StatusConflict, "Conflict"
	default:
		return http.StatusInternalServerError, genericFailure
	}
}

func respondError(c *gin.Context, log *logger.Logger, action string, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error(action, "Request failed", err, slog.String("path", c.Request.URL.Path))
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}

// render adds the layout data every page expects.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if s := session.Current(c); s != nil {
		data["Flashes"] = s.Flashes(c.Request.Context())
	}
	data["Principal"] = auth.PrincipalFrom(c)
	data["Year"] = time.Now().Year()
	c.HTML(status, name, data)
}

func renderError(c *gin.Context, status int, message string) {
	render(c, status, "error.html", gin.H{"Title": http.StatusText(status), "Status": status, "Message": message})
}

func renderNotFound(c *gin.Context) {
	renderError(c, http.StatusNotFound, "The page you are looking for does not exist.")
}

// pageError renders a failed page load, logging unexpected errors.
func pageError(c *gin.Context, log *logger.Logger, action string, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error(action, "Page failed", err, slog.String("path", c.Request.URL.Path))
	}
	if status == http.StatusNotFound {
		renderNotFound(c)
		return
	}
	renderError(c, status, message)
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// NotFound is the fallback for unknown routes.
func NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
		return
	}
	renderNotFound(c)
}
