package middleware

import (
	"strings"

	"github.com/fleetpanel/fleetpanel/database/model"
	"github.com/fleetpanel/fleetpanel/logger"
	"github.com/fleetpanel/fleetpanel/web/service"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware records authenticated mutating requests. Reads and
// anonymous requests are not recorded. It runs after the handler so failed
// requests carry the final status code in their details.
func AuditMiddleware() gin.HandlerFunc {
	auditService := service.AuditLogService{}

	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == "GET" {
			return
		}

		user := loginUserFromContext(c)
		if user == nil {
			return
		}

		path := c.Request.URL.Path
		details := map[string]any{
			"method": c.Request.Method,
			"path":   path,
			"status": c.Writer.Status(),
		}

		if err := auditService.LogAction(
			user.Id,
			user.Username,
			actionFromPath(c.Request.Method, path),
			resourceFromPath(path),
			c.ClientIP(),
			c.GetHeader("User-Agent"),
			details,
		); err != nil {
			logger.Warning("failed to write audit record:", err)
		}
	}
}

// loginUserFromContext reads the user the auth guard resolved for this
// request, if any.
func loginUserFromContext(c *gin.Context) *model.User {
	if obj, ok := c.Get("login_user"); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

func actionFromPath(method string, path string) string {
	switch {
	case strings.Contains(path, "/add"):
		return "CREATE"
	case strings.Contains(path, "/update"):
		return "UPDATE"
	case strings.Contains(path, "/del"):
		return "DELETE"
	default:
		return method
	}
}

func resourceFromPath(path string) string {
	switch {
	case strings.Contains(path, "/vehicle"):
		return "vehicle"
	case strings.Contains(path, "/profile"):
		return "profile"
	default:
		return "unknown"
	}
}
