// Package controller provides the HTTP request handlers of the fleetpanel
// web application.
package controller

import (
	"errors"
	"net/http"

	"github.com/fleetpanel/fleetpanel/logger"
	"github.com/fleetpanel/fleetpanel/web/service"
	"github.com/fleetpanel/fleetpanel/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authentication guard shared by all protected
// controllers.
type BaseController struct {
	userService service.UserService
}

// checkLogin verifies that the session is bound to an existing account and
// stores the resolved user in the request context. A session pointing at a
// deleted account is cleared and treated as anonymous.
func (a *BaseController) checkLogin(c *gin.Context) {
	userId, ok := session.GetLoginUserId(c)
	if !ok {
		a.rejectUnauthenticated(c)
		return
	}

	user, err := a.userService.GetUser(userId)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			if err := session.ClearSession(c); err != nil {
				logger.Warning("clear stale session err:", err)
			}
		}
		a.rejectUnauthenticated(c)
		return
	}

	c.Set("login_user", user)
	c.Next()
}

func (a *BaseController) rejectUnauthenticated(c *gin.Context) {
	if isAjax(c) {
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "pages.login.loginAgain"))
	} else {
		c.Redirect(http.StatusTemporaryRedirect, "/")
	}
	c.Abort()
}

// I18nWeb retrieves a localized message for the web interface.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return name
	}
	i18nFunc, _ := anyfunc.(func(key string, keyParams ...string) string)
	return i18nFunc(name, params...)
}
