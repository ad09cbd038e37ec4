package controller

import (
	"errors"
	"net/http"

	"github.com/fleetpanel/fleetpanel/logger"
	"github.com/fleetpanel/fleetpanel/web/service"
	"github.com/fleetpanel/fleetpanel/web/session"

	"github.com/gin-gonic/gin"
)

// UpdateProfileForm represents a profile update request. Password is
// optional; when set it must match ConfirmPassword.
type UpdateProfileForm struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// ProfileController handles the profile view, update and account deletion.
type ProfileController struct {
	BaseController

	userService service.UserService
}

func NewProfileController(g *gin.RouterGroup) *ProfileController {
	a := &ProfileController{}
	a.initRouter(g)
	return a
}

func (a *ProfileController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/profile")
	g.Use(a.checkLogin)

	g.GET("/", a.profile)
	g.GET("/edit", a.editPage)
	g.POST("/update", a.update)
	g.POST("/delete", a.delete)
}

func (a *ProfileController) profile(c *gin.Context) {
	html(c, "profile.html", "pages.profile.title", gin.H{
		"user": loginUser(c),
	})
}

func (a *ProfileController) editPage(c *gin.Context) {
	html(c, "edit_profile.html", "pages.profile.editTitle", gin.H{
		"user": loginUser(c),
	})
}

// update changes the username and optionally the password. A successful
// password change invalidates the session, forcing a fresh login with the
// new credentials. A username-only change keeps the session alive.
func (a *ProfileController) update(c *gin.Context) {
	user := loginUser(c)

	var form UpdateProfileForm
	if err := c.ShouldBind(&form); err != nil || form.Username == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.register.toasts.invalidFormData"))
		return
	}

	updated, passwordChanged, err := a.userService.UpdateProfile(user.Id, form.Username, form.Password, form.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordConfirm):
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.profile.toasts.confirmPassword"))
		case errors.Is(err, service.ErrPasswordMismatch):
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.profile.toasts.passwordMismatch"))
		case errors.Is(err, service.ErrDuplicateUsername):
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.profile.toasts.usernameTaken"))
		case errors.Is(err, service.ErrUserNotFound):
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.profile.toasts.userNotFound"))
		default:
			jsonMsg(c, I18nWeb(c, "fail"), err)
		}
		return
	}

	if passwordChanged {
		if err := session.ClearSession(c); err != nil {
			logger.Warning("unable to clear session after password change:", err)
		}
		logger.Infof("user %q changed password, session invalidated", updated.Username)
		jsonMsg(c, I18nWeb(c, "pages.profile.toasts.updated"), nil)
		return
	}

	logger.Infof("user %q updated profile", updated.Username)
	jsonMsg(c, I18nWeb(c, "pages.profile.toasts.updatedNoRelogin"), nil)
}

// delete removes the account and clears the session. The session goes first
// so nothing keeps pointing at the removed record.
func (a *ProfileController) delete(c *gin.Context) {
	user := loginUser(c)

	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session on account deletion:", err)
	}

	if err := a.userService.DeleteUser(user.Id); err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	logger.Infof("account %q deleted", user.Username)
	jsonMsg(c, I18nWeb(c, "pages.profile.toasts.deleted"), nil)
}
