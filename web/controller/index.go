package controller

import (
	"errors"
	"net/http"

	"github.com/fleetpanel/fleetpanel/config"
	"github.com/fleetpanel/fleetpanel/logger"
	"github.com/fleetpanel/fleetpanel/web/service"
	"github.com/fleetpanel/fleetpanel/web/session"

	"github.com/gin-gonic/gin"
)

// Registration-time form limits. Matches what the form layer enforces
// client-side; the server never trusts the client copy.
const (
	minUsernameLen = 4
	maxUsernameLen = 25
	minPasswordLen = 6
)

// LoginForm represents the login request.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterForm represents the registration request.
type RegisterForm struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// IndexController handles the welcome, login, registration and logout routes.
type IndexController struct {
	BaseController

	userService service.UserService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/login", a.loginPage)
	g.GET("/register", a.registerPage)
	g.GET("/logout", a.logout)

	g.POST("/login", a.login)
	g.POST("/register", a.register)
}

// index redirects logged-in users to the vehicle list and everyone else to
// the login page.
func (a *IndexController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, "/panel/vehicles")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, "/login")
}

func (a *IndexController) loginPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, "/panel/vehicles")
		return
	}
	html(c, "login.html", "pages.login.title", nil)
}

func (a *IndexController) registerPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, "/panel/vehicles")
		return
	}
	html(c, "register.html", "pages.register.title", nil)
}

// login authenticates the submitted credentials and binds the session to the
// account. Unknown username and wrong password answer identically.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}
	if form.Username == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.emptyUsername"))
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.emptyPassword"))
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	if user == nil {
		logger.Warningf("failed login attempt for %q, IP: %q", form.Username, getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.wrongUsernameOrPassword"))
		return
	}

	if err := session.SetMaxAge(c, config.GetSessionMaxAge()*60); err != nil {
		logger.Warning("unable to set session max age:", err)
	}
	if err := session.SetLoginUser(c, user.Id); err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	jsonMsg(c, I18nWeb(c, "pages.login.toasts.successLogin"), nil)
}

// register creates a new account after validating the submitted form.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.register.toasts.invalidFormData"))
		return
	}
	if len(form.Username) < minUsernameLen || len(form.Username) > maxUsernameLen {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.register.toasts.usernameLength"))
		return
	}
	if len(form.Password) < minPasswordLen {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.register.toasts.passwordLength"))
		return
	}
	if form.Password != form.ConfirmPassword {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.register.toasts.passwordMismatch"))
		return
	}

	user, err := a.userService.Register(form.Username, form.Password, form.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateUsername):
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.register.toasts.usernameTaken"))
		case errors.Is(err, service.ErrPasswordMismatch):
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.register.toasts.passwordMismatch"))
		default:
			jsonMsg(c, I18nWeb(c, "fail"), err)
		}
		return
	}

	logger.Infof("new account %q registered, IP: %s", user.Username, getRemoteIp(c))
	jsonMsg(c, I18nWeb(c, "pages.register.toasts.successRegister"), nil)
}

// logout clears the session and redirects to the login page. Safe to call
// without an active session.
func (a *IndexController) logout(c *gin.Context) {
	if userId, ok := session.GetLoginUserId(c); ok {
		logger.Infof("user %d logged out", userId)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, "/login")
}
