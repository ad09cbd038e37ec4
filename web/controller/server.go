package controller

import (
	"net/http"
	"strconv"

	"github.com/fleetpanel/fleetpanel/config"
	"github.com/fleetpanel/fleetpanel/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController exposes host status, recent logs and database
// backup/restore to authenticated users.
type ServerController struct {
	BaseController

	serverService service.ServerService
}

func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/server")
	g.Use(a.checkLogin)

	g.GET("/status", a.status)
	g.GET("/logs/:count", a.getLogs)
	g.GET("/getDb", a.getDb)
	g.POST("/importDB", a.importDB)
}

func (a *ServerController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *ServerController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count <= 0 {
		count = 50
	}
	level := c.DefaultQuery("level", "INFO")
	jsonObj(c, a.serverService.GetLogs(count, level), nil)
}

// getDb downloads the database file.
func (a *ServerController) getDb(c *gin.Context) {
	db, err := a.serverService.GetDb()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.server.toasts.getDbError"), err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+config.GetName()+".db")
	c.Data(http.StatusOK, "application/octet-stream", db)
}

// importDB restores the database from an uploaded file.
func (a *ServerController) importDB(c *gin.Context) {
	file, _, err := c.Request.FormFile("db")
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.server.toasts.readDbError"), err)
		return
	}
	defer file.Close()

	if err := a.serverService.ImportDB(file); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.server.toasts.importDbError"), err)
		return
	}
	jsonMsg(c, I18nWeb(c, "pages.server.toasts.importDbSuccess"), nil)
}
