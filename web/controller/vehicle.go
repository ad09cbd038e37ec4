package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fleetpanel/fleetpanel/database/model"
	"github.com/fleetpanel/fleetpanel/web/service"

	"github.com/gin-gonic/gin"
)

// Vehicle form limits, mirroring the client-side form rules.
const (
	minBrandLen = 2
	maxBrandLen = 50
	minModelLen = 1
	maxModelLen = 50
	minYear     = 1886
	maxYear     = 2100
)

// VehicleForm represents a vehicle create or update request.
type VehicleForm struct {
	Brand string `json:"brand" form:"brand"`
	Model string `json:"model" form:"model"`
	Year  int    `json:"year" form:"year"`
}

// VehicleController handles the fleet CRUD routes. All of them require an
// authenticated session.
type VehicleController struct {
	BaseController

	vehicleService service.VehicleService
}

func NewVehicleController(g *gin.RouterGroup) *VehicleController {
	a := &VehicleController{}
	a.initRouter(g)
	return a
}

func (a *VehicleController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)

	g.GET("/vehicles", a.list)
	g.GET("/vehicle/add", a.addPage)
	g.GET("/vehicle/:id", a.editPage)
	g.POST("/vehicle/add", a.add)
	g.POST("/vehicle/update/:id", a.update)
	g.POST("/vehicle/del/:id", a.delete)
}

// validate checks the form against the vehicle limits and returns the
// message key of the first violation.
func (f *VehicleForm) validate() string {
	if len(f.Brand) < minBrandLen || len(f.Brand) > maxBrandLen {
		return "pages.vehicles.toasts.invalidBrand"
	}
	if len(f.Model) < minModelLen || len(f.Model) > maxModelLen {
		return "pages.vehicles.toasts.invalidModel"
	}
	if f.Year < minYear || f.Year > maxYear {
		return "pages.vehicles.toasts.invalidYear"
	}
	return ""
}

// list renders the vehicle table, sorted by the requested column. Invalid
// sort parameters silently fall back to id ascending.
func (a *VehicleController) list(c *gin.Context) {
	sortBy := c.DefaultQuery("sort_by", "id")
	order := c.DefaultQuery("order", "asc")

	vehicles, sortBy, order, err := a.vehicleService.GetVehicles(sortBy, order)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	if isAjax(c) {
		jsonObj(c, vehicles, nil)
		return
	}

	html(c, "vehicles.html", "pages.vehicles.title", gin.H{
		"vehicles": vehicles,
		"sort_by":  sortBy,
		"order":    order,
		"user":     loginUser(c),
	})
}

func (a *VehicleController) addPage(c *gin.Context) {
	html(c, "add_vehicle.html", "pages.vehicles.addTitle", nil)
}

func (a *VehicleController) editPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	vehicle, err := a.vehicleService.GetVehicle(id)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	html(c, "edit_vehicle.html", "pages.vehicles.editTitle", gin.H{
		"vehicle": vehicle,
	})
}

func (a *VehicleController) add(c *gin.Context) {
	var form VehicleForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.vehicles.toasts.invalidFormData"))
		return
	}
	if key := form.validate(); key != "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, key))
		return
	}

	vehicle := &model.Vehicle{
		Brand: form.Brand,
		Model: form.Model,
		Year:  form.Year,
	}
	if err := a.vehicleService.AddVehicle(vehicle); err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	jsonMsgObj(c, I18nWeb(c, "pages.vehicles.toasts.added"), vehicle, nil)
}

func (a *VehicleController) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.vehicles.toasts.notFound"))
		return
	}

	var form VehicleForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.vehicles.toasts.invalidFormData"))
		return
	}
	if key := form.validate(); key != "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, key))
		return
	}

	vehicle := &model.Vehicle{
		Id:    id,
		Brand: form.Brand,
		Model: form.Model,
		Year:  form.Year,
	}
	err = a.vehicleService.UpdateVehicle(vehicle)
	if errors.Is(err, service.ErrVehicleNotFound) {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.vehicles.toasts.notFound"))
		return
	}
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	jsonMsgObj(c, I18nWeb(c, "pages.vehicles.toasts.updated"), vehicle, nil)
}

func (a *VehicleController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.vehicles.toasts.notFound"))
		return
	}

	if err := a.vehicleService.DelVehicle(id); err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	jsonMsg(c, I18nWeb(c, "pages.vehicles.toasts.deleted"), nil)
}
