package service

import (
	"errors"

	"github.com/fleetpanel/fleetpanel/database"
	"github.com/fleetpanel/fleetpanel/database/model"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// Listing defaults. Unknown sort columns or directions silently fall back
// to these rather than failing the request.
const (
	defaultSortBy = "id"
	defaultOrder  = "asc"
)

var vehicleSortColumns = map[string]bool{
	"id":   true,
	"year": true,
}

// VehicleService manages the fleet entries.
type VehicleService struct{}

func (s *VehicleService) AddVehicle(vehicle *model.Vehicle) error {
	db := database.GetDB()
	vehicle.Id = 0
	return db.Create(vehicle).Error
}

func (s *VehicleService) GetVehicle(id int) (*model.Vehicle, error) {
	db := database.GetDB()

	vehicle := &model.Vehicle{}
	err := db.Model(model.Vehicle{}).
		Where("id = ?", id).
		First(vehicle).
		Error
	if database.IsNotFound(err) {
		return nil, ErrVehicleNotFound
	} else if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) UpdateVehicle(vehicle *model.Vehicle) error {
	db := database.GetDB()

	var count int64
	err := db.Model(model.Vehicle{}).
		Where("id = ?", vehicle.Id).
		Count(&count).
		Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrVehicleNotFound
	}
	return db.Save(vehicle).Error
}

func (s *VehicleService) DelVehicle(id int) error {
	db := database.GetDB()
	return db.Delete(&model.Vehicle{}, id).Error
}

// GetVehicles returns all vehicles ordered by the requested column and
// direction. Invalid values fall back to id ascending.
func (s *VehicleService) GetVehicles(sortBy string, order string) ([]model.Vehicle, string, string, error) {
	if !vehicleSortColumns[sortBy] {
		sortBy = defaultSortBy
	}
	if order != "asc" && order != "desc" {
		order = defaultOrder
	}

	db := database.GetDB()
	var vehicles []model.Vehicle
	err := db.Model(model.Vehicle{}).
		Order(sortBy + " " + order).
		Find(&vehicles).
		Error
	if err != nil {
		return nil, sortBy, order, err
	}
	return vehicles, sortBy, order, nil
}
