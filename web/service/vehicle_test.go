package service

import (
	"testing"

	"github.com/fleetpanel/fleetpanel/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedVehicles(t *testing.T, s *VehicleService) {
	t.Helper()
	for _, v := range []model.Vehicle{
		{Brand: "Skoda", Model: "Octavia", Year: 2019},
		{Brand: "Tatra", Model: "T87", Year: 1947},
		{Brand: "Praga", Model: "Alfa", Year: 1935},
	} {
		vehicle := v
		require.NoError(t, s.AddVehicle(&vehicle))
	}
}

func TestVehicleCRUD(t *testing.T) {
	setupTestDB(t)
	s := VehicleService{}

	vehicle := &model.Vehicle{Brand: "Skoda", Model: "Octavia", Year: 2019}
	require.NoError(t, s.AddVehicle(vehicle))
	require.NotZero(t, vehicle.Id)

	got, err := s.GetVehicle(vehicle.Id)
	require.NoError(t, err)
	assert.Equal(t, "Octavia", got.Model)

	got.Year = 2021
	require.NoError(t, s.UpdateVehicle(got))

	got, err = s.GetVehicle(vehicle.Id)
	require.NoError(t, err)
	assert.Equal(t, 2021, got.Year)

	require.NoError(t, s.DelVehicle(vehicle.Id))
	_, err = s.GetVehicle(vehicle.Id)
	assert.ErrorIs(t, err, ErrVehicleNotFound)

	// second delete is a no-op
	require.NoError(t, s.DelVehicle(vehicle.Id))
}

func TestUpdateVehicleNotFound(t *testing.T) {
	setupTestDB(t)
	s := VehicleService{}

	err := s.UpdateVehicle(&model.Vehicle{Id: 42, Brand: "Skoda", Model: "Octavia", Year: 2019})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestGetVehiclesSorting(t *testing.T) {
	setupTestDB(t)
	s := VehicleService{}
	seedVehicles(t, &s)

	tests := []struct {
		name       string
		sortBy     string
		order      string
		wantSortBy string
		wantOrder  string
		firstYear  int
	}{
		{"default", "id", "asc", "id", "asc", 2019},
		{"year ascending", "year", "asc", "year", "asc", 1935},
		{"year descending", "year", "desc", "year", "desc", 2019},
		{"invalid column falls back", "brand", "asc", "id", "asc", 2019},
		{"invalid order falls back", "year", "sideways", "year", "asc", 1935},
		{"both invalid fall back", "color", "up", "id", "asc", 2019},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vehicles, sortBy, order, err := s.GetVehicles(tt.sortBy, tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSortBy, sortBy)
			assert.Equal(t, tt.wantOrder, order)
			require.Len(t, vehicles, 3)
			assert.Equal(t, tt.firstYear, vehicles[0].Year)
		})
	}
}
