package postgres

import (
	"github.com/ikigain/ForestOS/internal/database"
	"github.com/ikigain/ForestOS/internal/repository"
)

// NewStore builds the postgres-backed repository set on one connection.
func NewStore(db database.DB) *repository.Store {
	return &repository.Store{
		Users:      NewUserRepository(db),
		Catalog:    NewCatalogRepository(db),
		UserPlants: NewUserPlantRepository(db),
		Sensors:    NewSensorRepository(db),
		Watering:   NewWateringRepository(db),
		Alerts:     NewAlertRepository(db),
		Ping:       db.Ping,
	}
}
