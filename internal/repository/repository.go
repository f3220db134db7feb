// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/ikigain/ForestOS/internal/models"
)

// Every method that takes a userID scopes its query through the ownership
// chain user -> user plant -> {sensor, watering event, alert}. Rows the user
// does not own are reported as not found.

// UserRepository defines the interface for account data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// CatalogRepository serves the plant species catalog.
type CatalogRepository interface {
	Create(ctx context.Context, plant *models.Plant) error
	Get(ctx context.Context, speciesID string) (*models.Plant, error)
	List(ctx context.Context, filters models.PlantFilters, skip, limit int) ([]*models.Plant, int64, error)
	Search(ctx context.Context, query string, limit int) ([]*models.Plant, error)
	ListByCareLevel(ctx context.Context, level models.CareLevel, limit int) ([]*models.Plant, error)
}

// UserPlantRepository defines the interface for user plant operations
type UserPlantRepository interface {
	Create(ctx context.Context, plant *models.UserPlant) error
	GetOwned(ctx context.Context, userID, id string) (*models.UserPlant, error)
	ListByOwner(ctx context.Context, userID string, skip, limit int) ([]*models.UserPlant, int64, error)
	Update(ctx context.Context, userID string, plant *models.UserPlant) error
	MarkWatered(ctx context.Context, userID, id string, at time.Time) (*models.UserPlant, error)
	DeleteOwned(ctx context.Context, userID, id string) error
}

// SensorRepository defines the interface for sensor and reading operations
type SensorRepository interface {
	Create(ctx context.Context, sensor *models.Sensor) error
	// GetByDeviceID is unscoped. Only the device principal resolver uses it.
	GetByDeviceID(ctx context.Context, deviceID string) (*models.Sensor, error)
	GetOwned(ctx context.Context, userID, deviceID string) (*models.Sensor, error)
	ListByOwner(ctx context.Context, userID string, skip, limit int) ([]*models.Sensor, int64, error)
	Update(ctx context.Context, userID string, sensor *models.Sensor) error
	DeleteOwned(ctx context.Context, userID, deviceID string) error

	// RecordReading appends the reading and refreshes the sensor's liveness
	// in one transaction.
	RecordReading(ctx context.Context, reading *models.Reading) (*models.Sensor, error)
	ListReadings(ctx context.Context, sensorID string, q models.ReadingQuery) ([]*models.Reading, int64, error)
	LatestReading(ctx context.Context, sensorID string) (*models.Reading, error)
}

// WateringRepository defines the interface for watering event operations
type WateringRepository interface {
	// Create inserts the event and sets the plant's last_watered in one
	// transaction.
	Create(ctx context.Context, event *models.WateringEvent) error
	GetOwned(ctx context.Context, userID, id string) (*models.WateringEvent, error)
	ListByPlant(ctx context.Context, plantID string, since time.Time, skip, limit int) ([]*models.WateringEvent, int64, error)
	Update(ctx context.Context, userID string, event *models.WateringEvent) error
	DeleteOwned(ctx context.Context, userID, id string) error
}

// AlertRepository defines the interface for alert operations
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	GetOwned(ctx context.Context, userID, id string) (*models.Alert, error)
	ListByOwner(ctx context.Context, userID string, filters models.AlertFilters, skip, limit int) ([]*models.Alert, int64, error)
	MarkRead(ctx context.Context, userID, id string, at time.Time) (*models.Alert, error)
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)
	DeleteOwned(ctx context.Context, userID, id string) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Users      UserRepository
	Catalog    CatalogRepository
	UserPlants UserPlantRepository
	Sensors    SensorRepository
	Watering   WateringRepository
	Alerts     AlertRepository

	// Ping reports backend health. Nil means always healthy.
	Ping func(ctx context.Context) error
}
