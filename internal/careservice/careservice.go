// Package careservice holds the request-level operations of the plant care
// API. Every operation on owned data goes through the Guard first.
package careservice

import (
	"time"

	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/cleanup"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/repository"
)

// CareService contains all repositories and service-wide dependencies
type CareService struct {
	Users      repository.UserRepository
	Catalog    repository.CatalogRepository
	UserPlants repository.UserPlantRepository
	Sensors    repository.SensorRepository
	Watering   repository.WateringRepository
	Alerts     repository.AlertRepository

	Guard   *Guard
	Cleanup *cleanup.CleanupService

	tokens  *auth.TokenService
	devices *auth.DeviceTokenIssuer
	now     func() time.Time
}

// New creates a new CareService over store.
func New(store *repository.Store, tokens *auth.TokenService, devices *auth.DeviceTokenIssuer) *CareService {
	return &CareService{
		Users:      store.Users,
		Catalog:    store.Catalog,
		UserPlants: store.UserPlants,
		Sensors:    store.Sensors,
		Watering:   store.Watering,
		Alerts:     store.Alerts,
		Guard:      NewGuard(store),
		Cleanup:    cleanup.New(store.UserPlants, store.Sensors),
		tokens:     tokens,
		devices:    devices,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Validate checks if all required dependencies are initialized
func (s *CareService) Validate() error {
	switch {
	case s.Users == nil:
		return ErrMissingRepository("users")
	case s.Catalog == nil:
		return ErrMissingRepository("catalog")
	case s.UserPlants == nil:
		return ErrMissingRepository("userPlants")
	case s.Sensors == nil:
		return ErrMissingRepository("sensors")
	case s.Watering == nil:
		return ErrMissingRepository("watering")
	case s.Alerts == nil:
		return ErrMissingRepository("alerts")
	case s.tokens == nil || s.devices == nil:
		return errors.NewInternalError("missing token issuers", nil)
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}
