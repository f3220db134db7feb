package careservice

import (
	"context"

	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
	"github.com/ikigain/ForestOS/internal/repository"
)

// Guard loads resources only through the caller's ownership chain. A
// resource that exists but belongs to someone else is reported exactly
// like one that does not exist.
type Guard struct {
	plants   repository.UserPlantRepository
	sensors  repository.SensorRepository
	watering repository.WateringRepository
	alerts   repository.AlertRepository
}

func NewGuard(store *repository.Store) *Guard {
	return &Guard{
		plants:   store.UserPlants,
		sensors:  store.Sensors,
		watering: store.Watering,
		alerts:   store.Alerts,
	}
}

// owner returns the user id of a user principal.
func owner(p *auth.Principal) (string, error) {
	if p == nil || p.Kind != auth.KindUser || p.UserID == "" {
		return "", errors.NewInvalidCredentialsError(nil)
	}
	return p.UserID, nil
}

func (g *Guard) Plant(ctx context.Context, p *auth.Principal, id string) (*models.UserPlant, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	return g.plants.GetOwned(ctx, userID, id)
}

func (g *Guard) Sensor(ctx context.Context, p *auth.Principal, deviceID string) (*models.Sensor, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	return g.sensors.GetOwned(ctx, userID, deviceID)
}

func (g *Guard) WateringEvent(ctx context.Context, p *auth.Principal, id string) (*models.WateringEvent, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	return g.watering.GetOwned(ctx, userID, id)
}

func (g *Guard) Alert(ctx context.Context, p *auth.Principal, id string) (*models.Alert, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	return g.alerts.GetOwned(ctx, userID, id)
}
