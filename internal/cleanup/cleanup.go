// FilePath: internal/cleanup/cleanup.go
package cleanup

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ikigain/ForestOS/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Events emitted after a cascading delete has committed.
const (
	EventPlantDeleted  = "plant.deleted"
	EventSensorDeleted = "sensor.deleted"
)

// CleanupService coordinates deletion of hierarchical data. The store
// cascades children of a plant or sensor; this service owns the delete call
// and announces it once it has succeeded.
type CleanupService struct {
	plants   repository.UserPlantRepository
	sensors  repository.SensorRepository
	events   *nuts.EventEmitter
	handlers atomic.Int64
}

// New creates a new CleanupService
func New(plants repository.UserPlantRepository, sensors repository.SensorRepository) *CleanupService {
	return &CleanupService{
		plants:  plants,
		sensors: sensors,
		events:  nuts.NewEventEmitter(),
	}
}

// DeletePlant deletes one of userID's plants together with its sensors,
// readings, watering events and alerts.
func (s *CleanupService) DeletePlant(ctx context.Context, userID, plantID string) error {
	if err := s.plants.DeleteOwned(ctx, userID, plantID); err != nil {
		return err
	}
	s.emit(EventPlantDeleted, plantID)
	return nil
}

// DeleteSensor deletes one of userID's sensors and its readings. This is
// also how a device token is revoked.
func (s *CleanupService) DeleteSensor(ctx context.Context, userID, deviceID string) error {
	if err := s.sensors.DeleteOwned(ctx, userID, deviceID); err != nil {
		return err
	}
	s.emit(EventSensorDeleted, deviceID)
	return nil
}

// emit runs the listeners for event. The delete has already committed, so
// a listener failure is logged and not returned.
func (s *CleanupService) emit(event, id string) {
	if err := s.events.Emit(event, id); err != nil {
		nuts.L.Warnf("[Cleanup] Failed to emit %s for %s: %v", event, id, err)
	}
}

// OnCleanup registers a callback for cleanup events. Listeners run
// synchronously before DeletePlant or DeleteSensor returns.
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	handlerID := fmt.Sprintf("cleanup_handler_%d", s.handlers.Add(1))
	if _, err := s.events.On(event, handlerID, handler); err != nil {
		nuts.L.Warnf("[Cleanup] Failed to register %s handler %s: %v", event, handlerID, err)
	}
}
