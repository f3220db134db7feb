package careservice

import (
	"context"
	"time"

	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// TriggerWatering records a pending watering event for an owned plant.
// Deciding whether a pump actually runs is left to the device side.
func (s *CareService) TriggerWatering(ctx context.Context, p *auth.Principal, plantID string, trigger models.WateringTrigger) (*models.WateringEvent, error) {
	plant, err := s.Guard.Plant(ctx, p, plantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	event := &models.WateringEvent{
		ID:            nuts.NID("wtr", 12),
		UserPlantID:   plant.ID,
		Trigger:       trigger,
		Status:        models.StatusPending,
		ScheduledTime: now,
		CreatedAt:     now,
	}
	if err := s.Watering.Create(ctx, event); err != nil {
		return nil, err
	}
	nuts.L.Infof("[CareService] Watering %s (%s) queued for plant %s", event.ID, trigger, plant.ID)
	return event, nil
}

// WateringHistory lists an owned plant's events from the last days days.
func (s *CareService) WateringHistory(ctx context.Context, p *auth.Principal, plantID string, days int, page models.Page) (*models.WateringEventList, error) {
	plant, err := s.Guard.Plant(ctx, p, plantID)
	if err != nil {
		return nil, err
	}
	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	events, total, err := s.Watering.ListByPlant(ctx, plant.ID, since, page.Skip, page.Limit)
	if err != nil {
		return nil, err
	}
	return &models.WateringEventList{Events: events, Total: total, Skip: page.Skip, Limit: page.Limit}, nil
}

// UpdateWateringEvent moves an event through its status lifecycle.
func (s *CareService) UpdateWateringEvent(ctx context.Context, p *auth.Principal, id string, in *models.WateringEventUpdate) (*models.WateringEvent, error) {
	event, err := s.Guard.WateringEvent(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := in.Apply(event, s.now()); err != nil {
		return nil, err
	}
	if err := s.Watering.Update(ctx, p.UserID, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *CareService) DeleteWateringEvent(ctx context.Context, p *auth.Principal, id string) error {
	userID, err := owner(p)
	if err != nil {
		return err
	}
	return s.Watering.DeleteOwned(ctx, userID, id)
}
