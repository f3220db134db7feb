package careservice

import (
	"context"

	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// CreatePlant adds a plant to the caller's collection. The species must
// exist in the catalog.
func (s *CareService) CreatePlant(ctx context.Context, p *auth.Principal, in *models.UserPlantCreate) (*models.UserPlant, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.Catalog.Get(ctx, in.SpeciesID); err != nil {
		return nil, err
	}

	now := s.now()
	autoWatering := true
	if in.AutoWateringEnabled != nil {
		autoWatering = *in.AutoWateringEnabled
	}
	plant := &models.UserPlant{
		ID:                   nuts.NID("upl", 12),
		UserID:               userID,
		SpeciesID:            in.SpeciesID,
		Nickname:             in.Nickname,
		Location:             in.Location,
		PotSize:              in.PotSize,
		PotMaterial:          in.PotMaterial,
		Notes:                in.Notes,
		IsActive:             true,
		LastWatered:          &now,
		CustomMoistureTarget: in.CustomMoistureTarget,
		CustomMoistureMin:    in.CustomMoistureMin,
		AutoWateringEnabled:  autoWatering,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.UserPlants.Create(ctx, plant); err != nil {
		return nil, err
	}
	nuts.L.Infof("[CareService] User %s added plant %s (%s)", userID, plant.ID, plant.SpeciesID)
	return plant, nil
}

func (s *CareService) ListPlants(ctx context.Context, p *auth.Principal, page models.Page) (*models.UserPlantList, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	plants, total, err := s.UserPlants.ListByOwner(ctx, userID, page.Skip, page.Limit)
	if err != nil {
		return nil, err
	}
	return &models.UserPlantList{Plants: plants, Total: total, Skip: page.Skip, Limit: page.Limit}, nil
}

func (s *CareService) GetPlant(ctx context.Context, p *auth.Principal, id string) (*models.UserPlant, error) {
	return s.Guard.Plant(ctx, p, id)
}

func (s *CareService) UpdatePlant(ctx context.Context, p *auth.Principal, id string, in *models.UserPlantUpdate) (*models.UserPlant, error) {
	plant, err := s.Guard.Plant(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Apply(plant)
	plant.UpdatedAt = s.now()
	if err := s.UserPlants.Update(ctx, p.UserID, plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// DeletePlant removes the plant and everything hanging from it.
func (s *CareService) DeletePlant(ctx context.Context, p *auth.Principal, id string) error {
	userID, err := owner(p)
	if err != nil {
		return err
	}
	return s.Cleanup.DeletePlant(ctx, userID, id)
}

// WaterPlant records a manual watering by setting last_watered to now.
func (s *CareService) WaterPlant(ctx context.Context, p *auth.Principal, id string) (*models.UserPlant, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	return s.UserPlants.MarkWatered(ctx, userID, id, s.now())
}
