package careservice

import (
	"context"

	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

func (s *CareService) ListCatalog(ctx context.Context, filters models.PlantFilters, page models.Page) (*models.PlantList, error) {
	plants, total, err := s.Catalog.List(ctx, filters, page.Skip, page.Limit)
	if err != nil {
		return nil, err
	}
	return &models.PlantList{Plants: plants, Total: total, Skip: page.Skip, Limit: page.Limit}, nil
}

func (s *CareService) SearchCatalog(ctx context.Context, q string, limit int) ([]*models.Plant, error) {
	return s.Catalog.Search(ctx, q, limit)
}

func (s *CareService) CatalogByCareLevel(ctx context.Context, level models.CareLevel, limit int) ([]*models.Plant, error) {
	return s.Catalog.ListByCareLevel(ctx, level, limit)
}

func (s *CareService) GetSpecies(ctx context.Context, speciesID string) (*models.Plant, error) {
	return s.Catalog.Get(ctx, speciesID)
}

// AddSpecies writes a catalog entry. Only superusers may do this.
func (s *CareService) AddSpecies(ctx context.Context, p *auth.Principal, plant *models.Plant) (*models.Plant, error) {
	if _, err := owner(p); err != nil {
		return nil, err
	}
	if !p.IsSuperuser {
		return nil, errors.NewAuthorizationError("The user doesn't have enough privileges", nil)
	}
	if err := plant.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	plant.ID = nuts.NID("plt", 12)
	plant.CreatedAt = now
	plant.UpdatedAt = now
	if err := s.Catalog.Create(ctx, plant); err != nil {
		return nil, err
	}
	nuts.L.Infof("[CareService] Catalog species %s added by %s", plant.SpeciesID, p.UserID)
	return plant, nil
}
