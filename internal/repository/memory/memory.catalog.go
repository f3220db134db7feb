package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

type CatalogRepo struct {
	db *DB
}

func (r *CatalogRepo) Create(_ context.Context, plant *models.Plant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.catalog[plant.SpeciesID]; ok {
		return errors.NewValidationError("species_id already exists", nil)
	}
	c := *plant
	r.db.catalog[plant.SpeciesID] = &c
	return nil
}

func (r *CatalogRepo) Get(_ context.Context, speciesID string) (*models.Plant, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	if p, ok := r.db.catalog[speciesID]; ok {
		c := *p
		return &c, nil
	}
	return nil, errors.NewNotFoundError("plant species not found", nil)
}

// sorted returns a copy of every species accepted by keep, ordered by
// scientific name.
func (r *CatalogRepo) sorted(keep func(*models.Plant) bool) []*models.Plant {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []*models.Plant{}
	for _, p := range r.db.catalog {
		if keep(p) {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScientificName < out[j].ScientificName })
	return out
}

func (r *CatalogRepo) List(_ context.Context, filters models.PlantFilters, skip, limit int) ([]*models.Plant, int64, error) {
	all := r.sorted(func(p *models.Plant) bool {
		if filters.LightLevel != "" && (p.LightLevel == nil || *p.LightLevel != filters.LightLevel) {
			return false
		}
		if filters.GrowthRate != "" && (p.GrowthRate == nil || *p.GrowthRate != filters.GrowthRate) {
			return false
		}
		return true
	})
	return page(all, skip, limit), int64(len(all)), nil
}

func (r *CatalogRepo) Search(_ context.Context, q string, limit int) ([]*models.Plant, error) {
	needle := strings.ToLower(q)
	all := r.sorted(func(p *models.Plant) bool {
		if strings.Contains(strings.ToLower(p.ScientificName), needle) {
			return true
		}
		for _, name := range p.CommonNames {
			if strings.Contains(strings.ToLower(name), needle) {
				return true
			}
		}
		return false
	})
	return page(all, 0, limit), nil
}

func (r *CatalogRepo) ListByCareLevel(_ context.Context, level models.CareLevel, limit int) ([]*models.Plant, error) {
	all := r.sorted(func(p *models.Plant) bool { return p.MatchesCareLevel(level) })
	return page(all, 0, limit), nil
}
