package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

type UserPlantRepo struct {
	db *DB
}

func (r *UserPlantRepo) Create(_ context.Context, plant *models.UserPlant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.catalog[plant.SpeciesID]; !ok {
		return errors.NewNotFoundError("plant species not found", nil)
	}
	if _, ok := r.db.users[plant.UserID]; !ok {
		return errors.NewNotFoundError("user not found", nil)
	}
	c := *plant
	r.db.plants[plant.ID] = &c
	index(r.db.plantsByUser, plant.UserID, plant.ID)
	return nil
}

func (r *UserPlantRepo) GetOwned(_ context.Context, userID, id string) (*models.UserPlant, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.ownedPlant(userID, id)
	if !ok {
		return nil, errors.NewNotFoundError("plant not found", nil)
	}
	c := *p
	return &c, nil
}

func (r *UserPlantRepo) ListByOwner(_ context.Context, userID string, skip, limit int) ([]*models.UserPlant, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	owned := []*models.UserPlant{}
	for _, id := range r.db.ownedPlantIDs(userID) {
		c := *r.db.plants[id]
		owned = append(owned, &c)
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID < owned[j].ID
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return page(owned, skip, limit), int64(len(owned)), nil
}

func (r *UserPlantRepo) Update(_ context.Context, userID string, plant *models.UserPlant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.db.ownedPlant(userID, plant.ID)
	if !ok {
		return errors.NewNotFoundError("plant not found", nil)
	}
	c := *plant
	c.UserID = cur.UserID
	c.SpeciesID = cur.SpeciesID
	c.CreatedAt = cur.CreatedAt
	c.LastWatered = cur.LastWatered
	r.db.plants[plant.ID] = &c
	return nil
}

func (r *UserPlantRepo) MarkWatered(_ context.Context, userID, id string, at time.Time) (*models.UserPlant, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.ownedPlant(userID, id)
	if !ok {
		return nil, errors.NewNotFoundError("plant not found", nil)
	}
	p.LastWatered = &at
	p.UpdatedAt = at
	c := *p
	return &c, nil
}

func (r *UserPlantRepo) DeleteOwned(_ context.Context, userID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.ownedPlant(userID, id); !ok {
		return errors.NewNotFoundError("plant not found", nil)
	}
	delete(r.db.plants, id)
	unindex(r.db.plantsByUser, userID, id)
	for sid := range r.db.sensorsByPlant[id] {
		r.db.deleteSensorLocked(sid)
	}
	for wid, w := range r.db.watering {
		if w.UserPlantID == id {
			delete(r.db.watering, wid)
		}
	}
	for aid := range r.db.alertsByPlant[id] {
		delete(r.db.alerts, aid)
	}
	delete(r.db.alertsByPlant, id)
	return nil
}
