package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

type AlertRepo struct {
	db *DB
}

func (r *AlertRepo) Create(_ context.Context, alert *models.Alert) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.plants[alert.UserPlantID]; !ok {
		return errors.NewNotFoundError("plant not found", nil)
	}
	c := *alert
	r.db.alerts[alert.ID] = &c
	index(r.db.alertsByPlant, alert.UserPlantID, alert.ID)
	return nil
}

// ownedLocked must be called with the lock held.
func (r *AlertRepo) ownedLocked(userID, id string) (*models.Alert, bool) {
	a, ok := r.db.alerts[id]
	if !ok || r.db.ownerOf(a.UserPlantID) != userID {
		return nil, false
	}
	return a, true
}

// ownedAlertsLocked collects every alert on the user's plants.
func (r *AlertRepo) ownedAlertsLocked(userID string) []*models.Alert {
	var out []*models.Alert
	for _, plantID := range r.db.ownedPlantIDs(userID) {
		for id := range r.db.alertsByPlant[plantID] {
			out = append(out, r.db.alerts[id])
		}
	}
	return out
}

func (r *AlertRepo) GetOwned(_ context.Context, userID, id string) (*models.Alert, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	a, ok := r.ownedLocked(userID, id)
	if !ok {
		return nil, errors.NewNotFoundError("alert not found", nil)
	}
	c := *a
	return &c, nil
}

func (r *AlertRepo) ListByOwner(_ context.Context, userID string, filters models.AlertFilters, skip, limit int) ([]*models.Alert, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []*models.Alert{}
	for _, a := range r.ownedAlertsLocked(userID) {
		if filters.IsRead != nil && a.IsRead != *filters.IsRead {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, skip, limit), int64(len(out)), nil
}

func (r *AlertRepo) MarkRead(_ context.Context, userID, id string, at time.Time) (*models.Alert, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.ownedLocked(userID, id)
	if !ok {
		return nil, errors.NewNotFoundError("alert not found", nil)
	}
	a.IsRead = true
	if a.ReadAt == nil {
		a.ReadAt = &at
	}
	c := *a
	return &c, nil
}

func (r *AlertRepo) MarkAllRead(_ context.Context, userID string, at time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var count int64
	for _, a := range r.ownedAlertsLocked(userID) {
		if a.IsRead {
			continue
		}
		a.IsRead = true
		readAt := at
		a.ReadAt = &readAt
		count++
	}
	return count, nil
}

func (r *AlertRepo) DeleteOwned(_ context.Context, userID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.ownedLocked(userID, id); !ok {
		return errors.NewNotFoundError("alert not found", nil)
	}
	unindex(r.db.alertsByPlant, r.db.alerts[id].UserPlantID, id)
	delete(r.db.alerts, id)
	return nil
}
