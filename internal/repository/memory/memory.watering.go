package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

type WateringRepo struct {
	db *DB
}

func (r *WateringRepo) Create(_ context.Context, event *models.WateringEvent) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.plants[event.UserPlantID]
	if !ok {
		return errors.NewNotFoundError("plant not found", nil)
	}
	c := *event
	r.db.watering[event.ID] = &c
	at := event.ScheduledTime
	p.LastWatered = &at
	p.UpdatedAt = at
	return nil
}

// ownedLocked must be called with the lock held.
func (r *WateringRepo) ownedLocked(userID, id string) (*models.WateringEvent, bool) {
	w, ok := r.db.watering[id]
	if !ok || r.db.ownerOf(w.UserPlantID) != userID {
		return nil, false
	}
	return w, true
}

func (r *WateringRepo) GetOwned(_ context.Context, userID, id string) (*models.WateringEvent, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	w, ok := r.ownedLocked(userID, id)
	if !ok {
		return nil, errors.NewNotFoundError("watering event not found", nil)
	}
	c := *w
	return &c, nil
}

func (r *WateringRepo) ListByPlant(_ context.Context, plantID string, since time.Time, skip, limit int) ([]*models.WateringEvent, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []*models.WateringEvent{}
	for _, w := range r.db.watering {
		if w.UserPlantID == plantID && !w.ScheduledTime.Before(since) {
			c := *w
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledTime.Equal(out[j].ScheduledTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].ScheduledTime.After(out[j].ScheduledTime)
	})
	return page(out, skip, limit), int64(len(out)), nil
}

func (r *WateringRepo) Update(_ context.Context, userID string, event *models.WateringEvent) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.ownedLocked(userID, event.ID)
	if !ok {
		return errors.NewNotFoundError("watering event not found", nil)
	}
	cur.Status = event.Status
	cur.CompletedTime = event.CompletedTime
	cur.WaterML = event.WaterML
	cur.DurationSeconds = event.DurationSeconds
	cur.MoistureBeforePct = event.MoistureBeforePct
	cur.MoistureAfterPct = event.MoistureAfterPct
	cur.Notes = event.Notes
	cur.ErrorMessage = event.ErrorMessage
	return nil
}

func (r *WateringRepo) DeleteOwned(_ context.Context, userID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.ownedLocked(userID, id); !ok {
		return errors.NewNotFoundError("watering event not found", nil)
	}
	delete(r.db.watering, id)
	return nil
}
