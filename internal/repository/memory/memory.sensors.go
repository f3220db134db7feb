package memory

import (
	"context"
	"sort"

	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

type SensorRepo struct {
	db *DB
}

func (r *SensorRepo) Create(_ context.Context, sensor *models.Sensor) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.plants[sensor.UserPlantID]; !ok {
		return errors.NewNotFoundError("plant not found", nil)
	}
	for _, s := range r.db.sensors {
		if s.DeviceID == sensor.DeviceID {
			return errors.NewValidationError("device_id already registered", nil)
		}
		if s.AuthToken == sensor.AuthToken {
			return errors.NewValidationError("sensor already exists", nil)
		}
	}
	c := *sensor
	r.db.sensors[sensor.ID] = &c
	index(r.db.sensorsByPlant, sensor.UserPlantID, sensor.ID)
	return nil
}

// byDeviceLocked must be called with the lock held.
func (r *SensorRepo) byDeviceLocked(deviceID string) (*models.Sensor, bool) {
	for _, s := range r.db.sensors {
		if s.DeviceID == deviceID {
			return s, true
		}
	}
	return nil, false
}

func (r *SensorRepo) GetByDeviceID(_ context.Context, deviceID string) (*models.Sensor, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	if s, ok := r.byDeviceLocked(deviceID); ok {
		c := *s
		return &c, nil
	}
	return nil, errors.NewNotFoundError("sensor not found", nil)
}

func (r *SensorRepo) GetOwned(_ context.Context, userID, deviceID string) (*models.Sensor, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.byDeviceLocked(deviceID)
	if !ok || r.db.ownerOf(s.UserPlantID) != userID {
		return nil, errors.NewNotFoundError("sensor not found", nil)
	}
	c := *s
	return &c, nil
}

func (r *SensorRepo) ListByOwner(_ context.Context, userID string, skip, limit int) ([]*models.Sensor, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	owned := []*models.Sensor{}
	for _, plantID := range r.db.ownedPlantIDs(userID) {
		for id := range r.db.sensorsByPlant[plantID] {
			c := *r.db.sensors[id]
			owned = append(owned, &c)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID < owned[j].ID
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return page(owned, skip, limit), int64(len(owned)), nil
}

func (r *SensorRepo) Update(_ context.Context, userID string, sensor *models.Sensor) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.db.sensors[sensor.ID]
	if !ok || r.db.ownerOf(cur.UserPlantID) != userID {
		return errors.NewNotFoundError("sensor not found", nil)
	}
	cur.FirmwareVersion = sensor.FirmwareVersion
	cur.IsOnline = sensor.IsOnline
	cur.BatteryLevel = sensor.BatteryLevel
	cur.LastSeen = sensor.LastSeen
	cur.MoistureDryValue = sensor.MoistureDryValue
	cur.MoistureWetValue = sensor.MoistureWetValue
	cur.UpdatedAt = sensor.UpdatedAt
	return nil
}

func (r *SensorRepo) DeleteOwned(_ context.Context, userID, deviceID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.byDeviceLocked(deviceID)
	if !ok || r.db.ownerOf(s.UserPlantID) != userID {
		return errors.NewNotFoundError("sensor not found", nil)
	}
	r.db.deleteSensorLocked(s.ID)
	return nil
}

func (r *SensorRepo) RecordReading(_ context.Context, reading *models.Reading) (*models.Sensor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sensors[reading.SensorID]
	if !ok {
		return nil, errors.NewNotFoundError("sensor not found", nil)
	}
	c := *reading
	r.db.readings[s.ID] = append(r.db.readings[s.ID], &c)

	at := reading.Timestamp
	s.IsOnline = true
	s.LastSeen = &at
	if reading.BatteryLevel != nil {
		b := *reading.BatteryLevel
		s.BatteryLevel = &b
	}
	s.UpdatedAt = at
	out := *s
	return &out, nil
}

// newestFirst copies a sensor's readings sorted by timestamp descending.
// Lock must be held.
func (r *SensorRepo) newestFirst(sensorID string, q models.ReadingQuery) []*models.Reading {
	out := []*models.Reading{}
	for _, rd := range r.db.readings[sensorID] {
		if q.Since != nil && rd.Timestamp.Before(*q.Since) {
			continue
		}
		c := *rd
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

func (r *SensorRepo) ListReadings(_ context.Context, sensorID string, q models.ReadingQuery) ([]*models.Reading, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := r.newestFirst(sensorID, q)
	return page(all, q.Skip, q.Limit), int64(len(all)), nil
}

func (r *SensorRepo) LatestReading(_ context.Context, sensorID string) (*models.Reading, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := r.newestFirst(sensorID, models.ReadingQuery{})
	if len(all) == 0 {
		return nil, errors.NewNotFoundError("no readings found for this sensor", nil)
	}
	return all[0], nil
}
