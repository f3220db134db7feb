package careservice

import (
	"context"

	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// RegisterSensor attaches a new device to one of the caller's plants and
// mints its token. The response is the only place the token ever appears.
func (s *CareService) RegisterSensor(ctx context.Context, p *auth.Principal, in *models.SensorCreate) (*models.RegisteredSensor, error) {
	plant, err := s.Guard.Plant(ctx, p, in.UserPlantID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.Sensors.GetByDeviceID(ctx, in.DeviceID); err == nil {
		return nil, errors.NewValidationError("device_id already registered", nil)
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	token, err := s.devices.Issue()
	if err != nil {
		return nil, errors.NewInternalError("failed to issue device token", err)
	}

	now := s.now()
	battery := 100
	sensor := &models.Sensor{
		ID:               nuts.NID("sns", 12),
		DeviceID:         in.DeviceID,
		UserPlantID:      plant.ID,
		AuthToken:        token,
		HardwareVersion:  in.HardwareVersion,
		FirmwareVersion:  in.FirmwareVersion,
		IsOnline:         true,
		BatteryLevel:     &battery,
		LastSeen:         &now,
		MoistureDryValue: in.MoistureDryValue,
		MoistureWetValue: in.MoistureWetValue,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Sensors.Create(ctx, sensor); err != nil {
		return nil, err
	}
	nuts.L.Infof("[CareService] Sensor %s registered on plant %s", sensor.DeviceID, plant.ID)
	return &models.RegisteredSensor{Sensor: sensor, AuthToken: token}, nil
}

func (s *CareService) ListSensors(ctx context.Context, p *auth.Principal, page models.Page) (*models.SensorList, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	sensors, total, err := s.Sensors.ListByOwner(ctx, userID, page.Skip, page.Limit)
	if err != nil {
		return nil, err
	}
	return &models.SensorList{Sensors: sensors, Total: total, Skip: page.Skip, Limit: page.Limit}, nil
}

func (s *CareService) GetSensor(ctx context.Context, p *auth.Principal, deviceID string) (*models.Sensor, error) {
	return s.Guard.Sensor(ctx, p, deviceID)
}

// UpdateSensor applies a partial update. The token is not touched.
func (s *CareService) UpdateSensor(ctx context.Context, p *auth.Principal, deviceID string, in *models.SensorUpdate) (*models.Sensor, error) {
	sensor, err := s.Guard.Sensor(ctx, p, deviceID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	in.Apply(sensor, now)
	sensor.UpdatedAt = now
	if err := s.Sensors.Update(ctx, p.UserID, sensor); err != nil {
		return nil, err
	}
	return sensor, nil
}

// DeleteSensor removes the device and its readings, revoking its token.
func (s *CareService) DeleteSensor(ctx context.Context, p *auth.Principal, deviceID string) error {
	userID, err := owner(p)
	if err != nil {
		return err
	}
	return s.Cleanup.DeleteSensor(ctx, userID, deviceID)
}

// SubmitReading stores a reading pushed by an authenticated device and
// marks the device online.
func (s *CareService) SubmitReading(ctx context.Context, p *auth.Principal, in *models.ReadingSubmit) (*models.Reading, error) {
	if p == nil || p.Kind != auth.KindDevice || p.SensorID == "" {
		return nil, errors.NewInvalidDeviceError(nil)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	reading := in.Reading(nuts.NID("rdg", 12), p.SensorID, s.now())
	if _, err := s.Sensors.RecordReading(ctx, reading); err != nil {
		return nil, err
	}
	return reading, nil
}

func (s *CareService) ListReadings(ctx context.Context, p *auth.Principal, deviceID string, q models.ReadingQuery) (*models.ReadingList, error) {
	sensor, err := s.Guard.Sensor(ctx, p, deviceID)
	if err != nil {
		return nil, err
	}
	readings, total, err := s.Sensors.ListReadings(ctx, sensor.ID, q)
	if err != nil {
		return nil, err
	}
	return &models.ReadingList{Readings: readings, Total: total, Skip: q.Skip, Limit: q.Limit}, nil
}

func (s *CareService) LatestReading(ctx context.Context, p *auth.Principal, deviceID string) (*models.Reading, error) {
	sensor, err := s.Guard.Sensor(ctx, p, deviceID)
	if err != nil {
		return nil, err
	}
	return s.Sensors.LatestReading(ctx, sensor.ID)
}
