// FilePath: internal/models/models.sensor.go
package models

import (
	"strings"
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
)

// Sensor is a soil probe attached to one user plant. AuthToken is the
// device credential and never leaves the service after registration.
type Sensor struct {
	ID               string     `json:"id" db:"id"`
	DeviceID         string     `json:"device_id" db:"device_id"`
	UserPlantID      string     `json:"user_plant_id" db:"user_plant_id"`
	AuthToken        string     `json:"-" db:"auth_token"`
	HardwareVersion  *string    `json:"hardware_version" db:"hardware_version"`
	FirmwareVersion  *string    `json:"firmware_version" db:"firmware_version"`
	IsOnline         bool       `json:"is_online" db:"is_online"`
	BatteryLevel     *int       `json:"battery_level" db:"battery_level"`
	LastSeen         *time.Time `json:"last_seen" db:"last_seen"`
	MoistureDryValue *int       `json:"moisture_dry_value" db:"moisture_dry_value"`
	MoistureWetValue *int       `json:"moisture_wet_value" db:"moisture_wet_value"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// RegisteredSensor is the registration response, the only place the
// device token is ever rendered.
type RegisteredSensor struct {
	*Sensor
	AuthToken string `json:"auth_token"`
}

type SensorCreate struct {
	DeviceID         string  `json:"device_id"`
	UserPlantID      string  `json:"user_plant_id"`
	HardwareVersion  *string `json:"hardware_version"`
	FirmwareVersion  *string `json:"firmware_version"`
	MoistureDryValue *int    `json:"moisture_dry_value"`
	MoistureWetValue *int    `json:"moisture_wet_value"`
}

func (in *SensorCreate) Validate() error {
	in.DeviceID = strings.TrimSpace(in.DeviceID)
	if in.DeviceID == "" {
		return errors.NewValidationError("device_id is required", nil)
	}
	if len(in.DeviceID) > 100 {
		return errors.NewValidationError("device_id must be at most 100 characters", nil)
	}
	if strings.TrimSpace(in.UserPlantID) == "" {
		return errors.NewValidationError("user_plant_id is required", nil)
	}
	return nil
}

// SensorUpdate is a partial update. The device token is not updatable.
type SensorUpdate struct {
	FirmwareVersion  *string `json:"firmware_version"`
	IsOnline         *bool   `json:"is_online"`
	BatteryLevel     *int    `json:"battery_level"`
	MoistureDryValue *int    `json:"moisture_dry_value"`
	MoistureWetValue *int    `json:"moisture_wet_value"`
}

func (in *SensorUpdate) Validate() error {
	return optionalIntPercent("battery_level", in.BatteryLevel)
}

// Apply copies the set fields onto s. A change to is_online refreshes last_seen.
func (in *SensorUpdate) Apply(s *Sensor, now time.Time) {
	if in.FirmwareVersion != nil {
		s.FirmwareVersion = in.FirmwareVersion
	}
	if in.IsOnline != nil {
		s.IsOnline = *in.IsOnline
		s.LastSeen = &now
	}
	if in.BatteryLevel != nil {
		s.BatteryLevel = in.BatteryLevel
	}
	if in.MoistureDryValue != nil {
		s.MoistureDryValue = in.MoistureDryValue
	}
	if in.MoistureWetValue != nil {
		s.MoistureWetValue = in.MoistureWetValue
	}
}

type SensorList struct {
	Sensors []*Sensor `json:"sensors"`
	Total   int64     `json:"total"`
	Skip    int       `json:"skip"`
	Limit   int       `json:"limit"`
}
