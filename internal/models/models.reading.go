// FilePath: internal/models/models.reading.go
package models

import (
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
)

// Reading is one immutable sample pushed by a sensor.
type Reading struct {
	ID                 string    `json:"id" db:"id"`
	SensorID           string    `json:"sensor_id" db:"sensor_id"`
	MoisturePercent    float64   `json:"moisture_percent" db:"moisture_percent"`
	TemperatureCelsius *float64  `json:"temperature_celsius" db:"temperature_celsius"`
	HumidityPercent    *float64  `json:"humidity_percent" db:"humidity_percent"`
	LightLux           *float64  `json:"light_lux" db:"light_lux"`
	BatteryLevel       *int      `json:"battery_level" db:"battery_level"`
	Timestamp          time.Time `json:"timestamp" db:"timestamp"`
}

// ReadingSubmit is the ingestion body sent by a device.
type ReadingSubmit struct {
	MoisturePercent    *float64 `json:"moisture_percent"`
	TemperatureCelsius *float64 `json:"temperature_celsius"`
	HumidityPercent    *float64 `json:"humidity_percent"`
	LightLux           *float64 `json:"light_lux"`
	BatteryLevel       *int     `json:"battery_level"`
}

func (in *ReadingSubmit) Validate() error {
	if in.MoisturePercent == nil {
		return errors.NewValidationError("moisture_percent is required", nil)
	}
	if err := percent("moisture_percent", *in.MoisturePercent); err != nil {
		return err
	}
	if in.TemperatureCelsius != nil {
		if err := between("temperature_celsius", *in.TemperatureCelsius, -50, 100); err != nil {
			return err
		}
	}
	if err := optionalPercent("humidity_percent", in.HumidityPercent); err != nil {
		return err
	}
	if in.LightLux != nil && *in.LightLux < 0 {
		return errors.NewValidationError("light_lux must be at least 0", nil)
	}
	return optionalIntPercent("battery_level", in.BatteryLevel)
}

// Reading builds the stored row for sensorID.
func (in *ReadingSubmit) Reading(id, sensorID string, at time.Time) *Reading {
	return &Reading{
		ID:                 id,
		SensorID:           sensorID,
		MoisturePercent:    *in.MoisturePercent,
		TemperatureCelsius: in.TemperatureCelsius,
		HumidityPercent:    in.HumidityPercent,
		LightLux:           in.LightLux,
		BatteryLevel:       in.BatteryLevel,
		Timestamp:          at,
	}
}

// ReadingQuery pages readings newest first. Since is set when the caller
// asked for a window in hours.
type ReadingQuery struct {
	Skip  int
	Limit int
	Since *time.Time
}

type ReadingList struct {
	Readings []*Reading `json:"readings"`
	Total    int64      `json:"total"`
	Skip     int        `json:"skip"`
	Limit    int        `json:"limit"`
}
