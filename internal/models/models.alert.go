// FilePath: internal/models/models.alert.go
package models

import (
	"strings"
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
)

type AlertType string

const (
	AlertLowMoisture     AlertType = "low_moisture"
	AlertHighMoisture    AlertType = "high_moisture"
	AlertLowTemperature  AlertType = "low_temperature"
	AlertHighTemperature AlertType = "high_temperature"
	AlertLowLight        AlertType = "low_light"
	AlertHighLight       AlertType = "high_light"
	AlertSensorOffline   AlertType = "sensor_offline"
	AlertLowBattery      AlertType = "low_battery"
	AlertWateringFailed  AlertType = "watering_failed"
	AlertGeneral         AlertType = "general"
)

func (t AlertType) valid() bool {
	switch t {
	case AlertLowMoisture, AlertHighMoisture, AlertLowTemperature, AlertHighTemperature,
		AlertLowLight, AlertHighLight, AlertSensorOffline, AlertLowBattery,
		AlertWateringFailed, AlertGeneral:
		return true
	}
	return false
}

type Alert struct {
	ID          string     `json:"id" db:"id"`
	UserPlantID string     `json:"user_plant_id" db:"user_plant_id"`
	AlertType   AlertType  `json:"alert_type" db:"alert_type"`
	Title       string     `json:"title" db:"title"`
	Message     string     `json:"message" db:"message"`
	IsRead      bool       `json:"is_read" db:"is_read"`
	ReadAt      *time.Time `json:"read_at" db:"read_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type AlertCreate struct {
	UserPlantID string    `json:"user_plant_id"`
	AlertType   AlertType `json:"alert_type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
}

func (in *AlertCreate) Validate() error {
	if strings.TrimSpace(in.UserPlantID) == "" {
		return errors.NewValidationError("user_plant_id is required", nil)
	}
	if in.AlertType == "" {
		in.AlertType = AlertGeneral
	}
	if !in.AlertType.valid() {
		return errors.NewValidationError("unknown alert_type", nil)
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || len(in.Title) > 200 {
		return errors.NewValidationError("title is required and must be at most 200 characters", nil)
	}
	if strings.TrimSpace(in.Message) == "" {
		return errors.NewValidationError("message is required", nil)
	}
	return nil
}

type AlertList struct {
	Alerts []*Alert `json:"alerts"`
	Total  int64    `json:"total"`
	Skip   int      `json:"skip"`
	Limit  int      `json:"limit"`
}

// MarkAllReadResult is returned by mark-all-read.
type MarkAllReadResult struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}
