// FilePath: internal/models/models.watering.go
package models

import (
	"fmt"
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
)

type WateringTrigger string

const (
	TriggerManual    WateringTrigger = "manual"
	TriggerAutomatic WateringTrigger = "automatic"
	TriggerScheduled WateringTrigger = "scheduled"
)

// ParseWateringTrigger defaults to manual.
func ParseWateringTrigger(s string) (WateringTrigger, error) {
	switch t := WateringTrigger(s); t {
	case "":
		return TriggerManual, nil
	case TriggerManual, TriggerAutomatic, TriggerScheduled:
		return t, nil
	}
	return "", errors.NewValidationError("trigger must be one of manual, automatic, scheduled", nil)
}

type WateringStatus string

const (
	StatusPending    WateringStatus = "pending"
	StatusInProgress WateringStatus = "in_progress"
	StatusCompleted  WateringStatus = "completed"
	StatusFailed     WateringStatus = "failed"
)

var wateringTransitions = map[WateringStatus][]WateringStatus{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusFailed},
	StatusInProgress: {StatusCompleted, StatusFailed},
}

// CanTransition reports whether an event may move from s to next.
// Setting the current status again is allowed for non-terminal states.
func (s WateringStatus) CanTransition(next WateringStatus) bool {
	allowed, ok := wateringTransitions[s]
	if !ok {
		return false
	}
	if next == s {
		return true
	}
	for _, a := range allowed {
		if a == next {
			return true
		}
	}
	return false
}

type WateringEvent struct {
	ID                string          `json:"id" db:"id"`
	UserPlantID       string          `json:"user_plant_id" db:"user_plant_id"`
	Trigger           WateringTrigger `json:"trigger" db:"trigger"`
	Status            WateringStatus  `json:"status" db:"status"`
	ScheduledTime     time.Time       `json:"scheduled_time" db:"scheduled_time"`
	CompletedTime     *time.Time      `json:"completed_time" db:"completed_time"`
	WaterML           *int            `json:"water_ml" db:"water_ml"`
	DurationSeconds   *int            `json:"duration_seconds" db:"duration_seconds"`
	MoistureBeforePct *float64        `json:"moisture_before_pct" db:"moisture_before_pct"`
	MoistureAfterPct  *float64        `json:"moisture_after_pct" db:"moisture_after_pct"`
	Notes             *string         `json:"notes" db:"notes"`
	ErrorMessage      *string         `json:"error_message" db:"error_message"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}

// WateringEventUpdate touches only status and completion fields.
type WateringEventUpdate struct {
	Status            *WateringStatus `json:"status"`
	CompletedTime     *time.Time      `json:"completed_time"`
	WaterML           *int            `json:"water_ml"`
	DurationSeconds   *int            `json:"duration_seconds"`
	MoistureBeforePct *float64        `json:"moisture_before_pct"`
	MoistureAfterPct  *float64        `json:"moisture_after_pct"`
	Notes             *string         `json:"notes"`
	ErrorMessage      *string         `json:"error_message"`
}

func (in *WateringEventUpdate) Validate() error {
	if in.WaterML != nil && *in.WaterML < 0 {
		return errors.NewValidationError("water_ml must be at least 0", nil)
	}
	if in.DurationSeconds != nil && *in.DurationSeconds < 0 {
		return errors.NewValidationError("duration_seconds must be at least 0", nil)
	}
	if err := optionalPercent("moisture_before_pct", in.MoistureBeforePct); err != nil {
		return err
	}
	return optionalPercent("moisture_after_pct", in.MoistureAfterPct)
}

// Apply moves e through a status transition and copies completion fields.
// Completing without an explicit time stamps now.
func (in *WateringEventUpdate) Apply(e *WateringEvent, now time.Time) error {
	if in.Status != nil && *in.Status != e.Status {
		if !e.Status.CanTransition(*in.Status) {
			return errors.NewValidationError(
				fmt.Sprintf("cannot move watering event from %s to %s", e.Status, *in.Status), nil)
		}
		e.Status = *in.Status
		if e.Status == StatusCompleted && in.CompletedTime == nil && e.CompletedTime == nil {
			e.CompletedTime = &now
		}
	}
	if in.CompletedTime != nil {
		e.CompletedTime = in.CompletedTime
	}
	if in.WaterML != nil {
		e.WaterML = in.WaterML
	}
	if in.DurationSeconds != nil {
		e.DurationSeconds = in.DurationSeconds
	}
	if in.MoistureBeforePct != nil {
		e.MoistureBeforePct = in.MoistureBeforePct
	}
	if in.MoistureAfterPct != nil {
		e.MoistureAfterPct = in.MoistureAfterPct
	}
	if in.Notes != nil {
		e.Notes = in.Notes
	}
	if in.ErrorMessage != nil {
		e.ErrorMessage = in.ErrorMessage
	}
	return nil
}

type WateringEventList struct {
	Events []*WateringEvent `json:"events"`
	Total  int64            `json:"total"`
	Skip   int              `json:"skip"`
	Limit  int              `json:"limit"`
}
