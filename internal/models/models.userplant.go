// FilePath: internal/models/models.userplant.go
package models

import (
	"strings"
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
)

type PotSize string

const (
	PotSmall  PotSize = "small"
	PotMedium PotSize = "medium"
	PotLarge  PotSize = "large"
	PotXLarge PotSize = "xlarge"
)

func (s PotSize) valid() bool {
	switch s {
	case PotSmall, PotMedium, PotLarge, PotXLarge:
		return true
	}
	return false
}

type PotMaterial string

const (
	PotTerracotta    PotMaterial = "terracotta"
	PotPlastic       PotMaterial = "plastic"
	PotCeramicGlazed PotMaterial = "ceramic_glazed"
	PotFabric        PotMaterial = "fabric"
	PotOther         PotMaterial = "other"
)

func (m PotMaterial) valid() bool {
	switch m {
	case PotTerracotta, PotPlastic, PotCeramicGlazed, PotFabric, PotOther:
		return true
	}
	return false
}

// UserPlant is a plant a user owns. It is the root every device, watering
// event and alert hangs from.
type UserPlant struct {
	ID                   string      `json:"id" db:"id"`
	UserID               string      `json:"user_id" db:"user_id"`
	SpeciesID            string      `json:"species_id" db:"species_id"`
	Nickname             *string     `json:"nickname" db:"nickname"`
	Location             *string     `json:"location" db:"location"`
	PotSize              PotSize     `json:"pot_size" db:"pot_size"`
	PotMaterial          PotMaterial `json:"pot_material" db:"pot_material"`
	Notes                *string     `json:"notes" db:"notes"`
	IsActive             bool        `json:"is_active" db:"is_active"`
	LastWatered          *time.Time  `json:"last_watered" db:"last_watered"`
	CustomMoistureTarget *int        `json:"custom_moisture_target" db:"custom_moisture_target"`
	CustomMoistureMin    *int        `json:"custom_moisture_min" db:"custom_moisture_min"`
	AutoWateringEnabled  bool        `json:"auto_watering_enabled" db:"auto_watering_enabled"`
	CreatedAt            time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at" db:"updated_at"`
}

// UserPlantCreate is the payload for adding a plant to a user's collection.
type UserPlantCreate struct {
	SpeciesID            string      `json:"species_id"`
	Nickname             *string     `json:"nickname"`
	Location             *string     `json:"location"`
	PotSize              PotSize     `json:"pot_size"`
	PotMaterial          PotMaterial `json:"pot_material"`
	Notes                *string     `json:"notes"`
	CustomMoistureTarget *int        `json:"custom_moisture_target"`
	CustomMoistureMin    *int        `json:"custom_moisture_min"`
	AutoWateringEnabled  *bool       `json:"auto_watering_enabled"`
}

// Validate fills defaults and checks enums and moisture overrides.
func (in *UserPlantCreate) Validate() error {
	in.SpeciesID = strings.TrimSpace(in.SpeciesID)
	if in.SpeciesID == "" {
		return errors.NewValidationError("species_id is required", nil)
	}
	if in.PotSize == "" {
		in.PotSize = PotMedium
	}
	if in.PotMaterial == "" {
		in.PotMaterial = PotPlastic
	}
	return validatePlantFields(&in.PotSize, &in.PotMaterial, in.CustomMoistureTarget, in.CustomMoistureMin)
}

// UserPlantUpdate carries a partial update. Nil fields are left alone.
type UserPlantUpdate struct {
	Nickname             *string      `json:"nickname"`
	Location             *string      `json:"location"`
	PotSize              *PotSize     `json:"pot_size"`
	PotMaterial          *PotMaterial `json:"pot_material"`
	Notes                *string      `json:"notes"`
	IsActive             *bool        `json:"is_active"`
	CustomMoistureTarget *int         `json:"custom_moisture_target"`
	CustomMoistureMin    *int         `json:"custom_moisture_min"`
	AutoWateringEnabled  *bool        `json:"auto_watering_enabled"`
}

func (in *UserPlantUpdate) Validate() error {
	return validatePlantFields(in.PotSize, in.PotMaterial, in.CustomMoistureTarget, in.CustomMoistureMin)
}

// Apply copies the set fields onto p.
func (in *UserPlantUpdate) Apply(p *UserPlant) {
	if in.Nickname != nil {
		p.Nickname = in.Nickname
	}
	if in.Location != nil {
		p.Location = in.Location
	}
	if in.PotSize != nil {
		p.PotSize = *in.PotSize
	}
	if in.PotMaterial != nil {
		p.PotMaterial = *in.PotMaterial
	}
	if in.Notes != nil {
		p.Notes = in.Notes
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.CustomMoistureTarget != nil {
		p.CustomMoistureTarget = in.CustomMoistureTarget
	}
	if in.CustomMoistureMin != nil {
		p.CustomMoistureMin = in.CustomMoistureMin
	}
	if in.AutoWateringEnabled != nil {
		p.AutoWateringEnabled = *in.AutoWateringEnabled
	}
}

func validatePlantFields(size *PotSize, material *PotMaterial, target, min *int) error {
	if size != nil && !size.valid() {
		return errors.NewValidationError("pot_size must be one of small, medium, large, xlarge", nil)
	}
	if material != nil && !material.valid() {
		return errors.NewValidationError("pot_material must be one of terracotta, plastic, ceramic_glazed, fabric, other", nil)
	}
	if err := optionalIntPercent("custom_moisture_target", target); err != nil {
		return err
	}
	return optionalIntPercent("custom_moisture_min", min)
}

type UserPlantList struct {
	Plants []*UserPlant `json:"plants"`
	Total  int64        `json:"total"`
	Skip   int          `json:"skip"`
	Limit  int          `json:"limit"`
}
