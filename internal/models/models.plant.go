// FilePath: internal/models/models.plant.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
)

// JSON is a wrapper around map[string]interface{} for database storage
type JSON map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	raw, err := scanBytes(value)
	if err != nil || raw == nil {
		*j = nil
		return err
	}
	return json.Unmarshal(raw, j)
}

// StringList is a []string stored as a JSON array.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	raw, err := scanBytes(value)
	if err != nil || raw == nil {
		*l = nil
		return err
	}
	return json.Unmarshal(raw, l)
}

func scanBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported JSON column type %T", value)
	}
}

// Light levels used by the catalog.
const (
	LightLow            = "low"
	LightMedium         = "medium"
	LightBrightIndirect = "bright_indirect"
	LightBrightDirect   = "bright_direct"
)

// CareLevel buckets catalog species by how demanding they are.
type CareLevel string

const (
	CareEasy      CareLevel = "easy"
	CareModerate  CareLevel = "moderate"
	CareDifficult CareLevel = "difficult"
)

// ParseCareLevel accepts easy, moderate or difficult.
func ParseCareLevel(s string) (CareLevel, error) {
	switch l := CareLevel(s); l {
	case CareEasy, CareModerate, CareDifficult:
		return l, nil
	}
	return "", errors.NewValidationError("care_level must be one of easy, moderate, difficult", nil)
}

// Plant is a catalog species. Catalog rows are reference data and are not
// owned by any user.
type Plant struct {
	ID                    string     `json:"id" db:"id"`
	SpeciesID             string     `json:"species_id" db:"species_id"`
	CommonNames           StringList `json:"common_names" db:"common_names"`
	ScientificName        string     `json:"scientific_name" db:"scientific_name"`
	Family                *string    `json:"family" db:"family"`
	WaterFrequencyDaysMin *int       `json:"water_frequency_days_min" db:"water_frequency_days_min"`
	WaterFrequencyDaysMax *int       `json:"water_frequency_days_max" db:"water_frequency_days_max"`
	SoilMoistureTargetPct int        `json:"soil_moisture_target_pct" db:"soil_moisture_target_pct"`
	SoilMoistureMinPct    int        `json:"soil_moisture_min_pct" db:"soil_moisture_min_pct"`
	DrainageRequired      bool       `json:"drainage_required" db:"drainage_required"`
	LightLevel            *string    `json:"light_level" db:"light_level"`
	MinLux                *int       `json:"min_lux" db:"min_lux"`
	OptimalLuxMin         *int       `json:"optimal_lux_min" db:"optimal_lux_min"`
	OptimalLuxMax         *int       `json:"optimal_lux_max" db:"optimal_lux_max"`
	TempCelsiusMin        *int       `json:"temp_celsius_min" db:"temp_celsius_min"`
	TempCelsiusOptimalMin *int       `json:"temp_celsius_optimal_min" db:"temp_celsius_optimal_min"`
	TempCelsiusOptimalMax *int       `json:"temp_celsius_optimal_max" db:"temp_celsius_optimal_max"`
	TempCelsiusMax        *int       `json:"temp_celsius_max" db:"temp_celsius_max"`
	HumidityPctMin        *int       `json:"humidity_pct_min" db:"humidity_pct_min"`
	HumidityPctOptimalMin *int       `json:"humidity_pct_optimal_min" db:"humidity_pct_optimal_min"`
	HumidityPctOptimalMax *int       `json:"humidity_pct_optimal_max" db:"humidity_pct_optimal_max"`
	GrowthRate            *string    `json:"growth_rate" db:"growth_rate"`
	ToxicityPets          *string    `json:"toxicity_pets" db:"toxicity_pets"`
	ToxicityHumans        *string    `json:"toxicity_humans" db:"toxicity_humans"`
	HealthIndicators      JSON       `json:"health_indicators" db:"health_indicators"`
	Description           *string    `json:"description" db:"description"`
	ImageURL              *string    `json:"image_url" db:"image_url"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

// MatchesCareLevel applies the care level buckets to a single species.
// Postgres runs the same rules in SQL.
func (p *Plant) MatchesCareLevel(level CareLevel) bool {
	light := ""
	if p.LightLevel != nil {
		light = *p.LightLevel
	}
	switch level {
	case CareEasy:
		return light == LightLow && p.WaterFrequencyDaysMax != nil && *p.WaterFrequencyDaysMax >= 10
	case CareModerate:
		return (light == LightMedium || light == LightBrightIndirect) &&
			p.WaterFrequencyDaysMax != nil && *p.WaterFrequencyDaysMax >= 5 && *p.WaterFrequencyDaysMax <= 10
	case CareDifficult:
		return light == LightBrightDirect || (p.WaterFrequencyDaysMax != nil && *p.WaterFrequencyDaysMax < 5)
	}
	return false
}

// Validate checks a new catalog entry and fills moisture defaults.
func (p *Plant) Validate() error {
	p.SpeciesID = strings.TrimSpace(p.SpeciesID)
	if p.SpeciesID == "" {
		return errors.NewValidationError("species_id is required", nil)
	}
	if strings.TrimSpace(p.ScientificName) == "" {
		return errors.NewValidationError("scientific_name is required", nil)
	}
	if len(p.CommonNames) == 0 {
		return errors.NewValidationError("at least one common name is required", nil)
	}
	if p.SoilMoistureTargetPct == 0 {
		p.SoilMoistureTargetPct = 40
	}
	if p.SoilMoistureMinPct == 0 {
		p.SoilMoistureMinPct = 25
	}
	if err := percent("soil_moisture_target_pct", float64(p.SoilMoistureTargetPct)); err != nil {
		return err
	}
	if err := percent("soil_moisture_min_pct", float64(p.SoilMoistureMinPct)); err != nil {
		return err
	}
	if p.LightLevel != nil {
		switch *p.LightLevel {
		case LightLow, LightMedium, LightBrightIndirect, LightBrightDirect:
		default:
			return errors.NewValidationError("light_level must be one of low, medium, bright_indirect, bright_direct", nil)
		}
	}
	return nil
}

// PlantFilters narrows the catalog listing.
type PlantFilters struct {
	LightLevel string `schema:"light_level"`
	GrowthRate string `schema:"growth_rate"`
}

// PlantList is a page of catalog species.
type PlantList struct {
	Plants []*Plant `json:"plants"`
	Total  int64    `json:"total"`
	Skip   int      `json:"skip"`
	Limit  int      `json:"limit"`
}
