// FilePath: internal/repository/postgres/postgres.catalog.go
package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/ikigain/ForestOS/internal/database"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

type CatalogRepo struct {
	PostgresBaseRepo
}

func NewCatalogRepository(db database.DB) *CatalogRepo {
	return &CatalogRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
}

// careLevelClauses mirror models.Plant.MatchesCareLevel.
var careLevelClauses = map[models.CareLevel]string{
	models.CareEasy:      `light_level = 'low' AND water_frequency_days_max >= 10`,
	models.CareModerate:  `light_level IN ('medium', 'bright_indirect') AND water_frequency_days_max BETWEEN 5 AND 10`,
	models.CareDifficult: `light_level = 'bright_direct' OR water_frequency_days_max < 5`,
}

func (r *CatalogRepo) Create(ctx context.Context, plant *models.Plant) error {
	query := `
		INSERT INTO plants_catalog (
			id, species_id, common_names, scientific_name, family,
			water_frequency_days_min, water_frequency_days_max,
			soil_moisture_target_pct, soil_moisture_min_pct, drainage_required,
			light_level, min_lux, optimal_lux_min, optimal_lux_max,
			temp_celsius_min, temp_celsius_optimal_min, temp_celsius_optimal_max, temp_celsius_max,
			humidity_pct_min, humidity_pct_optimal_min, humidity_pct_optimal_max,
			growth_rate, toxicity_pets, toxicity_humans, health_indicators,
			description, image_url, created_at, updated_at
		) VALUES (
			:id, :species_id, :common_names, :scientific_name, :family,
			:water_frequency_days_min, :water_frequency_days_max,
			:soil_moisture_target_pct, :soil_moisture_min_pct, :drainage_required,
			:light_level, :min_lux, :optimal_lux_min, :optimal_lux_max,
			:temp_celsius_min, :temp_celsius_optimal_min, :temp_celsius_optimal_max, :temp_celsius_max,
			:humidity_pct_min, :humidity_pct_optimal_min, :humidity_pct_optimal_max,
			:growth_rate, :toxicity_pets, :toxicity_humans, :health_indicators,
			:description, :image_url, :created_at, :updated_at
		)`

	if _, err := r.db.GetDB().NamedExecContext(ctx, query, plant); err != nil {
		return mapWriteError(err, "failed to create plant species", "species_id already exists", "plant species not found")
	}
	return nil
}

func (r *CatalogRepo) Get(ctx context.Context, speciesID string) (*models.Plant, error) {
	plant := &models.Plant{}
	err := r.db.GetDB().GetContext(ctx, plant, `SELECT * FROM plants_catalog WHERE species_id = $1`, speciesID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("plant species not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get plant species", err)
	}
	return plant, nil
}

func (r *CatalogRepo) List(ctx context.Context, filters models.PlantFilters, skip, limit int) ([]*models.Plant, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if filters.LightLevel != "" {
		args = append(args, filters.LightLevel)
		where += fmt.Sprintf(` AND light_level = $%d`, len(args))
	}
	if filters.GrowthRate != "" {
		args = append(args, filters.GrowthRate)
		where += fmt.Sprintf(` AND growth_rate = $%d`, len(args))
	}

	var total int64
	if err := r.db.GetDB().GetContext(ctx, &total, `SELECT COUNT(*) FROM plants_catalog`+where, args...); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to count plant species", err)
	}

	query := `SELECT * FROM plants_catalog` + where +
		fmt.Sprintf(` ORDER BY scientific_name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, skip)

	plants := []*models.Plant{}
	if err := r.db.GetDB().SelectContext(ctx, &plants, query, args...); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to list plant species", err)
	}
	return plants, total, nil
}

func (r *CatalogRepo) Search(ctx context.Context, q string, limit int) ([]*models.Plant, error) {
	query := `
		SELECT * FROM plants_catalog
		WHERE scientific_name ILIKE '%' || $1 || '%'
		   OR common_names::text ILIKE '%' || $1 || '%'
		ORDER BY scientific_name
		LIMIT $2`

	plants := []*models.Plant{}
	if err := r.db.GetDB().SelectContext(ctx, &plants, query, q, limit); err != nil {
		return nil, errors.NewDatabaseError("failed to search plant species", err)
	}
	return plants, nil
}

func (r *CatalogRepo) ListByCareLevel(ctx context.Context, level models.CareLevel, limit int) ([]*models.Plant, error) {
	clause, ok := careLevelClauses[level]
	if !ok {
		return nil, errors.NewValidationError("unknown care level", nil)
	}
	query := `SELECT * FROM plants_catalog WHERE (` + clause + `) ORDER BY scientific_name LIMIT $1`

	plants := []*models.Plant{}
	if err := r.db.GetDB().SelectContext(ctx, &plants, query, limit); err != nil {
		return nil, errors.NewDatabaseError("failed to list plant species by care level", err)
	}
	return plants, nil
}
