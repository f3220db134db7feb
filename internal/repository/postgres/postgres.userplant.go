// FilePath: internal/repository/postgres/postgres.userplant.go
package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/ikigain/ForestOS/internal/database"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

type UserPlantRepo struct {
	PostgresBaseRepo
}

func NewUserPlantRepository(db database.DB) *UserPlantRepo {
	return &UserPlantRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
}

func (r *UserPlantRepo) Create(ctx context.Context, plant *models.UserPlant) error {
	query := `
		INSERT INTO user_plants (
			id, user_id, species_id, nickname, location, pot_size, pot_material,
			notes, is_active, last_watered, custom_moisture_target, custom_moisture_min,
			auto_watering_enabled, created_at, updated_at
		) VALUES (
			:id, :user_id, :species_id, :nickname, :location, :pot_size, :pot_material,
			:notes, :is_active, :last_watered, :custom_moisture_target, :custom_moisture_min,
			:auto_watering_enabled, :created_at, :updated_at
		)`

	if _, err := r.db.GetDB().NamedExecContext(ctx, query, plant); err != nil {
		return mapWriteError(err, "failed to create plant", "plant already exists", "plant species not found")
	}
	return nil
}

func (r *UserPlantRepo) GetOwned(ctx context.Context, userID, id string) (*models.UserPlant, error) {
	plant := &models.UserPlant{}
	query := `SELECT * FROM user_plants WHERE id = $1 AND user_id = $2`

	err := r.db.GetDB().GetContext(ctx, plant, query, id, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("plant not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get plant", err)
	}
	return plant, nil
}

func (r *UserPlantRepo) ListByOwner(ctx context.Context, userID string, skip, limit int) ([]*models.UserPlant, int64, error) {
	var total int64
	if err := r.db.GetDB().GetContext(ctx, &total, `SELECT COUNT(*) FROM user_plants WHERE user_id = $1`, userID); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to count plants", err)
	}

	plants := []*models.UserPlant{}
	query := `SELECT * FROM user_plants WHERE user_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	if err := r.db.GetDB().SelectContext(ctx, &plants, query, userID, limit, skip); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to list plants", err)
	}
	return plants, total, nil
}

func (r *UserPlantRepo) Update(ctx context.Context, userID string, plant *models.UserPlant) error {
	query := `
		UPDATE user_plants SET
			nickname = $1,
			location = $2,
			pot_size = $3,
			pot_material = $4,
			notes = $5,
			is_active = $6,
			custom_moisture_target = $7,
			custom_moisture_min = $8,
			auto_watering_enabled = $9,
			updated_at = $10
		WHERE id = $11 AND user_id = $12`

	result, err := r.db.GetDB().ExecContext(ctx, query,
		plant.Nickname, plant.Location, plant.PotSize, plant.PotMaterial, plant.Notes,
		plant.IsActive, plant.CustomMoistureTarget, plant.CustomMoistureMin,
		plant.AutoWateringEnabled, plant.UpdatedAt, plant.ID, userID,
	)
	if err != nil {
		return errors.NewDatabaseError("failed to update plant", err)
	}
	return expectOne(result, "plant")
}

func (r *UserPlantRepo) MarkWatered(ctx context.Context, userID, id string, at time.Time) (*models.UserPlant, error) {
	plant := &models.UserPlant{}
	query := `
		UPDATE user_plants SET last_watered = $1, updated_at = $1
		WHERE id = $2 AND user_id = $3
		RETURNING *`

	err := r.db.GetDB().GetContext(ctx, plant, query, at, id, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("plant not found", err)
		}
		return nil, errors.NewDatabaseError("failed to mark plant watered", err)
	}
	return plant, nil
}

// DeleteOwned removes the plant. Sensors, readings, watering events and
// alerts go with it through ON DELETE CASCADE.
func (r *UserPlantRepo) DeleteOwned(ctx context.Context, userID, id string) error {
	result, err := r.db.GetDB().ExecContext(ctx, `DELETE FROM user_plants WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete plant", err)
	}
	return expectOne(result, "plant")
}
