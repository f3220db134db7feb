// FilePath: internal/repository/postgres/postgres.watering.go
package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/ikigain/ForestOS/internal/database"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
	"github.com/jmoiron/sqlx"
)

type WateringRepo struct {
	PostgresBaseRepo
}

func NewWateringRepository(db database.DB) *WateringRepo {
	return &WateringRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
}

func (r *WateringRepo) Create(ctx context.Context, event *models.WateringEvent) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO watering_events (
				id, user_plant_id, trigger, status, scheduled_time, completed_time,
				water_ml, duration_seconds, moisture_before_pct, moisture_after_pct,
				notes, error_message, created_at
			) VALUES (
				:id, :user_plant_id, :trigger, :status, :scheduled_time, :completed_time,
				:water_ml, :duration_seconds, :moisture_before_pct, :moisture_after_pct,
				:notes, :error_message, :created_at
			)`
		if _, err := tx.NamedExecContext(ctx, query, event); err != nil {
			return mapWriteError(err, "failed to create watering event", "watering event already exists", "plant not found")
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE user_plants SET last_watered = $1, updated_at = $1 WHERE id = $2`,
			event.ScheduledTime, event.UserPlantID)
		if err != nil {
			return errors.NewDatabaseError("failed to update last watered", err)
		}
		return expectOne(result, "plant")
	})
}

func (r *WateringRepo) GetOwned(ctx context.Context, userID, id string) (*models.WateringEvent, error) {
	event := &models.WateringEvent{}
	query := `
		SELECT w.* FROM watering_events w
		JOIN user_plants p ON p.id = w.user_plant_id
		WHERE w.id = $1 AND p.user_id = $2`

	err := r.db.GetDB().GetContext(ctx, event, query, id, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("watering event not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get watering event", err)
	}
	return event, nil
}

func (r *WateringRepo) ListByPlant(ctx context.Context, plantID string, since time.Time, skip, limit int) ([]*models.WateringEvent, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM watering_events WHERE user_plant_id = $1 AND scheduled_time >= $2`
	if err := r.db.GetDB().GetContext(ctx, &total, countQuery, plantID, since); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to count watering events", err)
	}

	query := `
		SELECT * FROM watering_events
		WHERE user_plant_id = $1 AND scheduled_time >= $2
		ORDER BY scheduled_time DESC, id
		LIMIT $3 OFFSET $4`
	events := []*models.WateringEvent{}
	if err := r.db.GetDB().SelectContext(ctx, &events, query, plantID, since, limit, skip); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to list watering events", err)
	}
	return events, total, nil
}

func (r *WateringRepo) Update(ctx context.Context, userID string, event *models.WateringEvent) error {
	query := `
		UPDATE watering_events w SET
			status = $1,
			completed_time = $2,
			water_ml = $3,
			duration_seconds = $4,
			moisture_before_pct = $5,
			moisture_after_pct = $6,
			notes = $7,
			error_message = $8
		FROM user_plants p
		WHERE p.id = w.user_plant_id AND w.id = $9 AND p.user_id = $10`

	result, err := r.db.GetDB().ExecContext(ctx, query,
		event.Status, event.CompletedTime, event.WaterML, event.DurationSeconds,
		event.MoistureBeforePct, event.MoistureAfterPct, event.Notes, event.ErrorMessage,
		event.ID, userID,
	)
	if err != nil {
		return errors.NewDatabaseError("failed to update watering event", err)
	}
	return expectOne(result, "watering event")
}

func (r *WateringRepo) DeleteOwned(ctx context.Context, userID, id string) error {
	query := `
		DELETE FROM watering_events w
		USING user_plants p
		WHERE p.id = w.user_plant_id AND w.id = $1 AND p.user_id = $2`

	result, err := r.db.GetDB().ExecContext(ctx, query, id, userID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete watering event", err)
	}
	return expectOne(result, "watering event")
}
