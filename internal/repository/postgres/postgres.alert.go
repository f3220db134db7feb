// FilePath: internal/repository/postgres/postgres.alert.go
package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/ikigain/ForestOS/internal/database"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

type AlertRepo struct {
	PostgresBaseRepo
}

func NewAlertRepository(db database.DB) *AlertRepo {
	return &AlertRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
}

func (r *AlertRepo) Create(ctx context.Context, alert *models.Alert) error {
	query := `
		INSERT INTO alerts (
			id, user_plant_id, alert_type, title, message, is_read, read_at, created_at
		) VALUES (
			:id, :user_plant_id, :alert_type, :title, :message, :is_read, :read_at, :created_at
		)`

	if _, err := r.db.GetDB().NamedExecContext(ctx, query, alert); err != nil {
		return mapWriteError(err, "failed to create alert", "alert already exists", "plant not found")
	}
	return nil
}

func (r *AlertRepo) GetOwned(ctx context.Context, userID, id string) (*models.Alert, error) {
	alert := &models.Alert{}
	query := `
		SELECT a.* FROM alerts a
		JOIN user_plants p ON p.id = a.user_plant_id
		WHERE a.id = $1 AND p.user_id = $2`

	err := r.db.GetDB().GetContext(ctx, alert, query, id, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("alert not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get alert", err)
	}
	return alert, nil
}

func (r *AlertRepo) ListByOwner(ctx context.Context, userID string, filters models.AlertFilters, skip, limit int) ([]*models.Alert, int64, error) {
	where := `
		FROM alerts a
		JOIN user_plants p ON p.id = a.user_plant_id
		WHERE p.user_id = $1`
	args := []interface{}{userID}
	if filters.IsRead != nil {
		args = append(args, *filters.IsRead)
		where += fmt.Sprintf(` AND a.is_read = $%d`, len(args))
	}

	var total int64
	if err := r.db.GetDB().GetContext(ctx, &total, `SELECT COUNT(*)`+where, args...); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to count alerts", err)
	}

	query := `SELECT a.*` + where +
		fmt.Sprintf(` ORDER BY a.created_at DESC, a.id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, skip)

	alerts := []*models.Alert{}
	if err := r.db.GetDB().SelectContext(ctx, &alerts, query, args...); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to list alerts", err)
	}
	return alerts, total, nil
}

func (r *AlertRepo) MarkRead(ctx context.Context, userID, id string, at time.Time) (*models.Alert, error) {
	alert := &models.Alert{}
	query := `
		UPDATE alerts a SET is_read = TRUE, read_at = COALESCE(a.read_at, $1)
		FROM user_plants p
		WHERE p.id = a.user_plant_id AND a.id = $2 AND p.user_id = $3
		RETURNING a.*`

	err := r.db.GetDB().GetContext(ctx, alert, query, at, id, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("alert not found", err)
		}
		return nil, errors.NewDatabaseError("failed to mark alert read", err)
	}
	return alert, nil
}

func (r *AlertRepo) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	query := `
		UPDATE alerts a SET is_read = TRUE, read_at = $1
		FROM user_plants p
		WHERE p.id = a.user_plant_id AND p.user_id = $2 AND a.is_read = FALSE`

	result, err := r.db.GetDB().ExecContext(ctx, query, at, userID)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to mark alerts read", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}
	return count, nil
}

func (r *AlertRepo) DeleteOwned(ctx context.Context, userID, id string) error {
	query := `
		DELETE FROM alerts a
		USING user_plants p
		WHERE p.id = a.user_plant_id AND a.id = $1 AND p.user_id = $2`

	result, err := r.db.GetDB().ExecContext(ctx, query, id, userID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete alert", err)
	}
	return expectOne(result, "alert")
}
