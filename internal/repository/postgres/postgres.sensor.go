// FilePath: internal/repository/postgres/postgres.sensor.go
package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/ikigain/ForestOS/internal/database"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
	"github.com/jmoiron/sqlx"
)

type SensorRepo struct {
	PostgresBaseRepo
}

func NewSensorRepository(db database.DB) *SensorRepo {
	return &SensorRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
}

func (r *SensorRepo) Create(ctx context.Context, sensor *models.Sensor) error {
	query := `
		INSERT INTO sensors (
			id, device_id, user_plant_id, auth_token, hardware_version, firmware_version,
			is_online, battery_level, last_seen, moisture_dry_value, moisture_wet_value,
			created_at, updated_at
		) VALUES (
			:id, :device_id, :user_plant_id, :auth_token, :hardware_version, :firmware_version,
			:is_online, :battery_level, :last_seen, :moisture_dry_value, :moisture_wet_value,
			:created_at, :updated_at
		)`

	if _, err := r.db.GetDB().NamedExecContext(ctx, query, sensor); err != nil {
		return mapWriteError(err, "failed to create sensor", "device_id already registered", "plant not found")
	}
	return nil
}

func (r *SensorRepo) GetByDeviceID(ctx context.Context, deviceID string) (*models.Sensor, error) {
	return r.getOne(ctx, `SELECT * FROM sensors WHERE device_id = $1`, deviceID)
}

func (r *SensorRepo) GetOwned(ctx context.Context, userID, deviceID string) (*models.Sensor, error) {
	query := `
		SELECT s.* FROM sensors s
		JOIN user_plants p ON p.id = s.user_plant_id
		WHERE s.device_id = $1 AND p.user_id = $2`
	return r.getOne(ctx, query, deviceID, userID)
}

func (r *SensorRepo) getOne(ctx context.Context, query string, args ...interface{}) (*models.Sensor, error) {
	sensor := &models.Sensor{}
	err := r.db.GetDB().GetContext(ctx, sensor, query, args...)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("sensor not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get sensor", err)
	}
	return sensor, nil
}

func (r *SensorRepo) ListByOwner(ctx context.Context, userID string, skip, limit int) ([]*models.Sensor, int64, error) {
	var total int64
	countQuery := `
		SELECT COUNT(*) FROM sensors s
		JOIN user_plants p ON p.id = s.user_plant_id
		WHERE p.user_id = $1`
	if err := r.db.GetDB().GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to count sensors", err)
	}

	query := `
		SELECT s.* FROM sensors s
		JOIN user_plants p ON p.id = s.user_plant_id
		WHERE p.user_id = $1
		ORDER BY s.created_at DESC, s.id
		LIMIT $2 OFFSET $3`
	sensors := []*models.Sensor{}
	if err := r.db.GetDB().SelectContext(ctx, &sensors, query, userID, limit, skip); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to list sensors", err)
	}
	return sensors, total, nil
}

func (r *SensorRepo) Update(ctx context.Context, userID string, sensor *models.Sensor) error {
	query := `
		UPDATE sensors s SET
			firmware_version = $1,
			is_online = $2,
			battery_level = $3,
			last_seen = $4,
			moisture_dry_value = $5,
			moisture_wet_value = $6,
			updated_at = $7
		FROM user_plants p
		WHERE p.id = s.user_plant_id AND s.id = $8 AND p.user_id = $9`

	result, err := r.db.GetDB().ExecContext(ctx, query,
		sensor.FirmwareVersion, sensor.IsOnline, sensor.BatteryLevel, sensor.LastSeen,
		sensor.MoistureDryValue, sensor.MoistureWetValue, sensor.UpdatedAt,
		sensor.ID, userID,
	)
	if err != nil {
		return errors.NewDatabaseError("failed to update sensor", err)
	}
	return expectOne(result, "sensor")
}

// DeleteOwned removes the sensor and, through the cascade, its readings.
// It is the only way to revoke a device token.
func (r *SensorRepo) DeleteOwned(ctx context.Context, userID, deviceID string) error {
	query := `
		DELETE FROM sensors s
		USING user_plants p
		WHERE p.id = s.user_plant_id AND s.device_id = $1 AND p.user_id = $2`

	result, err := r.db.GetDB().ExecContext(ctx, query, deviceID, userID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete sensor", err)
	}
	return expectOne(result, "sensor")
}

func (r *SensorRepo) RecordReading(ctx context.Context, reading *models.Reading) (*models.Sensor, error) {
	sensor := &models.Sensor{}
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		touch := `
			UPDATE sensors SET
				is_online = TRUE,
				last_seen = $1,
				battery_level = COALESCE($2, battery_level),
				updated_at = $1
			WHERE id = $3
			RETURNING *`
		if err := tx.GetContext(ctx, sensor, touch, reading.Timestamp, reading.BatteryLevel, reading.SensorID); err != nil {
			if stderrors.Is(err, sql.ErrNoRows) {
				return errors.NewNotFoundError("sensor not found", err)
			}
			return errors.NewDatabaseError("failed to update sensor liveness", err)
		}

		insert := `
			INSERT INTO sensor_readings (
				id, sensor_id, moisture_percent, temperature_celsius,
				humidity_percent, light_lux, battery_level, timestamp
			) VALUES (
				:id, :sensor_id, :moisture_percent, :temperature_celsius,
				:humidity_percent, :light_lux, :battery_level, :timestamp
			)`
		if _, err := tx.NamedExecContext(ctx, insert, reading); err != nil {
			return mapWriteError(err, "failed to insert reading", "reading already exists", "sensor not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sensor, nil
}

func (r *SensorRepo) ListReadings(ctx context.Context, sensorID string, q models.ReadingQuery) ([]*models.Reading, int64, error) {
	where := ` WHERE sensor_id = $1`
	args := []interface{}{sensorID}
	if q.Since != nil {
		where += ` AND timestamp >= $2`
		args = append(args, *q.Since)
	}

	var total int64
	if err := r.db.GetDB().GetContext(ctx, &total, `SELECT COUNT(*) FROM sensor_readings`+where, args...); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to count readings", err)
	}

	query := `SELECT * FROM sensor_readings` + where +
		fmt.Sprintf(` ORDER BY timestamp DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Skip)

	readings := []*models.Reading{}
	if err := r.db.GetDB().SelectContext(ctx, &readings, query, args...); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to list readings", err)
	}
	return readings, total, nil
}

func (r *SensorRepo) LatestReading(ctx context.Context, sensorID string) (*models.Reading, error) {
	reading := &models.Reading{}
	query := `SELECT * FROM sensor_readings WHERE sensor_id = $1 ORDER BY timestamp DESC LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, reading, query, sensorID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("no readings found for this sensor", err)
		}
		return nil, errors.NewDatabaseError("failed to get latest reading", err)
	}
	return reading, nil
}
