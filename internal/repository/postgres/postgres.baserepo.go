// FilePath: internal/repository/postgres/postgres.baserepo.go
package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/ikigain/ForestOS/internal/database"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type PostgresBaseRepo struct {
	db database.DB
}

// withTx runs fn inside a transaction. It rolls back on any error.
func (r *PostgresBaseRepo) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return errors.NewDatabaseError("failed to begin transaction", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("failed to commit transaction", err)
	}
	return nil
}

// mapWriteError turns constraint violations into client errors. A unique
// violation is a validation failure, a dangling foreign key means the parent
// vanished or was never visible.
func mapWriteError(err error, msg, duplicateMsg, missingMsg string) error {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return errors.NewValidationError(duplicateMsg, err)
		case pqForeignKeyViolation:
			return errors.NewNotFoundError(missingMsg, err)
		}
	}
	return errors.NewDatabaseError(msg, err)
}

// expectOne reports not found when an owned write matched nothing.
func expectOne(result sql.Result, what string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError(what+" not found", nil)
	}
	return nil
}
