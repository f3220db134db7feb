// FilePath: internal/database/database.go
package database

import (
	"context"
	"fmt"

	"github.com/ikigain/ForestOS/internal/config"
	"github.com/ikigain/ForestOS/internal/database/migrations"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	nuts "github.com/vaudience/go-nuts"
)

// DB is the connection handle the postgres repositories share.
type DB interface {
	Close() error
	Ping(ctx context.Context) error
	GetDB() *sqlx.DB
}

// PostgresDB represents a PostgreSQL database connection
type PostgresDB struct {
	db *sqlx.DB
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg config.PostgresConfig) (*PostgresDB, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}

	nuts.L.Infof("[PostgresDB] Connected to %s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)
	return &PostgresDB{db: db}, nil
}

// Wrap adopts an existing sqlx handle. Tests use it with sqlmock.
func Wrap(db *sqlx.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (p *PostgresDB) Close() error {
	return p.db.Close()
}

func (p *PostgresDB) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgresDB) GetDB() *sqlx.DB {
	return p.db
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("error setting migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.GetDB().DB, "."); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, db.GetDB().DB)
	if err == nil {
		nuts.L.Infof("[PostgresDB] Schema at version %d", version)
	}
	return nil
}
