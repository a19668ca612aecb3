package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joeshaw/gtfsfeed/internal/store"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNoRuns is returned by LatestRun before any export has completed.
var ErrNoRuns = errors.New("no import runs recorded")

// DB is an export target for loaded feeds.
type DB struct {
	*sqlx.DB
}

// Run describes one completed export.
type Run struct {
	ID         string    `db:"run_id" json:"run_id"`
	Source     string    `db:"source" json:"source"`
	StartedAt  time.Time `db:"started_at" json:"started_at"`
	FinishedAt time.Time `db:"finished_at" json:"finished_at"`
	Records    int       `db:"record_count" json:"record_count"`
}

// Open connects to a database. driver is "sqlite3" or "pgx".
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case "sqlite3", "pgx":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == "sqlite3" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}
	return &DB{db}, nil
}

func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// Migrate creates the feed tables and the import_runs table if they do not
// exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, t := range tables {
		if _, err := db.ExecContext(ctx, t.createSQL()); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
	}
	if _, err := db.ExecContext(ctx, createImportRuns); err != nil {
		return fmt.Errorf("create table import_runs: %w", err)
	}
	return nil
}

// Export replaces the contents of every feed table with the records in st
// and records the run. Either everything is written or nothing is.
func (db *DB) Export(ctx context.Context, st *store.Store, source string) (string, error) {
	run := Run{
		ID:        uuid.NewString(),
		Source:    source,
		StartedAt: time.Now().UTC(),
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}

	for _, t := range tables {
		n, err := exportTable(ctx, tx, t, st)
		if err != nil {
			tx.Rollback()
			return "", fmt.Errorf("export %s: %w", t.Name, err)
		}
		run.Records += n
	}

	run.FinishedAt = time.Now().UTC()
	const q = `INSERT INTO import_runs (run_id, source, started_at, finished_at, record_count)
		   VALUES (:run_id, :source, :started_at, :finished_at, :record_count)`
	if _, err := tx.NamedExecContext(ctx, q, run); err != nil {
		tx.Rollback()
		return "", fmt.Errorf("record import run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	log.Printf("Exported %d records to database (run %s)", run.Records, run.ID)
	return run.ID, nil
}

func exportTable(ctx context.Context, tx *sqlx.Tx, t table, st *store.Store) (int, error) {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+t.Name); err != nil {
		return 0, err
	}

	rows := t.rows(st)
	if len(rows) == 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareNamedContext(ctx, t.insertSQL())
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

// LatestRun returns the most recently finished export.
func (db *DB) LatestRun(ctx context.Context) (*Run, error) {
	var run Run
	q := db.Rebind(`SELECT run_id, source, started_at, finished_at, record_count
		FROM import_runs ORDER BY finished_at DESC LIMIT 1`)
	if err := db.GetContext(ctx, &run, q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRuns
		}
		return nil, err
	}
	return &run, nil
}
