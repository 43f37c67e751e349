package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"homicide-report/models"
)

// PostgresWriter persists cleaned incidents to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS incidents (
			id         SERIAL PRIMARY KEY,
			source     VARCHAR(50) NOT NULL,
			name       TEXT        NOT NULL DEFAULT '',
			age        INTEGER     NOT NULL CHECK (age BETWEEN 1 AND 100),
			date       TEXT        NOT NULL DEFAULT '',
			address    TEXT        NOT NULL DEFAULT '',
			method     TEXT        NOT NULL DEFAULT '',
			cctv       VARCHAR(10) NOT NULL DEFAULT 'unknown',
			closed     VARCHAR(10) NOT NULL DEFAULT 'pending',
			url        TEXT        UNIQUE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_incidents_age    ON incidents(age);
		CREATE INDEX IF NOT EXISTS idx_incidents_method ON incidents(method);
		CREATE INDEX IF NOT EXISTS idx_incidents_closed ON incidents(closed);
	`)
	return err
}

// Clear deletes all existing incidents from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM incidents")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts ALL cleaned incidents, clearing old data first.
func (pw *PostgresWriter) Write(incidents []*models.Incident) error {
	if len(incidents) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(incidents); i += batchSize {
		end := i + batchSize
		if end > len(incidents) {
			end = len(incidents)
		}
		if err := pw.insertBatch(incidents[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Incident) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*9)

	for idx, inc := range batch {
		base := idx * 9
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		valueArgs = append(valueArgs,
			inc.Source, inc.Name, inc.Age, inc.Date, inc.Address,
			inc.Method, inc.CCTV, inc.Closed, inc.URL)
	}

	query := fmt.Sprintf(`
		INSERT INTO incidents (source, name, age, date, address, method, cctv, closed, url)
		VALUES %s
		ON CONFLICT (url) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored incidents — used by the analysis stage.
func (pw *PostgresWriter) FetchAll() ([]*models.Incident, error) {
	rows, err := pw.db.Query(`
		SELECT id, source, name, age, date, address, method, cctv, closed, url, created_at
		FROM incidents
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var incidents []*models.Incident
	for rows.Next() {
		inc := &models.Incident{}
		if err := rows.Scan(
			&inc.ID, &inc.Source, &inc.Name, &inc.Age, &inc.Date, &inc.Address,
			&inc.Method, &inc.CCTV, &inc.Closed, &inc.URL, &inc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		incidents = append(incidents, inc)
	}
	return incidents, rows.Err()
}
