package repository

import (
	"context"
	"fmt"

	"places-proxy/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements MarkerRepository for PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the markers table if it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	sql := `
	CREATE TABLE IF NOT EXISTS markers (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		latitude DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
		longitude DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
		name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := r.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("repository: failed to create markers table: %w", err)
	}
	return nil
}

// ListMarkers returns all markers ordered by insertion
func (r *PostgresRepository) ListMarkers(ctx context.Context) ([]models.Marker, error) {
	sql := `
		SELECT id, latitude, longitude, name, created_at
		FROM markers
		ORDER BY seq ASC
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute list query: %w", err)
	}
	defer rows.Close()

	markers := []models.Marker{}
	for rows.Next() {
		var m models.Marker
		if err := rows.Scan(&m.ID, &m.Latitude, &m.Longitude, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan marker: %w", err)
		}
		m.CreatedAt = m.CreatedAt.UTC()
		markers = append(markers, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return markers, nil
}

// CreateMarker inserts a single marker
func (r *PostgresRepository) CreateMarker(ctx context.Context, marker models.Marker) error {
	sql := `
		INSERT INTO markers (id, latitude, longitude, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, sql, marker.ID, marker.Latitude, marker.Longitude, marker.Name, marker.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository: failed to insert marker: %w", err)
	}
	return nil
}
