//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"places-proxy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func TestPostgresRepository_Markers(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))
	// Idempotent.
	require.NoError(t, repo.EnsureSchema(ctx))

	markers, err := repo.ListMarkers(ctx)
	require.NoError(t, err)
	assert.Empty(t, markers)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expected := []models.Marker{
		{ID: "m-1", Latitude: 43.65, Longitude: -79.38, Name: "Pizza Hut Toronto", CreatedAt: created},
		{ID: "m-2", Latitude: 35.681236, Longitude: 139.767125, Name: "", CreatedAt: created.Add(time.Minute)},
	}
	for _, m := range expected {
		require.NoError(t, repo.CreateMarker(ctx, m))
	}

	markers, err = repo.ListMarkers(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, markers)

	t.Run("duplicate id", func(t *testing.T) {
		err := repo.CreateMarker(ctx, expected[0])
		assert.Error(t, err)
	})

	t.Run("out of range rejected by check constraint", func(t *testing.T) {
		err := repo.CreateMarker(ctx, models.Marker{ID: "bad", Latitude: 91, Longitude: 0, CreatedAt: created})
		assert.Error(t, err)
	})
}
