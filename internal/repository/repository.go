package repository

import (
	"context"

	"places-proxy/internal/models"
)

// MarkerRepository persists saved markers. ListMarkers returns them in insertion order.
type MarkerRepository interface {
	ListMarkers(ctx context.Context) ([]models.Marker, error)
	CreateMarker(ctx context.Context, marker models.Marker) error
}
