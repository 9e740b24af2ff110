package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"places-proxy/internal/models"

	"github.com/google/uuid"
)

// MarkerService contains the business logic for saved markers
type MarkerService struct {
	repo MarkerRepository
	now  func() time.Time
}

// MarkerRepository interface for dependency injection
type MarkerRepository interface {
	ListMarkers(ctx context.Context) ([]models.Marker, error)
	CreateMarker(ctx context.Context, marker models.Marker) error
}

// NewMarkerService creates a new marker service
func NewMarkerService(repo MarkerRepository) *MarkerService {
	return &MarkerService{repo: repo, now: time.Now}
}

// List returns every saved marker, oldest first
func (s *MarkerService) List(ctx context.Context) ([]models.Marker, error) {
	markers, err := s.repo.ListMarkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list markers: %w", err)
	}
	return markers, nil
}

// Add validates the coordinates and stores a new marker
func (s *MarkerService) Add(ctx context.Context, lat, lng float64, name string) (*models.Marker, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return nil, fmt.Errorf("service: coordinates must be finite: %w", ErrInvalidArgument)
	}
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("service: invalid latitude %f: %w", lat, ErrOutOfRange)
	}
	if lng < -180 || lng > 180 {
		return nil, fmt.Errorf("service: invalid longitude %f: %w", lng, ErrOutOfRange)
	}

	marker := models.Marker{
		ID:        uuid.NewString(),
		Latitude:  lat,
		Longitude: lng,
		Name:      name,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.CreateMarker(ctx, marker); err != nil {
		return nil, fmt.Errorf("service: failed to save marker: %w", err)
	}

	return &marker, nil
}
