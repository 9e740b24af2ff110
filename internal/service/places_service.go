package service

import (
	"context"
	"fmt"
	"strings"

	"places-proxy/internal/models"
)

// PlacesService forwards place lookups to the upstream API after basic validation
type PlacesService struct {
	client PlacesClient
}

// PlacesClient interface for dependency injection
type PlacesClient interface {
	Configured() bool
	Autocomplete(ctx context.Context, input, sessionToken string) (*models.AutocompleteResponse, error)
	Details(ctx context.Context, placeID, sessionToken string) (*models.DetailsResponse, error)
}

// NewPlacesService creates a new places service
func NewPlacesService(client PlacesClient) *PlacesService {
	return &PlacesService{client: client}
}

// Autocomplete returns upstream predictions for query, grouped under sessionToken when given
func (s *PlacesService) Autocomplete(ctx context.Context, query, sessionToken string) (*models.AutocompleteResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("service: query cannot be empty: %w", ErrInvalidArgument)
	}
	if !s.client.Configured() {
		return nil, fmt.Errorf("service: autocomplete: %w", ErrMissingCredential)
	}

	resp, err := s.client.Autocomplete(ctx, query, strings.TrimSpace(sessionToken))
	if err != nil {
		return nil, fmt.Errorf("service: failed to autocomplete: %w", err)
	}

	return resp, nil
}

// Details resolves a place id to its geometry and name
func (s *PlacesService) Details(ctx context.Context, placeID, sessionToken string) (*models.DetailsResponse, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, fmt.Errorf("service: placeId cannot be empty: %w", ErrInvalidArgument)
	}
	if !s.client.Configured() {
		return nil, fmt.Errorf("service: details: %w", ErrMissingCredential)
	}

	resp, err := s.client.Details(ctx, placeID, strings.TrimSpace(sessionToken))
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch place details: %w", err)
	}

	return resp, nil
}
