package service

import (
	"context"
	"math"
	"testing"
	"time"

	"places-proxy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMarkerRepository is a mock implementation of the MarkerRepository interface
type MockMarkerRepository struct {
	mock.Mock
}

func (m *MockMarkerRepository) ListMarkers(ctx context.Context) ([]models.Marker, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Marker), args.Error(1)
}

func (m *MockMarkerRepository) CreateMarker(ctx context.Context, marker models.Marker) error {
	args := m.Called(ctx, marker)
	return args.Error(0)
}

func TestMarkerService_Add(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 9, 30, 0, 0, time.FixedZone("EDT", -4*3600))

	tests := []struct {
		name        string
		lat         float64
		lng         float64
		label       string
		callRepo    bool
		mockError   error
		expectedErr error
	}{
		{name: "latitude too high", lat: 90.5, lng: 0, expectedErr: ErrOutOfRange},
		{name: "latitude too low", lat: -91, lng: 0, expectedErr: ErrOutOfRange},
		{name: "longitude out of range", lat: 0, lng: 180.01, expectedErr: ErrOutOfRange},
		{name: "not a number", lat: math.NaN(), lng: 0, expectedErr: ErrInvalidArgument},
		{name: "boundary values accepted", lat: -90, lng: 180, label: "edge", callRepo: true},
		{name: "successful save", lat: 43.65, lng: -79.38, label: "Pizza Hut Toronto", callRepo: true},
		{name: "repository error", lat: 43.65, lng: -79.38, label: "x", callRepo: true, mockError: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMarkerRepository)
			service := NewMarkerService(mockRepo)
			service.now = func() time.Time { return fixed }

			if tt.callRepo {
				mockRepo.On("CreateMarker", mock.Anything, mock.MatchedBy(func(m models.Marker) bool {
					return m.ID != "" && m.Latitude == tt.lat && m.Longitude == tt.lng && m.Name == tt.label
				})).Return(tt.mockError)
			}

			marker, err := service.Add(context.Background(), tt.lat, tt.lng, tt.label)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.mockError != nil:
				assert.ErrorIs(t, err, tt.mockError)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.label, marker.Name)
				assert.Equal(t, fixed.UTC(), marker.CreatedAt)
				assert.Len(t, marker.ID, 36)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMarkerService_List(t *testing.T) {
	expected := []models.Marker{{ID: "a", Latitude: 1, Longitude: 2, Name: "A"}}

	mockRepo := new(MockMarkerRepository)
	mockRepo.On("ListMarkers", mock.Anything).Return(expected, nil).Once()
	mockRepo.On("ListMarkers", mock.Anything).Return([]models.Marker(nil), assert.AnError).Once()
	service := NewMarkerService(mockRepo)

	markers, err := service.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, markers)

	_, err = service.List(context.Background())
	assert.ErrorIs(t, err, assert.AnError)

	mockRepo.AssertExpectations(t)
}

func TestIngestService_Submit(t *testing.T) {
	service := NewIngestService()

	assert.ErrorIs(t, service.Submit(context.Background(), "  "), ErrInvalidArgument)
	assert.NoError(t, service.Submit(context.Background(), "https://www.tiktok.com/@user/video/1"))
}
