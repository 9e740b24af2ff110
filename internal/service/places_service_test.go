package service

import (
	"context"
	"testing"

	"places-proxy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPlacesClient is a mock implementation of the PlacesClient interface
type MockPlacesClient struct {
	mock.Mock
}

func (m *MockPlacesClient) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockPlacesClient) Autocomplete(ctx context.Context, input, sessionToken string) (*models.AutocompleteResponse, error) {
	args := m.Called(ctx, input, sessionToken)
	return args.Get(0).(*models.AutocompleteResponse), args.Error(1)
}

func (m *MockPlacesClient) Details(ctx context.Context, placeID, sessionToken string) (*models.DetailsResponse, error) {
	args := m.Called(ctx, placeID, sessionToken)
	return args.Get(0).(*models.DetailsResponse), args.Error(1)
}

func TestPlacesService_Autocomplete(t *testing.T) {
	okResp := &models.AutocompleteResponse{
		Status:      models.StatusOK,
		Predictions: []models.Prediction{{Description: "Pizza Hut Toronto", PlaceID: "abc123"}},
		HTTPStatus:  200,
	}

	tests := []struct {
		name        string
		query       string
		token       string
		configured  bool
		callClient  bool
		mockResp    *models.AutocompleteResponse
		mockError   error
		expected    *models.AutocompleteResponse
		expectedErr error
	}{
		{
			name:        "empty query",
			query:       "   ",
			configured:  true,
			expectedErr: ErrInvalidArgument,
		},
		{
			name:        "missing credential",
			query:       "Pizza Hut",
			configured:  false,
			expectedErr: ErrMissingCredential,
		},
		{
			name:       "successful autocomplete",
			query:      "  Pizza Hut ",
			token:      " tok ",
			configured: true,
			callClient: true,
			mockResp:   okResp,
			expected:   okResp,
		},
		{
			name:       "upstream failure",
			query:      "Pizza Hut",
			token:      "tok",
			configured: true,
			callClient: true,
			mockResp:   nil,
			mockError:  assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockClient := new(MockPlacesClient)
			service := NewPlacesService(mockClient)

			mockClient.On("Configured").Return(tt.configured).Maybe()
			if tt.callClient {
				mockClient.On("Autocomplete", mock.Anything, "Pizza Hut", "tok").Return(tt.mockResp, tt.mockError)
			}

			// Execute
			result, err := service.Autocomplete(context.Background(), tt.query, tt.token)

			// Assert
			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.mockError != nil:
				assert.ErrorIs(t, err, tt.mockError)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockClient.AssertExpectations(t)
		})
	}
}

func TestPlacesService_Details(t *testing.T) {
	okResp := &models.DetailsResponse{
		Status: models.StatusOK,
		Result: &models.PlaceResult{Geometry: &models.Geometry{Location: &models.LatLng{Lat: 43.65, Lng: -79.38}}},
	}

	tests := []struct {
		name        string
		placeID     string
		configured  bool
		callClient  bool
		mockResp    *models.DetailsResponse
		mockError   error
		expectedErr error
	}{
		{name: "empty place id", placeID: "", configured: true, expectedErr: ErrInvalidArgument},
		{name: "missing credential", placeID: "abc123", configured: false, expectedErr: ErrMissingCredential},
		{name: "successful details", placeID: "abc123", configured: true, callClient: true, mockResp: okResp},
		{name: "upstream failure", placeID: "abc123", configured: true, callClient: true, mockError: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockPlacesClient)
			service := NewPlacesService(mockClient)

			mockClient.On("Configured").Return(tt.configured).Maybe()
			if tt.callClient {
				mockClient.On("Details", mock.Anything, "abc123", "").Return(tt.mockResp, tt.mockError)
			}

			result, err := service.Details(context.Background(), tt.placeID, "")

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.mockError != nil:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
				assert.Equal(t, okResp, result)
			}

			mockClient.AssertExpectations(t)
		})
	}
}
