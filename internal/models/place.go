package models

// Upstream status values used by the places API.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusServerError    = "SERVER_ERROR"
)

// Prediction is one autocomplete candidate as returned by the places API.
type Prediction struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

// AutocompleteResponse mirrors the places autocomplete payload.
// HTTPStatus is the upstream HTTP status and is never serialized.
type AutocompleteResponse struct {
	Status       string       `json:"status"`
	Predictions  []Prediction `json:"predictions,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
	HTTPStatus   int          `json:"-"`
}

// LatLng is a coordinate pair in the places API shape.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
}

type PlaceResult struct {
	Geometry         *Geometry `json:"geometry,omitempty"`
	Name             string    `json:"name,omitempty"`
	FormattedAddress string    `json:"formatted_address,omitempty"`
}

// DetailsResponse mirrors the places details payload.
type DetailsResponse struct {
	Status       string       `json:"status"`
	Result       *PlaceResult `json:"result,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
	HTTPStatus   int          `json:"-"`
}

// Location returns the result coordinates, or nil when the payload carries no geometry.
func (r *DetailsResponse) Location() *LatLng {
	if r == nil || r.Result == nil || r.Result.Geometry == nil {
		return nil
	}
	return r.Result.Geometry.Location
}

// Suggestion is an autocomplete entry offered to the user.
type Suggestion struct {
	Name    string `json:"name"`
	PlaceID string `json:"placeId"`
}

// ResolvedLocation is a selected suggestion turned into coordinates.
// Label is the label captured at selection time.
type ResolvedLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label"`
}
