package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"places-proxy/internal/models"
	"places-proxy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PlacesHandler proxies autocomplete and details lookups to the places API
type PlacesHandler struct {
	service PlacesService
}

// Service interface for dependency injection
type PlacesService interface {
	Autocomplete(ctx context.Context, query, sessionToken string) (*models.AutocompleteResponse, error)
	Details(ctx context.Context, placeID, sessionToken string) (*models.DetailsResponse, error)
}

// NewPlacesHandler creates a new places handler
func NewPlacesHandler(svc PlacesService) *PlacesHandler {
	return &PlacesHandler{service: svc}
}

// Autocomplete handles GET /api/places requests
//
//	@Summary		Place autocomplete
//	@Description	Forwards the query to the places autocomplete API and returns its payload.
//	@Tags			places
//	@Produce		json
//	@Param			query			query		string	true	"Text typed by the user"
//	@Param			sessionToken	query		string	false	"Autocomplete session token"
//	@Success		200				{object}	models.AutocompleteResponse
//	@Failure		400				{object}	models.AutocompleteResponse
//	@Failure		500				{object}	models.AutocompleteResponse
//	@Router			/api/places [get]
func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		upstreamError(c, http.StatusBadRequest, models.StatusInvalidRequest, "Missing query parameter.")
		return
	}

	resp, err := h.service.Autocomplete(c.Request.Context(), query, c.Query("sessionToken"))
	if err != nil {
		h.fail(c, err, "Missing query parameter.")
		return
	}

	c.JSON(passThroughStatus(resp.HTTPStatus), resp)
}

// Details handles GET /api/place-details requests
//
//	@Summary		Place details
//	@Description	Resolves a place id to its location, name and address.
//	@Tags			places
//	@Produce		json
//	@Param			placeId			query		string	true	"Place identifier from autocomplete"
//	@Param			sessionToken	query		string	false	"Autocomplete session token"
//	@Success		200				{object}	models.DetailsResponse
//	@Failure		400				{object}	models.DetailsResponse
//	@Failure		500				{object}	models.DetailsResponse
//	@Router			/api/place-details [get]
func (h *PlacesHandler) Details(c *gin.Context) {
	placeID := strings.TrimSpace(c.Query("placeId"))
	if placeID == "" {
		upstreamError(c, http.StatusBadRequest, models.StatusInvalidRequest, "Missing placeId parameter.")
		return
	}

	resp, err := h.service.Details(c.Request.Context(), placeID, c.Query("sessionToken"))
	if err != nil {
		h.fail(c, err, "Missing placeId parameter.")
		return
	}

	c.JSON(passThroughStatus(resp.HTTPStatus), resp)
}

func (h *PlacesHandler) fail(c *gin.Context, err error, invalidMessage string) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		upstreamError(c, http.StatusBadRequest, models.StatusInvalidRequest, invalidMessage)
	case errors.Is(err, service.ErrMissingCredential):
		upstreamError(c, http.StatusInternalServerError, models.StatusServerError, "Missing GOOGLE_PLACES_API_KEY.")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("places upstream failed")
		upstreamError(c, http.StatusInternalServerError, models.StatusServerError, "Failed to reach Google Places.")
	}
}

// upstreamError answers in the places API error shape so clients parse one format.
func upstreamError(c *gin.Context, code int, status, message string) {
	c.JSON(code, gin.H{"status": status, "error_message": message})
}

// passThroughStatus keeps upstream failures visible and collapses every 2xx to 200.
func passThroughStatus(code int) int {
	if code == 0 || (code >= 200 && code < 300) {
		return http.StatusOK
	}
	return code
}
