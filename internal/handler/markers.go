package handler

import (
	"context"
	"errors"
	"net/http"

	"places-proxy/internal/models"
	"places-proxy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const (
	msgCoordsNotNumbers = "Latitude and longitude must be numbers."
	msgCoordsOutOfRange = "Latitude or longitude out of range."
)

// MarkerHandler handles saved marker requests
type MarkerHandler struct {
	service MarkerService
}

// Service interface for dependency injection
type MarkerService interface {
	List(ctx context.Context) ([]models.Marker, error)
	Add(ctx context.Context, lat, lng float64, name string) (*models.Marker, error)
}

// NewMarkerHandler creates a new marker handler
func NewMarkerHandler(svc MarkerService) *MarkerHandler {
	return &MarkerHandler{service: svc}
}

// CreateMarkerRequest is the POST /api/markers body. Name accepts any JSON
// value; anything other than a string is stored as an empty name.
type CreateMarkerRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,latitude"`
	Longitude *float64 `json:"longitude" binding:"required,longitude"`
	Name      any      `json:"name"`
}

// List handles GET /api/markers requests
//
//	@Summary	List saved markers
//	@Tags		markers
//	@Produce	json
//	@Success	200	{object}	map[string][]models.Marker
//	@Failure	500	{object}	map[string]string
//	@Router		/api/markers [get]
func (h *MarkerHandler) List(c *gin.Context) {
	markers, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load markers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load markers."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"markers": markers})
}

// Create handles POST /api/markers requests
//
//	@Summary	Save a marker
//	@Tags		markers
//	@Accept		json
//	@Produce	json
//	@Param		marker	body		CreateMarkerRequest	true	"Marker to save"
//	@Success	201		{object}	map[string]models.Marker
//	@Failure	400		{object}	map[string]string
//	@Failure	500		{object}	map[string]string
//	@Router		/api/markers [post]
func (h *MarkerHandler) Create(c *gin.Context) {
	var req CreateMarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isRangeViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgCoordsOutOfRange})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msgCoordsNotNumbers})
		return
	}

	name, _ := req.Name.(string)

	marker, err := h.service.Add(c.Request.Context(), *req.Latitude, *req.Longitude, name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgCoordsOutOfRange})
		case errors.Is(err, service.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgCoordsNotNumbers})
		default:
			log.Error().Err(err).Msg("failed to save marker")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save marker."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"marker": marker})
}

// isRangeViolation reports whether binding failed only on the coordinate range validators.
func isRangeViolation(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() != "latitude" && fe.Tag() != "longitude" {
			return false
		}
	}
	return len(verrs) > 0
}
