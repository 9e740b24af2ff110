package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"places-proxy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// IngestHandler accepts shared links
type IngestHandler struct {
	service IngestService
}

// Service interface for dependency injection
type IngestService interface {
	Submit(ctx context.Context, url string) error
}

func NewIngestHandler(svc IngestService) *IngestHandler {
	return &IngestHandler{service: svc}
}

type ingestRequest struct {
	URL any `json:"url"`
}

// Submit handles POST /api/ingest requests
//
//	@Summary	Submit a shared link
//	@Tags		ingest
//	@Accept		json
//	@Produce	json
//	@Success	202	{object}	map[string]bool
//	@Failure	400	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/api/ingest [post]
func (h *IngestHandler) Submit(c *gin.Context) {
	var req ingestRequest
	_ = c.ShouldBindJSON(&req)

	url, _ := req.URL.(string)
	if strings.TrimSpace(url) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url."})
		return
	}

	if err := h.service.Submit(c.Request.Context(), url); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url."})
		case c.Request.Context().Err() != nil:
			// The timeout middleware answers.
			log.Warn().Err(err).Msg("ingest: request context done")
		default:
			log.Error().Err(err).Msg("failed to accept link")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit link."})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"ok": true})
}

// Health handles GET /api/health requests
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]bool
//	@Router		/api/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
