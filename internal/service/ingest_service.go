package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// IngestService accepts shared social links for later processing.
// Nothing downstream consumes them yet; acceptance is only logged.
type IngestService struct{}

func NewIngestService() *IngestService {
	return &IngestService{}
}

// Submit accepts a non-empty link.
func (s *IngestService) Submit(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("service: url cannot be empty: %w", ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info().Str("url", url).Msg("ingest: link accepted")
	return nil
}
