package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"places-proxy/internal/app"
	"places-proxy/internal/config"
	"places-proxy/internal/logger"

	"github.com/rs/zerolog/log"
)

type MarkerRecord struct {
	Name      string
	Latitude  float64
	Longitude float64
}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import (name,latitude,longitude)")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.LogLevel, cfg.Environment)

	log.Info().Str("file", *file).Msg("starting marker import")

	records, err := parseCSV(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}
	log.Info().Int("count", len(records)).Msg("parsed records")

	ctx := context.Background()
	a, err := app.NewMarkerService(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open marker store")
	}
	defer a.Shutdown()

	before, err := a.Markers.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot list markers")
	}

	for i, r := range records {
		if _, err := a.Markers.Add(ctx, r.Latitude, r.Longitude, r.Name); err != nil {
			log.Fatal().Err(err).Int("row", i+2).Msg("cannot insert marker")
		}
	}

	if err := verifyImport(ctx, a, len(before)+len(records)); err != nil {
		log.Fatal().Err(err).Msg("import verification failed")
	}

	log.Info().Int("count", len(records)).Msg("successfully imported markers")
}

func parseCSV(filePath string) ([]MarkerRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return readRecords(file)
}

func readRecords(r io.Reader) ([]MarkerRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []MarkerRecord
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 3 {
			return nil, fmt.Errorf("invalid record length: %d, expected at least 3 columns", len(record))
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude: %s", record[1])
		}

		lng, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude: %s", record[2])
		}

		records = append(records, MarkerRecord{
			Name:      strings.TrimSpace(record[0]),
			Latitude:  lat,
			Longitude: lng,
		})
	}

	return records, nil
}

func verifyImport(ctx context.Context, a *app.App, expectedCount int) error {
	markers, err := a.Markers.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to count markers: %w", err)
	}

	if len(markers) != expectedCount {
		return fmt.Errorf("marker count mismatch: expected %d, got %d", expectedCount, len(markers))
	}

	if len(markers) > 0 {
		last := markers[len(markers)-1]
		log.Info().Str("name", last.Name).Float64("lat", last.Latitude).Float64("lng", last.Longitude).Msg("sample marker")
	}
	return nil
}
