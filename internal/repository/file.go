package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"places-proxy/internal/models"
)

// FileRepository stores markers as a pretty-printed JSON array in a single file.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository creates a repository backed by path. The file and its
// directory are created on first write.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// ListMarkers reads the file; a missing file is an empty list.
func (r *FileRepository) ListMarkers(ctx context.Context) ([]models.Marker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.load()
}

// CreateMarker appends marker and rewrites the file atomically.
func (r *FileRepository) CreateMarker(ctx context.Context, marker models.Marker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	markers, err := r.load()
	if err != nil {
		return err
	}
	markers = append(markers, marker)
	return r.save(markers)
}

func (r *FileRepository) load() ([]models.Marker, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Marker{}, nil
		}
		return nil, fmt.Errorf("repository: failed to read markers file: %w", err)
	}

	markers := []models.Marker{}
	if err := json.Unmarshal(raw, &markers); err != nil {
		return nil, fmt.Errorf("repository: failed to decode markers file: %w", err)
	}
	return markers, nil
}

func (r *FileRepository) save(markers []models.Marker) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("repository: failed to create data dir: %w", err)
	}

	data, err := json.MarshalIndent(markers, "", "  ")
	if err != nil {
		return fmt.Errorf("repository: failed to encode markers: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".markers-*.json")
	if err != nil {
		return fmt.Errorf("repository: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("repository: failed to write markers: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repository: failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("repository: failed to replace markers file: %w", err)
	}
	return nil
}
