package filestorage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nonso/acadport/internal/pkg/logger"
)

// LocalStorage keeps uploads on the local filesystem and serves them back
// under a base URL that the HTTP server maps to the storage directory.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates the storage root if needed.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")
	return &LocalStorage{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Store writes content under folder using a collision-free object name
// derived from a fresh UUID plus the original extension.
func (ls *LocalStorage) Store(ctx context.Context, content []byte, folder, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := ls.basePath
	if folder != "" {
		dir = filepath.Join(ls.basePath, folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create folder %s: %w", folder, err)
		}
	}

	objectName := uuid.New().String() + filepath.Ext(filename)
	dst := filepath.Join(dir, objectName)
	if err := os.WriteFile(dst, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	url := ls.baseURL + "/" + objectName
	if folder != "" {
		url = ls.baseURL + "/" + folder + "/" + objectName
	}

	logger.Info().Str("filename", filename).Str("url", url).Msg("File stored")
	return url, nil
}

// Remove deletes the object a URL points at. Missing objects are treated
// as already removed.
func (ls *LocalStorage) Remove(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	rel := strings.TrimPrefix(url, ls.baseURL)
	rel = strings.TrimLeft(rel, "/")
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("invalid object url: %s", url)
	}

	path := filepath.Join(ls.basePath, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}

// BasePath returns the storage root, used to mount static file serving.
func (ls *LocalStorage) BasePath() string { return ls.basePath }
