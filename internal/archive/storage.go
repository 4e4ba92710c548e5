// Package archive stores analysis run reports as JSON blobs. Backends exist
// for the local filesystem, Google Cloud Storage and S3-compatible stores.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Client abstracts blob storage for analysis run reports.
type Client interface {
	PutReport(ctx context.Context, analysisDate, runID string, data []byte) error
	GetReport(ctx context.Context, analysisDate, runID string) ([]byte, error)
}

// LocalArchive implements Client on the local filesystem. Useful for
// development and testing.
type LocalArchive struct {
	BaseDir string
}

// NewLocalArchive creates a LocalArchive rooted at the given directory.
func NewLocalArchive(baseDir string) *LocalArchive {
	return &LocalArchive{BaseDir: baseDir}
}

func (a *LocalArchive) path(analysisDate, runID string) string {
	return filepath.Join(a.BaseDir, "reports", analysisDate, runID+".json")
}

// PutReport stores a run report blob.
func (a *LocalArchive) PutReport(ctx context.Context, analysisDate, runID string, data []byte) error {
	path := a.path(analysisDate, runID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GetReport retrieves a run report blob.
func (a *LocalArchive) GetReport(ctx context.Context, analysisDate, runID string) ([]byte, error) {
	return os.ReadFile(a.path(analysisDate, runID))
}
