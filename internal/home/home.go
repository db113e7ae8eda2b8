package home

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultDirName is the default name for the quizclick home directory.
	DefaultDirName = ".quizclick"

	// CapturesDirName is the subdirectory for calibration captures.
	CapturesDirName = "captures"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the quizclick home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.quizclick).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// CapturesPath returns the directory calibration captures are saved to.
func (d *Dir) CapturesPath() string {
	return filepath.Join(d.path, CapturesDirName)
}

// CapturePath returns a timestamped file path for a capture taken at t.
func (d *Dir) CapturePath(t time.Time) string {
	return filepath.Join(d.CapturesPath(), fmt.Sprintf("capture_%s.png", t.Format("20060102_150405")))
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	// Create captures directory (this also creates the parent)
	if err := os.MkdirAll(d.CapturesPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create captures directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
