package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/heroglow/config"
)

// Recorder handles CSV logging of frame windows.
type Recorder struct {
	dir           string
	framesFile    *os.File
	headerWritten bool
}

// NewRecorder creates the output directory and frames.csv.
// Returns nil if dir is empty (output disabled); a nil Recorder is safe to use.
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}

	return &Recorder{dir: dir, framesFile: f}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (r *Recorder) WriteConfig(cfg *config.Config) error {
	if r == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(r.dir, "config.yaml"))
}

// WriteWindow appends a window record to frames.csv.
func (r *Recorder) WriteWindow(stats WindowStats) error {
	if r == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !r.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, r.framesFile); err != nil {
			return fmt.Errorf("writing frames: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.framesFile); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Close flushes and closes the output file.
func (r *Recorder) Close() error {
	if r == nil || r.framesFile == nil {
		return nil
	}
	return r.framesFile.Close()
}
