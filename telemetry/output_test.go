package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/heroglow/config"
)

func TestRecorder_NilIsDisabled(t *testing.T) {
	r, err := NewRecorder("")
	if err != nil || r != nil {
		t.Fatalf("expected nil recorder without error, got %v, %v", r, err)
	}
	// Methods on a nil recorder are no-ops
	if err := r.WriteWindow(WindowStats{}); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestRecorder_WritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("creating recorder: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := r.WriteWindow(WindowStats{WindowEnd: float64(i + 1), Frames: 60, Mode: "circle"}); err != nil {
			t.Fatalf("writing window: %v", err)
		}
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.WriteConfig(cfg); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,frames,mode") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("expected header exactly once")
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config snapshot: %v", err)
	}
}
