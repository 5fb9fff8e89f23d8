package telemetry

import (
	"log/slog"
	"sort"
	"time"
)

// WindowStats summarises the frames of one stats window.
type WindowStats struct {
	WindowEnd     float64 `csv:"window_end"`
	Frames        int     `csv:"frames"`
	Mode          string  `csv:"mode"`
	Transition    float64 `csv:"transition"`
	ShapeChanges  int     `csv:"shape_changes"`
	PointerActive bool    `csv:"pointer_active"`
	PointerX      float64 `csv:"pointer_x"`
	PointerY      float64 `csv:"pointer_y"`

	// Frame cost
	AvgFrameUs int64 `csv:"avg_frame_us"`
	P50FrameUs int64 `csv:"p50_frame_us"`
	P95FrameUs int64 `csv:"p95_frame_us"`
	MaxFrameUs int64 `csv:"max_frame_us"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// FrameCost computes mean, p50, p95 and max of frame durations in microseconds.
// durations is sorted in place.
func FrameCost(durations []float64) (mean, p50, p95, maxUs float64) {
	n := len(durations)
	if n == 0 {
		return 0, 0, 0, 0
	}

	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	mean = sum / float64(n)

	sort.Float64s(durations)
	return mean, Percentile(durations, 0.5), Percentile(durations, 0.95), durations[n-1]
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.String("mode", s.Mode),
		slog.Float64("transition", s.Transition),
		slog.Int("shape_changes", s.ShapeChanges),
		slog.Bool("pointer_active", s.PointerActive),
		slog.Float64("pointer_x", s.PointerX),
		slog.Float64("pointer_y", s.PointerY),
		slog.Int64("avg_frame_us", s.AvgFrameUs),
		slog.Int64("p50_frame_us", s.P50FrameUs),
		slog.Int64("p95_frame_us", s.P95FrameUs),
		slog.Int64("max_frame_us", s.MaxFrameUs),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("stats", "window", s)
}
