package telemetry

import "time"

// FrameSample is what the engine reports after each frame.
type FrameSample struct {
	Elapsed       float64
	Mode          string
	Transition    float64
	ShapeChanged  bool
	PointerActive bool
	PointerX      float64
	PointerY      float64
	Duration      time.Duration
}

// WindowAccumulator groups frames into fixed windows of elapsed time.
type WindowAccumulator struct {
	window    float64
	next      float64
	frames    int
	changes   int
	durations []float64
}

// NewWindowAccumulator creates an accumulator emitting every window seconds.
func NewWindowAccumulator(window float64) *WindowAccumulator {
	if window <= 0 {
		window = 1
	}
	return &WindowAccumulator{window: window, next: window}
}

// Observe adds a frame. When the frame closes a window it returns the
// window's stats and true.
func (w *WindowAccumulator) Observe(s FrameSample) (WindowStats, bool) {
	w.frames++
	w.durations = append(w.durations, micros(s.Duration))
	if s.ShapeChanged {
		w.changes++
	}

	if s.Elapsed < w.next {
		return WindowStats{}, false
	}

	mean, p50, p95, maxUs := FrameCost(w.durations)
	stats := WindowStats{
		WindowEnd:     s.Elapsed,
		Frames:        w.frames,
		Mode:          s.Mode,
		Transition:    s.Transition,
		ShapeChanges:  w.changes,
		PointerActive: s.PointerActive,
		PointerX:      s.PointerX,
		PointerY:      s.PointerY,
		AvgFrameUs:    int64(mean),
		P50FrameUs:    int64(p50),
		P95FrameUs:    int64(p95),
		MaxFrameUs:    int64(maxUs),
	}

	for w.next <= s.Elapsed {
		w.next += w.window
	}
	w.frames = 0
	w.changes = 0
	w.durations = w.durations[:0]
	return stats, true
}
