package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/heroglow/config"
	"github.com/pthm-cable/heroglow/systems"
	"github.com/pthm-cable/heroglow/telemetry"
	"github.com/pthm-cable/heroglow/viewport"
)

const frame = 1.0 / 60.0

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine builds an engine on a 1280x624 host (aspect ~2.05, 35x17 grid).
func newTestEngine(t *testing.T) (*Engine, *FixedHost, *HeadlessBackend) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	host := &FixedHost{Rect: viewport.Rect{Width: 1280, Height: 624}}
	backend := &HeadlessBackend{}
	e, err := New(cfg, host, backend, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("starting engine: %v", err)
	}
	return e, host, backend
}

func TestNewReportsMissingCollaborators(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	host := &FixedHost{Rect: viewport.Rect{Width: 800, Height: 600}}

	if _, err := New(cfg, nil, &HeadlessBackend{}, Options{Logger: quietLogger()}); !errors.Is(err, ErrNoHost) {
		t.Errorf("expected ErrNoHost, got %v", err)
	}
	if _, err := New(cfg, host, nil, Options{Logger: quietLogger()}); !errors.Is(err, ErrNoSurface) {
		t.Errorf("expected ErrNoSurface, got %v", err)
	}
	if _, err := New(cfg, &FixedHost{}, &HeadlessBackend{}, Options{Logger: quietLogger()}); !errors.Is(err, ErrEmptyHost) {
		t.Errorf("expected ErrEmptyHost, got %v", err)
	}
}

func TestNewBuildsHeroGrid(t *testing.T) {
	e, _, backend := newTestEngine(t)

	spec := e.Grid().Spec
	if spec.Columns != 35 || spec.Rows != 17 {
		t.Errorf("expected 35x17 grid, got %dx%d", spec.Columns, spec.Rows)
	}
	if backend.Bounds.Width != 1280 || backend.Bounds.Height != 624 {
		t.Errorf("expected surface aligned to host, got %+v", backend.Bounds)
	}
	s := e.State()
	if s.Mode != systems.ModeWave || s.Transition != 1 {
		t.Errorf("expected wave at transition 1, got %s at %f", s.Mode, s.Transition)
	}
}

func TestNewRowsFollowHostAspect(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		width, height float32
		rows          int
	}{
		{2100, 720, 12},
		{1750, 600, 12},
		{1050, 720, 24},
	}
	for _, tt := range tests {
		host := &FixedHost{Rect: viewport.Rect{Width: tt.width, Height: tt.height}}
		e, err := New(cfg, host, &HeadlessBackend{}, Options{Logger: quietLogger()})
		if err != nil {
			t.Fatalf("creating engine: %v", err)
		}
		if rows := e.Grid().Spec.Rows; rows != tt.rows {
			t.Errorf("%vx%v: expected %d rows, got %d", tt.width, tt.height, tt.rows, rows)
		}
	}
}

func TestTickBeforeStartIsNoop(t *testing.T) {
	cfg, _ := config.Load("")
	backend := &HeadlessBackend{}
	e, err := New(cfg, &FixedHost{Rect: viewport.Rect{Width: 100, Height: 100}}, backend, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}

	e.Tick(frame)
	if backend.Frames != 0 || e.State().Frame != 0 {
		t.Error("expected no frame before Start")
	}
}

func TestTickRendersAndFlagsUpload(t *testing.T) {
	e, _, backend := newTestEngine(t)

	e.Step(3, frame)
	if backend.Frames != 3 || backend.Uploads != 3 {
		t.Errorf("expected 3 frames and 3 uploads, got %d and %d", backend.Frames, backend.Uploads)
	}
	if e.Grid().Dirty {
		t.Error("expected backend to consume the dirty flag")
	}
}

func TestShapeChangeAfterInterval(t *testing.T) {
	e, _, _ := newTestEngine(t)

	e.Tick(8.0)
	if s := e.State(); s.Mode != systems.ModeWave {
		t.Fatalf("expected no change at exactly 8s, got %s", s.Mode)
	}

	const dt = frame
	e.Tick(dt)
	s := e.State()
	if s.Mode != systems.ModeCircle {
		t.Errorf("expected circle after 8s, got %s", s.Mode)
	}
	if s.Transition <= 0 || s.Transition >= dt/3.5*1.5 {
		t.Errorf("expected transition in (0, %f), got %f", dt/3.5*1.5, s.Transition)
	}
	if s.LastShapeChange != s.Elapsed {
		t.Errorf("expected change time %f, got %f", s.Elapsed, s.LastShapeChange)
	}
}

func TestModeCyclesBackToWave(t *testing.T) {
	e, _, _ := newTestEngine(t)

	want := []systems.Mode{systems.ModeCircle, systems.ModeStar, systems.ModeWave}
	for i, m := range want {
		// 9s clears the interval and, at 3.5s per morph, finishes the transition
		e.Tick(9)
		if got := e.State().Mode; got != m {
			t.Fatalf("change %d: expected %s, got %s", i+1, m, got)
		}
	}
	if e.State().ShapeChanges != 3 {
		t.Errorf("expected 3 shape changes, got %d", e.State().ShapeChanges)
	}
}

func TestTransitionMonotonicToOne(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Tick(8)
	e.Tick(frame)

	prev := e.State().Transition
	for i := 0; i < 400; i++ {
		e.Tick(frame)
		tr := e.State().Transition
		if tr < prev {
			t.Fatalf("transition decreased at frame %d: %f < %f", i, tr, prev)
		}
		if tr > 1 {
			t.Fatalf("transition exceeded 1: %f", tr)
		}
		prev = tr
	}
	if prev != 1 {
		t.Errorf("expected transition to reach exactly 1, got %f", prev)
	}
	if e.State().Mode != systems.ModeCircle {
		t.Errorf("expected a single change, got %s", e.State().Mode)
	}
}

func TestFastFinish(t *testing.T) {
	var s State
	tm := timing{transitionDuration: 3.5, fastFinishThreshold: 0.95, fastFinishMultiplier: 1.5}

	s.Transition = 0.5
	s.advanceTransition(tm, 0.35)
	if !approx(s.Transition, 0.6) {
		t.Errorf("expected plain step to 0.6, got %f", s.Transition)
	}

	s.Transition = 0.95
	s.advanceTransition(tm, 0.035)
	// 0.95 + 0.01, then past the threshold + 0.015
	if !approx(s.Transition, 0.975) {
		t.Errorf("expected fast finish to 0.975, got %f", s.Transition)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNoChangeWhileTransitionIncomplete(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.state.Transition = 0.5
	e.state.Elapsed = 100

	e.Tick(frame)
	if e.State().Mode != systems.ModeWave {
		t.Errorf("expected no change mid-transition, got %s", e.State().Mode)
	}
}

func TestAdvanceShape(t *testing.T) {
	e, _, _ := newTestEngine(t)

	e.AdvanceShape()
	e.Tick(frame)
	if e.State().Mode != systems.ModeCircle {
		t.Errorf("expected requested change to circle, got %s", e.State().Mode)
	}

	// A second request waits for the transition to finish
	e.AdvanceShape()
	e.Tick(frame)
	if e.State().Mode != systems.ModeCircle {
		t.Errorf("expected request to wait for the transition, got %s", e.State().Mode)
	}
	e.Step(300, frame)
	if e.State().Mode != systems.ModeStar {
		t.Errorf("expected pending request to apply once finished, got %s", e.State().Mode)
	}
}

func TestSnapshotOnShapeChange(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Step(10, frame)

	if e.PreviousPositions() != nil {
		t.Fatal("expected no snapshot before the first change")
	}

	before := append([]float32(nil), e.Grid().Positions...)
	e.Tick(8)

	prev := e.PreviousPositions()
	if len(prev) != len(before) {
		t.Fatalf("expected snapshot of %d values, got %d", len(before), len(prev))
	}
	for i := range before {
		if prev[i] != before[i] {
			t.Fatalf("snapshot differs at %d: %f != %f", i, prev[i], before[i])
		}
	}
}

func TestPointerSmoothing(t *testing.T) {
	e, _, _ := newTestEngine(t)

	// Right edge, vertical centre: target world (640, 0)
	e.PointerMove(1280, 312)
	e.Tick(frame)

	p := e.Pointer()
	if !approx(p.NormalizedX, 1) || !approx(p.NormalizedY, 0) {
		t.Errorf("expected normalized (1, 0), got (%f, %f)", p.NormalizedX, p.NormalizedY)
	}
	if !approx(p.WorldX, 640*0.15) {
		t.Errorf("expected first smoothing step to %f, got %f", 640*0.15, p.WorldX)
	}
	if !p.Active {
		t.Error("expected pointer active")
	}

	e.Step(200, frame)
	if math.Abs(e.Pointer().WorldX-640) > 0.01 {
		t.Errorf("expected convergence to 640, got %f", e.Pointer().WorldX)
	}
}

func TestPointerDecayWhenInactive(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.pointer.WorldX = 4
	e.pointer.WorldY = -2

	e.Tick(frame)
	p := e.Pointer()
	if !approx(p.WorldX, 4*0.95) || !approx(p.WorldY, -2*0.95) {
		t.Errorf("expected decay to (%f, %f), got (%f, %f)", 4*0.95, -2*0.95, p.WorldX, p.WorldY)
	}
	if p.Active {
		t.Error("expected pointer inactive")
	}
}

func TestInactivePointerLeavesParticlesAlone(t *testing.T) {
	e, _, _ := newTestEngine(t)
	// Host centre maps to world (0, 0)
	e.PointerMove(640, 312)
	e.Step(5, frame)

	g := e.Grid()
	for i, size := range g.Sizes {
		if size != g.BaseSize {
			t.Fatalf("particle %d: expected base size %f, got %f", i, g.BaseSize, size)
		}
	}
}

func TestActivePointerGrowsNearbyParticles(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.PointerMove(900, 200)
	e.Step(60, frame)

	grown := 0
	for _, size := range e.Grid().Sizes {
		if size > e.Grid().BaseSize {
			grown++
		}
	}
	if grown == 0 {
		t.Error("expected particles near the pointer to grow")
	}
}

func TestCameraDrift(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.PointerMove(1280, 0) // normalized (1, 1)
	e.Tick(frame)

	cam := e.Camera()
	if math.Abs(float64(cam.X)-5) > 1e-4 || math.Abs(float64(cam.Y)-5) > 1e-4 {
		t.Errorf("expected camera at (5, 5), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Z != 600 {
		t.Errorf("expected camera Z fixed at 600, got %f", cam.Z)
	}
}

func TestHoverOpacity(t *testing.T) {
	e, _, _ := newTestEngine(t)

	e.PointerEnter()
	if e.Scene().PointOpacity != float32(0.9) {
		t.Errorf("expected point opacity 0.9, got %f", e.Scene().PointOpacity)
	}
	e.Tick(frame)
	if lo := e.Scene().LineOpacity; lo < 0.3-1e-6 || lo > 0.5+1e-6 {
		t.Errorf("expected hovered line opacity in [0.3, 0.5], got %f", lo)
	}

	e.PointerLeave()
	if e.Scene().PointOpacity != float32(0.7) {
		t.Errorf("expected point opacity 0.7, got %f", e.Scene().PointOpacity)
	}
	e.Tick(frame)
	if lo := e.Scene().LineOpacity; lo < 0.1-1e-6 || lo > 0.3+1e-6 {
		t.Errorf("expected resting line opacity in [0.1, 0.3], got %f", lo)
	}
}

func TestResizeKeepsGrid(t *testing.T) {
	e, host, backend := newTestEngine(t)
	grid := e.Grid()
	count := grid.Count()

	host.Rect = viewport.Rect{Width: 600, Height: 800}
	e.Resize()

	if e.Grid() != grid || e.Grid().Count() != count {
		t.Error("resize must not rebuild the grid")
	}
	if backend.Bounds.Width != 600 || backend.Bounds.Height != 800 {
		t.Errorf("expected surface resized to 600x800, got %+v", backend.Bounds)
	}
	if math.Abs(float64(e.Camera().Aspect)-0.75) > 1e-6 {
		t.Errorf("expected camera aspect 0.75, got %f", e.Camera().Aspect)
	}
}

func TestScrollMovesSurface(t *testing.T) {
	e, host, backend := newTestEngine(t)

	host.Rect.Y = -200
	e.Scroll()
	if backend.Bounds.Y != -200 {
		t.Errorf("expected surface to follow scroll, got %+v", backend.Bounds)
	}
	if e.Viewport().Y != -200 {
		t.Errorf("expected viewport to follow scroll, got %+v", e.Viewport())
	}
}

func TestDispose(t *testing.T) {
	e, _, backend := newTestEngine(t)

	if err := e.Dispose(); err != nil {
		t.Fatalf("dispose: %v", err)
	}
	if !backend.Disposed {
		t.Error("expected backend resources released")
	}
	if e.Running() {
		t.Error("expected engine stopped after dispose")
	}
	if err := e.Dispose(); err != nil {
		t.Errorf("second dispose should be a no-op, got %v", err)
	}
	if err := e.Start(); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed, got %v", err)
	}
}

func TestStopPausesTicks(t *testing.T) {
	e, _, backend := newTestEngine(t)
	e.Tick(frame)
	e.Stop()
	e.Tick(frame)
	if backend.Frames != 1 {
		t.Errorf("expected 1 frame, got %d", backend.Frames)
	}
}

func TestTogglePause(t *testing.T) {
	e, _, _ := newTestEngine(t)

	if err := e.TogglePause(); err != nil || e.Running() {
		t.Errorf("expected paused engine, got running=%v err=%v", e.Running(), err)
	}
	if err := e.TogglePause(); err != nil || !e.Running() {
		t.Errorf("expected running engine, got running=%v err=%v", e.Running(), err)
	}

	e.Dispose()
	if err := e.TogglePause(); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed, got %v", err)
	}
	if e.Running() {
		t.Error("expected disposed engine to stay stopped")
	}
}

func TestTimeScale(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Tick(1)
	if !approx(e.State().Time, 0.8) {
		t.Errorf("expected animation time 0.8 after 1s, got %f", e.State().Time)
	}

	e.SetTimeScale(-3)
	if e.TimeScale() != 0 {
		t.Errorf("expected negative scale clamped to 0, got %f", e.TimeScale())
	}
	e.Tick(1)
	if !approx(e.State().Time, 0.8) {
		t.Errorf("expected frozen animation time, got %f", e.State().Time)
	}
}

func TestRunUntilCancelled(t *testing.T) {
	e, _, backend := newTestEngine(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := e.Run(ctx, 5*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if backend.Frames == 0 {
		t.Error("expected frames while running")
	}
	if e.Running() {
		t.Error("expected engine stopped after Run returns")
	}
}

func TestRecorderWritesWindows(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	rec, err := telemetry.NewRecorder(dir)
	if err != nil {
		t.Fatal(err)
	}

	e, err := New(cfg, &FixedHost{Rect: viewport.Rect{Width: 800, Height: 400}}, &HeadlessBackend{},
		Options{Logger: quietLogger(), Recorder: rec, LogStats: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	e.Step(150, frame)
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("expected header + 2 windows over 2.5s, got %d lines", len(lines))
	}
}
