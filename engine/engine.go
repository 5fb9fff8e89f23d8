// Package engine drives the animated particle background: it owns the
// animation, pointer and camera state and advances them one frame per Tick.
//
// The engine is single-threaded. Tick and the input methods (PointerMove,
// Resize, Scroll, ...) must be called from the same goroutine; input takes
// effect at the next Tick.
package engine

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/heroglow/camera"
	"github.com/pthm-cable/heroglow/config"
	"github.com/pthm-cable/heroglow/systems"
	"github.com/pthm-cable/heroglow/telemetry"
	"github.com/pthm-cable/heroglow/viewport"
)

var (
	// ErrNoHost is returned when there is no host element to attach to.
	ErrNoHost = errors.New("engine: no host element")
	// ErrEmptyHost is returned when the host has no measurable area.
	ErrEmptyHost = errors.New("engine: host has no area")
	// ErrNoSurface is returned when there is no rendering backend.
	ErrNoSurface = errors.New("engine: no render surface")
	// ErrDisposed is returned when starting an engine that was disposed.
	ErrDisposed = errors.New("engine: disposed")
)

// Options configures optional engine behaviour.
type Options struct {
	// Logger receives lifecycle and stats logs; nil uses slog.Default().
	Logger *slog.Logger
	// LogStats logs a summary at the end of every stats window.
	LogStats bool
	// Recorder, if set, receives a CSV row per stats window. The caller owns it.
	Recorder *telemetry.Recorder
}

// Engine is the animation loop. Lifecycle: New, Start, Tick..., Stop, Dispose.
type Engine struct {
	cfg     *config.Config
	opts    Options
	log     *slog.Logger
	backend Backend
	view    *viewport.Adapter
	cam     *camera.Camera
	grid    *systems.ParticleGrid
	field   *systems.ForceField
	scene   Scene
	timing  timing

	state   State
	pointer PointerState

	previous    []float32
	hasPrevious bool

	timeScale       float64
	changeRequested bool
	running         bool
	disposed        bool

	perf   *telemetry.PerfCollector
	window *telemetry.WindowAccumulator
}

// New measures the host, sizes the grid to the camera's visible extent and
// aligns the backend's surface to the host. It fails, rather than silently
// doing nothing, when the host or surface is missing.
func New(cfg *config.Config, host viewport.Host, backend Backend, opts Options) (*Engine, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	if backend == nil {
		return nil, ErrNoSurface
	}

	view := viewport.NewAdapter(host, backend)
	rect := view.Rect()
	if rect.Empty() {
		return nil, ErrEmptyHost
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cc := cfg.Camera
	cam := camera.New(float32(cc.FOV), rect.Aspect(), float32(cc.Near), float32(cc.Far), float32(cc.Distance))

	// Rows follow the exact host aspect, not the float32 camera aspect.
	aspect := float64(rect.Width) / float64(rect.Height)
	vw, vh := cam.VisibleExtent()
	spec := systems.NewGridSpec(cfg.Grid.Columns, aspect, float64(vw), float64(vh))
	gradient := systems.Gradient{Start: cfg.Derived.ColorStart, End: cfg.Derived.ColorEnd}
	grid := systems.NewParticleGrid(spec, gradient, float32(cfg.Grid.BaseSize), float32(cfg.Grid.LineAlpha))

	e := &Engine{
		cfg:     cfg,
		opts:    opts,
		log:     logger,
		backend: backend,
		view:    view,
		cam:     cam,
		grid:    grid,
		field:   systems.NewForceField(forceParams(cfg), cfg.Derived.ColorGlow),
		timing: timing{
			changeInterval:       cfg.Shapes.ChangeInterval,
			transitionDuration:   cfg.Shapes.TransitionDuration,
			fastFinishThreshold:  cfg.Shapes.FastFinishThreshold,
			fastFinishMultiplier: cfg.Shapes.FastFinishMultiplier,
			completeThreshold:    cfg.Shapes.CompleteThreshold,
		},
		state:     State{Mode: systems.ModeWave, Transition: 1},
		previous:  make([]float32, len(grid.Positions)),
		timeScale: cfg.Shapes.TimeScale,
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		window:    telemetry.NewWindowAccumulator(cfg.Telemetry.StatsWindow),
	}
	e.scene = Scene{
		Grid:         grid,
		PointOpacity: float32(cfg.Opacity.Points),
		LineOpacity:  float32(cfg.Opacity.Lines),
	}

	logger.Info("engine created",
		"columns", spec.Columns,
		"rows", spec.Rows,
		"particles", spec.Count(),
		"lines", len(grid.Lines),
		"width", rect.Width,
		"height", rect.Height,
	)
	return e, nil
}

func forceParams(cfg *config.Config) systems.ForceParams {
	f := cfg.Force
	return systems.ForceParams{
		MaxDistance:     f.MaxDistance,
		ActiveThreshold: cfg.Pointer.ActiveThreshold,
		Attraction:      f.Attraction,
		Swirl:           f.Swirl,
		Lift:            f.Lift,
		SizeGain:        f.SizeGain,
		RippleFrequency: f.RippleFrequency,
		RippleSpeed:     f.RippleSpeed,
		RippleBase:      f.RippleBase,
		RippleAmplitude: f.RippleAmplitude,
		GlowMix:         f.GlowMix,
		GlowBoost:       f.GlowBoost,
	}
}

// Start begins accepting ticks.
func (e *Engine) Start() error {
	if e.disposed {
		return ErrDisposed
	}
	if !e.running {
		e.running = true
		e.log.Info("engine started", "elapsed", e.state.Elapsed)
	}
	return nil
}

// Stop pauses the engine; Tick becomes a no-op until Start is called again.
func (e *Engine) Stop() {
	if e.running {
		e.running = false
		e.log.Info("engine stopped", "elapsed", e.state.Elapsed, "frames", e.state.Frame)
	}
}

// TogglePause stops a running engine or restarts a paused one. Restarting a
// disposed engine returns ErrDisposed.
func (e *Engine) TogglePause() error {
	if e.running {
		e.Stop()
		return nil
	}
	return e.Start()
}

// Running reports whether the engine accepts ticks.
func (e *Engine) Running() bool {
	return e.running
}

// Dispose stops the engine and releases the backend. Safe to call twice.
func (e *Engine) Dispose() error {
	if e.disposed {
		return nil
	}
	e.Stop()
	e.disposed = true
	err := e.backend.Dispose()
	e.log.Info("engine disposed", "frames", e.state.Frame)
	return err
}

// Tick advances the animation by dt seconds, rewrites the grid buffers and
// renders one frame. The whole frame runs synchronously.
func (e *Engine) Tick(dt float64) {
	if !e.running {
		return
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	start := time.Now()
	e.perf.StartFrame()
	e.perf.StartPhase(telemetry.PhaseSchedule)

	s := &e.state
	s.Elapsed += dt
	s.Time += dt * e.timeScale

	changed := false
	if s.shapeDue(e.timing, e.changeRequested) {
		e.snapshot()
		from, to := s.beginShapeChange()
		e.changeRequested = false
		changed = true
		e.log.Debug("shape change", "from", from.String(), "to", to.String(), "elapsed", s.Elapsed)
	}
	s.advanceTransition(e.timing, dt)

	e.updatePointer()

	dr := e.cfg.Camera.DriftRange
	e.cam.Drift(float32(e.pointer.NormalizedX*dr), float32(e.pointer.NormalizedY*dr), float32(e.cfg.Camera.DriftRate))

	in := systems.FrameInput{
		Time:       s.Time,
		Mode:       s.Mode,
		Transition: s.Transition,
		Pointer:    r2.Vec{X: e.pointer.WorldX, Y: e.pointer.WorldY},
	}
	e.perf.StartPhase(telemetry.PhaseParticles)
	e.grid.UpdateParticles(in, e.field)
	e.perf.StartPhase(telemetry.PhaseLines)
	e.grid.UpdateLines(in)

	op := e.cfg.Opacity
	lineBase := op.Lines
	if e.pointer.Hovered {
		lineBase = op.LinesHover
	}
	e.scene.PointRotation = float32(math.Sin(s.Time*0.5) * op.PointsRotation)
	e.scene.LineOpacity = float32(lineBase + math.Sin(s.Time*2)*op.LinePulse)

	e.perf.StartPhase(telemetry.PhaseRender)
	e.backend.Render(&e.scene, e.cam)
	e.perf.EndFrame()
	s.Frame++

	e.observe(changed, time.Since(start))
}

// snapshot copies the current particle positions before a shape change.
func (e *Engine) snapshot() {
	if e.grid == nil {
		return
	}
	n := len(e.grid.Positions)
	blas32.Copy(
		blas32.Vector{N: n, Inc: 1, Data: e.grid.Positions},
		blas32.Vector{N: n, Inc: 1, Data: e.previous},
	)
	e.hasPrevious = true
}

// updatePointer smooths the world pointer toward its target, then decays it
// toward the origin while it sits inside the inactive band.
func (e *Engine) updatePointer() {
	p := &e.pointer
	pc := e.cfg.Pointer
	if p.hasTarget {
		p.WorldX += (p.TargetX - p.WorldX) * pc.Smoothing
		p.WorldY += (p.TargetY - p.WorldY) * pc.Smoothing
	}
	p.Active = e.field.Active(r2.Vec{X: p.WorldX, Y: p.WorldY})
	if !p.Active {
		p.WorldX *= pc.Decay
		p.WorldY *= pc.Decay
	}
}

func (e *Engine) observe(changed bool, d time.Duration) {
	stats, ok := e.window.Observe(telemetry.FrameSample{
		Elapsed:       e.state.Elapsed,
		Mode:          e.state.Mode.String(),
		Transition:    e.state.Transition,
		ShapeChanged:  changed,
		PointerActive: e.pointer.Active,
		PointerX:      e.pointer.WorldX,
		PointerY:      e.pointer.WorldY,
		Duration:      d,
	})
	if !ok {
		return
	}
	if err := e.opts.Recorder.WriteWindow(stats); err != nil {
		e.log.Warn("writing frame stats", "error", err)
	}
	if e.opts.LogStats {
		stats.LogStats(e.log)
		e.perf.Stats().LogStats(e.log)
	}
}

// PointerMove records a pointer position in client coordinates.
func (e *Engine) PointerMove(clientX, clientY float32) {
	p := e.view.MapPointer(clientX, clientY)
	e.pointer.NormalizedX = float64(p.NormalizedX)
	e.pointer.NormalizedY = float64(p.NormalizedY)
	e.pointer.TargetX = float64(p.WorldX)
	e.pointer.TargetY = float64(p.WorldY)
	e.pointer.hasTarget = true
}

// PointerEnter boosts material opacity while the pointer is over the host.
func (e *Engine) PointerEnter() {
	e.pointer.Hovered = true
	e.scene.PointOpacity = float32(e.cfg.Opacity.PointsHover)
	e.scene.LineOpacity = float32(e.cfg.Opacity.LinesHover)
}

// PointerLeave restores the resting opacity.
func (e *Engine) PointerLeave() {
	e.pointer.Hovered = false
	e.scene.PointOpacity = float32(e.cfg.Opacity.Points)
	e.scene.LineOpacity = float32(e.cfg.Opacity.Lines)
}

// Resize re-measures the host, realigns the surface and updates the camera
// aspect. The grid keeps its topology; only the visible scale changes.
func (e *Engine) Resize() {
	rect := e.view.Refresh()
	if rect.Empty() {
		return
	}
	e.cam.SetAspect(rect.Aspect())
	e.log.Info("resize", "width", rect.Width, "height", rect.Height)
}

// Scroll realigns the surface with the host after the page moved.
func (e *Engine) Scroll() {
	e.view.Refresh()
}

// AdvanceShape requests a shape change at the next frame where the current
// transition has finished, without waiting for the interval.
func (e *Engine) AdvanceShape() {
	e.changeRequested = true
}

// SetTimeScale sets animation time per elapsed second. Negative values clamp to 0.
func (e *Engine) SetTimeScale(scale float64) {
	e.timeScale = math.Max(0, scale)
}

// TimeScale returns the animation time per elapsed second.
func (e *Engine) TimeScale() float64 {
	return e.timeScale
}

// State returns a copy of the animation state.
func (e *Engine) State() State {
	return e.state
}

// Pointer returns a copy of the pointer state.
func (e *Engine) Pointer() PointerState {
	return e.pointer
}

// Scene returns the scene handed to the backend.
func (e *Engine) Scene() *Scene {
	return &e.scene
}

// Camera returns the engine camera.
func (e *Engine) Camera() *camera.Camera {
	return e.cam
}

// Grid returns the particle grid.
func (e *Engine) Grid() *systems.ParticleGrid {
	return e.grid
}

// Viewport returns the host rectangle as last measured.
func (e *Engine) Viewport() viewport.Rect {
	return e.view.Rect()
}

// PreviousPositions returns the particle positions captured at the last shape
// change, or nil if no change has happened yet.
func (e *Engine) PreviousPositions() []float32 {
	if !e.hasPrevious {
		return nil
	}
	return e.previous
}

// Perf returns frame timing statistics over the rolling window.
func (e *Engine) Perf() telemetry.PerfStats {
	return e.perf.Stats()
}
