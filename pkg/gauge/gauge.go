// Package gauge is the arc gauge engine. It owns the value state of one
// gauge and turns value changes into animated shell paints on a surface.
package gauge

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"sync"

	"github.com/roffe/txgauge/pkg/animation"
	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/common"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/shell"
)

var defaultForeground = colors.MustParseColor(colors.DefaultForeground)

type Option func(*Gauge)

// WithValue sets the initial value. The first transition animates from the
// start of the track to it.
func WithValue(v float64) Option {
	return func(g *Gauge) { g.value = v }
}

// WithFrameHook registers fn to run after every painted frame, for hosts that
// need to present the surface. fn runs on the scheduler's thread with the
// animation driver locked and must not call back into the gauge.
func WithFrameHook(fn func()) Option {
	return func(g *Gauge) { g.onFrame = fn }
}

type Gauge struct {
	surface shell.Surface
	driver  *animation.Driver
	onFrame func()

	mu          sync.Mutex
	cfg         Config
	value       float64
	previous    float64
	hasPrevious bool
	bounds      geometry.Bounds
	renderer    *shell.Renderer
	background  color.Color
	color       string
	closed      bool
}

// New validates cfg and starts the initial transition to the initial value.
func New(cfg Config, surface shell.Surface, sched animation.Scheduler, opts ...Option) (*Gauge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Gauge{
		surface: surface,
		driver:  animation.NewDriver(sched),
		value:   DefaultMin,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.applyLocked(cfg); err != nil {
		return nil, err
	}
	g.animateLocked()
	return g, nil
}

func (g *Gauge) applyLocked(cfg Config) error {
	bounds, err := geometry.BoundsFor(cfg.Shape)
	if err != nil {
		return err
	}
	bg, err := colors.ParseColor(cfg.BackgroundColor)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.bounds = bounds
	g.background = bg
	g.renderer = shell.New(g.surface, geometry.Center(cfg.Size, cfg.Thickness), cfg.Thickness, cfg.Cap)
	return nil
}

// animateLocked starts a transition from the previous value to the current
// one under the current geometry and colors.
func (g *Gauge) animateLocked() {
	min, max := g.cfg.Min, g.cfg.Max
	unit := g.bounds.Unit(min, max)
	value := common.Clamp(g.value, min, max)
	to := g.bounds.Displacement(unit, value, min)
	from := 0.0
	if g.hasPrevious {
		from = g.bounds.Displacement(unit, common.Clamp(g.previous, min, max), min)
	}

	g.color = g.cfg.Foreground.Resolve(value)
	fg, err := colors.ParseColor(g.color)
	if err != nil {
		logger().Warn("foreground color", "color", g.color, "err", err)
		fg = defaultForeground
	}

	bounds, renderer, bg, reverse, hook := g.bounds, g.renderer, g.background, g.cfg.Reverse, g.onFrame
	paint := func(displacement float64) {
		if err := renderer.Draw(bounds, bounds.Split(displacement), fg, bg, reverse); err != nil {
			logger().Debug("paint shell", "err", err)
		}
		if hook != nil {
			hook()
		}
	}

	gen := g.driver.Start(from, to, g.cfg.Duration, paint)
	logger().Debug("transition",
		"generation", gen,
		"from", from,
		"to", to,
		"value", value,
		"color", g.color,
	)
}

// SetValue records the current value as the previous one and animates to v.
// Setting the current value again does nothing.
func (g *Gauge) SetValue(v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || v == g.value {
		return
	}
	g.previous, g.hasPrevious = g.value, true
	g.value = v
	g.animateLocked()
}

// SetRange changes min and max and animates the current value under the new
// range.
func (g *Gauge) SetRange(min, max float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	cfg := g.cfg
	cfg.Min, cfg.Max = min, max
	if err := cfg.Validate(); err != nil {
		return err
	}
	if g.closed {
		return nil
	}
	g.cfg = cfg
	g.animateLocked()
	return nil
}

// SetForeground replaces the color specification and repaints.
func (g *Gauge) SetForeground(fg colors.Foreground) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	cfg := g.cfg
	cfg.Foreground = fg
	if err := cfg.Validate(); err != nil {
		return err
	}
	if g.closed {
		return nil
	}
	g.cfg = cfg
	g.animateLocked()
	return nil
}

// Reconfigure swaps the whole configuration, keeping value state.
func (g *Gauge) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.driver.Cancel()
	if err := g.applyLocked(cfg); err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}
	g.surface.Clear()
	g.animateLocked()
	return nil
}

// Close stops animating and clears the surface. Later updates are ignored.
func (g *Gauge) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	g.driver.Cancel()
	g.surface.Clear()
	if g.onFrame != nil {
		g.onFrame()
	}
}

func (g *Gauge) Config() Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg
}

func (g *Gauge) Value() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// Previous returns the value before the last SetValue, false before the first.
func (g *Gauge) Previous() (float64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.previous, g.hasPrevious
}

// Color returns the foreground color of the current transition.
func (g *Gauge) Color() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.color
}

func (g *Gauge) Bounds() geometry.Bounds {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bounds
}

// Displacement returns the target displacement of value under the current
// range, with value clamped into it.
func (g *Gauge) Displacement(value float64) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	unit := g.bounds.Unit(g.cfg.Min, g.cfg.Max)
	return g.bounds.Displacement(unit, common.Clamp(value, g.cfg.Min, g.cfg.Max), g.cfg.Min)
}

// DisplayText is the centre text: prepend, the value rounded to the configured
// decimals, append.
func (g *Gauge) DisplayText() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg.Prepend + FormatValue(g.value, g.cfg.Decimals) + g.cfg.Append
}

// Animation exposes the driver for hosts that wait on transitions.
func (g *Gauge) Animation() *animation.Driver {
	return g.driver
}

// FormatValue rounds v to decimals, at most MaxDecimals, and prints it
// without trailing zeros.
func FormatValue(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	decimals = min(max(decimals, 0), MaxDecimals)
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
