// Package shell paints the gauge track and its filled portion.
package shell

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"github.com/roffe/txgauge/pkg/geometry"
)

// Surface is the part of a 2D drawing context the renderer paints with.
type Surface interface {
	Clear()
	SetColor(color.Color)
	SetLineWidth(float64)
	SetLineCap(gg.LineCap)
	DrawArc(x, y, r, angle1, angle2 float64)
	Stroke() error
}

var _ Surface = (*gg.Context)(nil)

type Cap string

const (
	CapButt  Cap = "butt"
	CapRound Cap = "round"
)

var ErrUnknownCap = errors.New("unknown line cap")

func ParseCap(s string) (Cap, error) {
	switch c := Cap(strings.ToLower(strings.TrimSpace(s))); c {
	case CapButt, CapRound:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCap, s)
}

func (c Cap) lineCap() gg.LineCap {
	if c == CapRound {
		return gg.LineCapRound
	}
	return gg.LineCapButt
}

type Renderer struct {
	surface   Surface
	circle    geometry.Circle
	thickness float64
	cap       Cap
}

func New(surface Surface, circle geometry.Circle, thickness float64, cap Cap) *Renderer {
	return &Renderer{
		surface:   surface,
		circle:    circle,
		thickness: thickness,
		cap:       cap,
	}
}

func (r *Renderer) Surface() Surface { return r.surface }

func (r *Renderer) Circle() geometry.Circle { return r.circle }

// Draw clears the surface and strokes the background and foreground arcs
// split at split. With reverse set the foreground fills from the end of the
// track instead of the start.
func (r *Renderer) Draw(bounds geometry.Bounds, split float64, fg, bg color.Color, reverse bool) error {
	r.surface.Clear()
	r.surface.SetLineWidth(r.thickness)
	r.surface.SetLineCap(r.cap.lineCap())

	bgFrom, bgTo := split, bounds.End
	fgFrom, fgTo := bounds.Start, split
	if reverse {
		bgFrom, bgTo = bounds.Start, split
		fgFrom, fgTo = split, bounds.End
	}

	var errs []error
	if err := r.arc(bgFrom, bgTo, bg); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if err := r.arc(fgFrom, fgTo, fg); err != nil {
		errs = append(errs, fmt.Errorf("foreground: %w", err))
	}
	return errors.Join(errs...)
}

func (r *Renderer) arc(from, to float64, c color.Color) error {
	if from >= to || r.circle.Radius <= 0 {
		return nil
	}
	r.surface.SetColor(c)
	r.surface.DrawArc(r.circle.CX, r.circle.CY, r.circle.Radius, from, to)
	return r.surface.Stroke()
}
