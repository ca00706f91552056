// Package snapshot renders gauges without a window: whole transitions as
// frame sequences, with the value text stamped in, encoded as PNG.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"github.com/gogpu/gg"
	"github.com/roffe/txgauge/pkg/animation"
	"github.com/roffe/txgauge/pkg/gauge"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultFPS = 30
	// MaxFrames bounds a sequence; a 1200ms transition at 240 fps is 289 frames.
	MaxFrames = 10000
)

var ErrFPS = errors.New("fps must be positive")

type Frame struct {
	Index int
	At    time.Duration
	Image image.Image
	Text  string
}

// Sequence renders the transition of a gauge from one value to another at
// fps frames per second. The gauge is first settled at from, so the first
// frame shows from and the last frame shows to.
func Sequence(cfg gauge.Config, from, to float64, fps int) ([]Frame, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrFPS, fps)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dc := gg.NewContext(int(cfg.Size), int(cfg.Size))
	defer dc.Close()

	sched := animation.NewManualScheduler()
	var last image.Image
	g, err := gauge.New(cfg, dc, sched,
		gauge.WithValue(from),
		gauge.WithFrameHook(func() { last = dc.Image() }),
	)
	if err != nil {
		return nil, err
	}
	defer g.Close()

	now := time.Unix(0, 0)
	for sched.Pending() > 0 {
		sched.Step(now)
		now = now.Add(cfg.Duration)
	}

	g.SetValue(to)
	interval := time.Second / time.Duration(fps)
	var frames []Frame
	for i := 0; sched.Pending() > 0 && i < MaxFrames; i++ {
		at := time.Duration(i) * interval
		sched.Step(now.Add(at))
		frames = append(frames, Frame{Index: i, At: at, Image: last, Text: g.DisplayText()})
	}
	if len(frames) == 0 {
		// from == to, nothing to animate
		frames = append(frames, Frame{Image: last, Text: g.DisplayText()})
	}
	return frames, nil
}

// Stamp returns a copy of img with lines drawn centred around its middle.
func Stamp(img image.Image, col color.Color, lines ...string) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	lineH := face.Metrics().Height.Ceil()
	y := b.Min.Y + b.Dy()/2 - lineH*len(lines)/2 + face.Metrics().Ascent.Ceil()
	for _, line := range lines {
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(col),
			Face: face,
		}
		w := d.MeasureString(line).Ceil()
		x := b.Min.X + (b.Dx()-w)/2
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
		d.DrawString(line)
		y += lineH
	}
	return dst
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// FrameName is the file name of frame i in a sequence.
func FrameName(i int) string {
	return fmt.Sprintf("frame-%04d.png", i)
}

// WriteFile encodes img into a buffer first so a failed encode leaves no
// partial file behind.
func WriteFile(path string, img image.Image) error {
	buff := bytes.NewBuffer(nil)
	if err := Encode(buff, img); err != nil {
		return err
	}
	return os.WriteFile(path, buff.Bytes(), 0o644)
}

// Screenshot captures a window canvas into dir and returns the file path.
func Screenshot(c fyne.Canvas, dir string) (string, error) {
	filename := filepath.Join(dir, fmt.Sprintf("capture-%s.png", time.Now().Format("2006-01-02-15-04-05")))
	if err := WriteFile(filename, c.Capture()); err != nil {
		return "", err
	}
	return filename, nil
}
