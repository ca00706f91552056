// Command gaugerender renders one gauge transition of a dashboard to a PNG
// sequence, frame-0000.png and up.
package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/presets"
	"github.com/roffe/txgauge/pkg/snapshot"
	"github.com/skratchdot/open-golang/open"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
}

type CLI struct {
	Config  string  `help:"Dashboard file (json, yaml or toml)" short:"c" type:"existingfile"`
	Preset  string  `help:"Built-in or saved preset, used when no config file is given" short:"p" default:"Demo"`
	Index   int     `help:"Gauge index in the dashboard" short:"i" default:"0"`
	From    float64 `help:"Value the transition starts at" default:"0"`
	To      float64 `help:"Value the transition ends at" required:""`
	FPS     int     `help:"Frames per second" name:"fps" default:"30"`
	Out     string  `help:"Output directory" short:"o" type:"path" default:"frames"`
	Workers int     `help:"Concurrent PNG encoders" default:"4"`
	Stamp   bool    `help:"Draw value text and label into the frames" default:"true" negatable:""`
	Open    bool    `help:"Open the output directory when done"`
	Debug   bool    `help:"Enable debug logging" short:"d"`
}

func (c *CLI) dashboard() (*config.Dashboard, error) {
	if c.Config != "" {
		return config.Load(c.Config)
	}
	return presets.Get(c.Preset)
}

func (c *CLI) Run(ctx context.Context) error {
	if c.Debug {
		gauge.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	d, err := c.dashboard()
	if err != nil {
		return err
	}
	gc, err := d.Gauge(c.Index)
	if err != nil {
		return err
	}
	cfg, err := gc.EngineConfig()
	if err != nil {
		return err
	}

	frames, err := snapshot.Sequence(cfg, c.From, c.To, c.FPS)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	if c.Workers > 0 {
		g.SetLimit(c.Workers)
	}
	for _, f := range frames {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			var img image.Image = f.Image
			if c.Stamp {
				img = snapshot.Stamp(f.Image, color.White, f.Text, cfg.Label)
			}
			return snapshot.WriteFile(filepath.Join(c.Out, snapshot.FrameName(f.Index)), img)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Printf("wrote %d frames of %q to %s", len(frames), gc.Title, c.Out)
	if c.Open {
		if err := open.Run(c.Out); err != nil {
			return fmt.Errorf("failed to open output directory: %w", err)
		}
	}
	return nil
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("gaugerender"),
		kong.Description("Render an arc gauge transition to PNG frames"),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cli.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
