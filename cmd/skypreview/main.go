// Command skypreview renders the night-sky scene headlessly and writes the
// final frame as a PNG. It exists for tuning configs without a GPU host:
// point it at a YAML config, let the scene run for a simulated stretch and
// inspect the output.
//
// Usage:
//
//	skypreview -width 1920 -height 1080 -seconds 30 -out sky.png
//	skypreview -config scene.yaml -seed 7 -out sky.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/nightsky"
)

func main() {
	var (
		width      = flag.Int("width", 1920, "frame width in pixels")
		height     = flag.Int("height", 1080, "frame height in pixels")
		seconds    = flag.Float64("seconds", 30, "simulated scene time")
		fps        = flag.Float64("fps", 30, "simulated tick rate")
		seed       = flag.Uint64("seed", 0, "random seed (0 = time-based)")
		configPath = flag.String("config", "", "YAML config file (optional)")
		out        = flag.String("out", "sky.png", "output PNG path")
		verbose    = flag.Bool("v", false, "enable info logging to stderr")
	)
	flag.Parse()

	if *verbose {
		nightsky.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "skypreview:", err)
		os.Exit(1)
	}

	opts := []nightsky.Option{}
	if *seed != 0 {
		opts = append(opts, nightsky.WithRand(rand.New(rand.NewPCG(*seed, *seed))))
	}

	if err := run(*width, *height, *seconds, *fps, cfg, *out, opts); err != nil {
		fmt.Fprintln(os.Stderr, "skypreview:", err)
		os.Exit(1)
	}
}

// loadConfig returns the stock config with the YAML file's fields, if any,
// layered on top. Absent fields keep their defaults.
func loadConfig(path string) (nightsky.Config, error) {
	cfg := nightsky.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// run ticks the scene at the given rate for the simulated duration and
// saves the last composited frame.
func run(width, height int, seconds, fps float64, cfg nightsky.Config, out string, opts []nightsky.Option) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %v", fps)
	}

	engine := nightsky.NewEngine(opts...)
	comp := nightsky.NewCompositor(width, height)
	defer comp.Close()

	dt := 1 / fps
	ticks := int(seconds * fps)
	if ticks < 1 {
		ticks = 1
	}

	for i := 0; i < ticks; i++ {
		frame := engine.Advance(dt, width, height, cfg)
		if i == ticks-1 {
			pm, err := comp.RenderToPixmap(frame)
			if err != nil {
				return fmt.Errorf("composite frame: %w", err)
			}
			if err := pm.SavePNG(out); err != nil {
				return fmt.Errorf("save %s: %w", out, err)
			}
		} else if _, err := comp.RenderToPixmap(frame); err != nil {
			return fmt.Errorf("composite frame: %w", err)
		}
	}

	fmt.Printf("wrote %s (%dx%d, %d ticks)\n", out, width, height, ticks)
	return nil
}
