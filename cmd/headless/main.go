// Package main runs the finale without a window and writes per-frame
// telemetry as CSV. Useful for tuning the show and checking pool behaviour.
//
// Usage:
//
//	go run ./cmd/headless [flags]
//
// Flags:
//
//	--frames <n>       Number of 60 Hz frames to simulate (default 1200)
//	--seed <n>         Random seed (default 1)
//	--out <file>       CSV output path, "-" for stdout (default "-")
//	--every <n>        Keep one row every n frames (default 1)
//	--width/--height   Logical viewport size (default 800x600)
//	--ratio <r>        Device pixel ratio (default 1)
//	--mobile           Force mobile spark counts
//	--config <file>    YAML config overriding the built-in defaults
//	--tap-every <n>    Simulate a click at a random point every n frames
//	--verbose          Enable logging
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/fireworks"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/telemetry"
)

var (
	framesFlag   = flag.Int("frames", 1200, "Number of frames to simulate")
	seedFlag     = flag.Uint64("seed", 1, "Random seed")
	outFlag      = flag.String("out", "-", "CSV output path, - for stdout")
	everyFlag    = flag.Int("every", 1, "Keep one row every n frames")
	widthFlag    = flag.Float64("width", 800, "Logical viewport width")
	heightFlag   = flag.Float64("height", 600, "Logical viewport height")
	ratioFlag    = flag.Float64("ratio", 1, "Device pixel ratio")
	mobileFlag   = flag.Bool("mobile", false, "Force mobile spark counts")
	configFlag   = flag.String("config", "", "YAML config file")
	tapEveryFlag = flag.Int("tap-every", 0, "Simulate a click every n frames (0 disables)")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "headless: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.DefaultFireworksConfig()
	if *configFlag != "" {
		c, err := config.LoadFireworksConfig(*configFlag)
		if err != nil {
			return err
		}
		cfg = c
	}

	palette, err := fireworks.NewPalette(cfg)
	if err != nil {
		return err
	}

	v := fireworks.NewViewport(*widthFlag, *heightFlag, *ratioFlag, cfg.Display.PixelRatioCap)
	device := v.Device(cfg.Display.MobileBreakpoint)
	if *mobileFlag {
		device = fireworks.DeviceMobile
	}

	var out io.Writer = os.Stdout
	if *outFlag != "-" {
		f, err := os.Create(*outFlag)
		if err != nil {
			return fmt.Errorf("creating %s: %w", *outFlag, err)
		}
		defer f.Close()
		out = f
	}

	surface := &render.CountingSurface{}
	engine := fireworks.NewEngine(fireworks.NewTuning(cfg, device), fireworks.NewRandom(*seedFlag), surface)
	director := fireworks.NewDirector(engine, fireworks.NewRandom(*seedFlag+1), palette, fireworks.NewShow(cfg), fireworks.Hooks{
		OnCaption: func(c fireworks.Caption) {
			log.Printf("[Headless] caption %d at %v: %s", c.Index, c.At, c.Text)
		},
	})
	director.Start(v)

	taps := fireworks.NewRandom(*seedFlag + 2)
	rec := telemetry.NewRecorder(out, *everyFlag)
	dt := time.Second / 60
	for i := 1; i <= *framesFlag; i++ {
		if *tapEveryFlag > 0 && i%*tapEveryFlag == 0 {
			director.OnPointerDown(taps.Between(0, v.Width), taps.Between(0, v.Height*0.8))
		}
		director.Update(dt)
		if err := rec.Record(director, surface.TakeStrokes()); err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stderr, telemetry.Summarize(director))
	return nil
}
