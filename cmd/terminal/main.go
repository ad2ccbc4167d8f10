// Package main plays the finale in a terminal.
//
// Usage:
//
//	go run ./cmd/terminal [flags]
//
// Flags:
//
//	--seed <n>       Random seed (default: current time)
//	--config <file>  YAML config overriding the built-in defaults
//	--mute           Disable detonation sounds
//	--verbose        Log to stderr (garbles the screen, for debugging)
//
// Controls:
//
//	Mouse Click  - Launch a firework towards the clicked cell
//	R            - Replay (once the replay hint is shown)
//	Q/Escape     - Quit
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/fireworks/internal/audio"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/fireworks"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/utils"
)

var (
	seedFlag    = flag.Uint64("seed", 0, "Random seed (0 uses the current time)")
	configFlag  = flag.String("config", "", "YAML config file")
	muteFlag    = flag.Bool("mute", false, "Disable detonation sounds")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

var (
	captionStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 244, 214)).Bold(true)
	hintStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Finale is the terminal rendition of the show.
type Finale struct {
	screen   tcell.Screen
	surface  *render.TerminalSurface
	cfg      *config.FireworksConfig
	palette  []color.NRGBA
	player   *audio.Player
	seed     uint64
	director *fireworks.Director
	captions []fireworks.Caption
	buttons  tcell.ButtonMask // 上一个鼠标事件的按键状态
	quit     chan struct{}
}

// NewFinale opens the screen and starts the first show.
func NewFinale() (*Finale, error) {
	cfg := config.DefaultFireworksConfig()
	if *configFlag != "" {
		c, err := config.LoadFireworksConfig(*configFlag)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	palette, err := fireworks.NewPalette(cfg)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	player := audio.NewPlayer()
	if !*muteFlag {
		if err := player.Init(); err != nil {
			// 没有声音也可以继续
			log.Printf("Audio initialization failed: %v", err)
		}
	}
	return newFinale(screen, cfg, palette, player, seed), nil
}

// newFinale wires an initialized screen and starts the first show.
func newFinale(screen tcell.Screen, cfg *config.FireworksConfig, palette []color.NRGBA, player *audio.Player, seed uint64) *Finale {
	f := &Finale{
		screen:  screen,
		cfg:     cfg,
		palette: palette,
		player:  player,
		seed:    seed,
		quit:    make(chan struct{}),
	}
	cols, rows := screen.Size()
	f.surface = render.NewTerminalSurface(cols, rows)
	f.start()
	return f
}

// start builds a fresh engine and director on the current screen size.
func (f *Finale) start() {
	if f.director != nil {
		f.director.Stop()
	}
	f.captions = f.captions[:0]

	cols, rows := f.screen.Size()
	v := render.ViewportFor(cols, rows)
	// 终端按桌面处理，除非强制移动模式
	device := fireworks.DeviceDesktop
	if utils.IsMobile() {
		device = fireworks.DeviceMobile
	}

	engine := fireworks.NewEngine(fireworks.NewTuning(f.cfg, device), fireworks.NewRandom(f.seed), f.surface)
	engine.OnDetonate(func(d fireworks.Detonation) {
		f.player.PlayBurst(d.Category == fireworks.CategoryMain)
	})
	f.director = fireworks.NewDirector(engine, fireworks.NewRandom(f.seed+1), f.palette, fireworks.NewShow(f.cfg), fireworks.Hooks{
		OnCaption: func(c fireworks.Caption) {
			f.captions = append(f.captions, c)
		},
	})
	f.director.Start(v)
	f.seed += 1000
}

func (f *Finale) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'r', 'R':
				if f.director.RestartReady() {
					f.start()
				}
			}
		}

	case *tcell.EventMouse:
		// 拖动和移动也会产生鼠标事件，只在左键从松开变为按下时发射
		pressed := ev.Buttons()&tcell.Button1 != 0 && f.buttons&tcell.Button1 == 0
		f.buttons = ev.Buttons()
		if pressed {
			x, y := ev.Position()
			// 点击单元格中心
			f.director.OnPointerDown(
				(float64(x)+0.5)*render.DefaultCellWidth,
				(float64(y)+0.5)*render.DefaultCellHeight)
		}

	case *tcell.EventResize:
		f.screen.Sync()
		cols, rows := f.screen.Size()
		f.director.OnResize(render.ViewportFor(cols, rows))
	}

	return true
}

func (f *Finale) draw() {
	f.surface.Flush(f.screen)

	cols, rows := f.screen.Size()
	now := f.director.Elapsed()
	top := rows * 2 / 3
	for i, c := range f.captions {
		// 终端无法做平滑位移，显示进度过半后再出现
		if utils.Progress((now - c.At).Seconds(), c.Reveal.Seconds()) < 0.5 {
			continue
		}
		drawCentered(f.screen, cols, top+i, c.Text, captionStyle)
	}
	if f.director.RestartReady() {
		drawCentered(f.screen, cols, top+len(f.cfg.Captions)+1, "[r] "+f.cfg.RestartLabel, hintStyle)
	}
	f.screen.Show()
}

func drawCentered(screen tcell.Screen, cols, y int, s string, style tcell.Style) {
	runes := []rune(s)
	x := (cols - len(runes)) / 2
	for i, r := range runes {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func (f *Finale) run() {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go f.pollEvents(eventChan)
	defer close(f.quit)

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !f.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			f.director.Update(now.Sub(last))
			last = now
			f.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or run returns.
func (f *Finale) pollEvents(out chan<- tcell.Event) {
	for {
		ev := f.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-f.quit:
			return
		}
	}
}

func (f *Finale) cleanup() {
	f.director.Stop()
	f.player.Close()
	f.screen.Fini()
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	f, err := NewFinale()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer f.cleanup()

	f.run()
}
