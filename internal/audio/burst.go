// Package audio synthesizes the detonation sound of the terminal finale.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// BurstGenerator produces a short firework pop: a low thump under a
// crackle of filtered noise, both with an exponential decay.
type BurstGenerator struct {
	sr     beep.SampleRate
	pos    int
	seed   uint32
	thump  float64 // Hz
	decay  float64 // envelope rate, 1/s
	volume float64
	lp     float64
}

// NewBurstGenerator creates a generator. Bigger bursts use a lower thump
// and a slower decay.
func NewBurstGenerator(sr beep.SampleRate, big bool, seed uint32) *BurstGenerator {
	g := &BurstGenerator{sr: sr, seed: seed | 1, thump: 95, decay: 14, volume: 0.35}
	if big {
		g.thump, g.decay, g.volume = 60, 6, 0.6
	}
	return g
}

func (g *BurstGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * g.decay)

		// xorshift 噪声 + 一阶低通
		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1
		g.lp += 0.35 * (noise - g.lp)

		s := g.volume * env * (0.6*g.lp + 0.4*math.Sin(2*math.Pi*g.thump*t))
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *BurstGenerator) Err() error {
	return nil
}

// Burst returns a finite pop streamer.
func Burst(sr beep.SampleRate, big bool, seed uint32) beep.Streamer {
	d := 250 * time.Millisecond
	if big {
		d = 900 * time.Millisecond
	}
	return beep.Take(sr.N(d), NewBurstGenerator(sr, big, seed))
}

// Player plays bursts through the speaker. A zero or failed Player is silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	seed        uint32
}

// NewPlayer creates a silent player; call Init to enable output.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}, seed: uint32(time.Now().UnixNano())}
}

// Init opens the speaker. Errors are returned so callers may continue
// without sound.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether Init succeeded.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// PlayBurst queues one pop.
func (p *Player) PlayBurst(big bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.seed += 0x9e3779b9
	speaker.Lock()
	p.mixer.Add(Burst(sampleRate, big, p.seed))
	speaker.Unlock()
}

// Close clears pending sounds and closes the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
