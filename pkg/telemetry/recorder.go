// Package telemetry writes per-frame statistics of a finale run as CSV.
package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/decker502/fireworks/pkg/fireworks"
)

// FrameRecord is one CSV row.
type FrameRecord struct {
	Frame     int    `csv:"frame"`
	ElapsedMs int64  `csv:"elapsed_ms"`
	State     string `csv:"state"`

	ActiveProjectiles  int `csv:"active_projectiles"`
	PooledProjectiles  int `csv:"pooled_projectiles"`
	CreatedProjectiles int `csv:"created_projectiles"`
	ActiveParticles    int `csv:"active_particles"`
	PooledParticles    int `csv:"pooled_particles"`
	CreatedParticles   int `csv:"created_particles"`

	Launches    int  `csv:"launches"`
	Detonations int  `csv:"detonations"`
	Strokes     int  `csv:"strokes"`
	Captions    int  `csv:"captions"`
	Restart     bool `csv:"restart_ready"`
}

// NewFrameRecord builds a row from a director snapshot. strokes is the
// number of line segments drawn during the frame.
func NewFrameRecord(d *fireworks.Director, strokes int) FrameRecord {
	s := d.Engine().Stats()
	return FrameRecord{
		Frame:              s.Frames,
		ElapsedMs:          d.Elapsed().Milliseconds(),
		State:              d.State().String(),
		ActiveProjectiles:  s.ActiveProjectiles,
		PooledProjectiles:  s.PooledProjectiles,
		CreatedProjectiles: s.CreatedProjectiles,
		ActiveParticles:    s.ActiveParticles,
		PooledParticles:    s.PooledParticles,
		CreatedParticles:   s.CreatedParticles,
		Launches:           s.Launches,
		Detonations:        s.Detonations,
		Strokes:            strokes,
		Captions:           d.CaptionsShown(),
		Restart:            d.RestartReady(),
	}
}

// Recorder appends FrameRecords to a writer. The header is written with
// the first record. A nil Recorder discards everything.
type Recorder struct {
	out           io.Writer
	every         int
	headerWritten bool
	written       int
}

// NewRecorder returns a recorder keeping one frame out of every. every < 1
// keeps all frames.
func NewRecorder(out io.Writer, every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{out: out, every: every}
}

// Write writes one record unconditionally.
func (r *Recorder) Write(rec FrameRecord) error {
	if r == nil {
		return nil
	}

	records := []FrameRecord{rec}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}
	r.written++
	return nil
}

// Record samples the director after a frame, honouring the sampling rate.
func (r *Recorder) Record(d *fireworks.Director, strokes int) error {
	if r == nil {
		return nil
	}
	rec := NewFrameRecord(d, strokes)
	if rec.Frame%r.every != 0 {
		return nil
	}
	return r.Write(rec)
}

// Written returns the number of rows written.
func (r *Recorder) Written() int {
	if r == nil {
		return 0
	}
	return r.written
}

// Summary is the aggregate of a whole run.
type Summary struct {
	Frames          int
	Elapsed         time.Duration
	FinalState      fireworks.State
	Launches        int
	Detonations     int
	PeakProjectiles int
	PeakParticles   int
	Captions        int
	RestartReady    bool
}

// Summarize returns the aggregate of the director's run so far.
func Summarize(d *fireworks.Director) Summary {
	s := d.Engine().Stats()
	return Summary{
		Frames:          s.Frames,
		Elapsed:         d.Elapsed(),
		FinalState:      d.State(),
		Launches:        s.Launches,
		Detonations:     s.Detonations,
		PeakProjectiles: s.PeakProjectiles,
		PeakParticles:   s.PeakParticles,
		Captions:        d.CaptionsShown(),
		RestartReady:    d.RestartReady(),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("frames=%d elapsed=%v state=%s launches=%d detonations=%d peak_projectiles=%d peak_particles=%d captions=%d restart=%t",
		s.Frames, s.Elapsed, s.FinalState, s.Launches, s.Detonations, s.PeakProjectiles, s.PeakParticles, s.Captions, s.RestartReady)
}
