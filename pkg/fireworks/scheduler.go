package fireworks

import "time"

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id       TimerID
	due      time.Duration
	interval time.Duration
	seq      uint64
	fn       func()
}

// Scheduler is a tick-driven timer queue. Time only moves when Advance is
// called, which makes every timed step of the show reproducible in tests.
type Scheduler struct {
	now    time.Duration
	timers []*timer
	nextID TimerID
	seq    uint64
}

// NewScheduler returns a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of scheduled timers.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	return s.add(d, 0, fn)
}

// Every runs fn every d, the first time d from now. Non-positive intervals
// are clamped to one millisecond.
func (s *Scheduler) Every(d time.Duration, fn func()) TimerID {
	if d <= 0 {
		d = time.Millisecond
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(d, interval time.Duration, fn func()) TimerID {
	s.nextID++
	s.seq++
	s.timers = append(s.timers, &timer{
		id:       s.nextID,
		due:      s.now + d,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	})
	return s.nextID
}

// Cancel removes the timer. It reports whether the timer was still pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending timer.
func (s *Scheduler) CancelAll() {
	clear(s.timers)
	s.timers = s.timers[:0]
}

// Advance moves the clock forward by dt and fires every timer that falls due,
// in due-time order with ties broken by registration order. Callbacks may
// schedule or cancel timers; new timers due within the window also fire.
// It returns the number of callbacks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	end := s.now + dt
	fired := 0
	for {
		i := s.nextDue(end)
		if i < 0 {
			break
		}
		t := s.timers[i]
		s.now = t.due
		if t.interval > 0 {
			t.due += t.interval
			s.seq++
			t.seq = s.seq
		} else {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
		}
		t.fn()
		fired++
	}
	s.now = end
	return fired
}

func (s *Scheduler) nextDue(end time.Duration) int {
	best := -1
	for i, t := range s.timers {
		if t.due > end {
			continue
		}
		if best < 0 || t.due < s.timers[best].due ||
			(t.due == s.timers[best].due && t.seq < s.timers[best].seq) {
			best = i
		}
	}
	return best
}
