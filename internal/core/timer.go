package core

import "time"

// FixedStep helps run playback updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	return newFixedStep(tps, time.Now)
}

func newFixedStep(tps int, now func() time.Time) *FixedStep {
	fs := &FixedStep{now: now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Steps reports how many ticks have elapsed since the previous call. The
// first call always yields one tick.
func (f *FixedStep) Steps() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	n := int(f.accumulator / f.step)
	f.accumulator -= time.Duration(n) * f.step
	return n
}

// Playback reveals a drawing path by path in plot order.
type Playback struct {
	clock   *FixedStep
	total   int
	shown   int
	perTick int
	paused  bool
}

// NewPlayback reveals perTick paths per tick at tps ticks per second.
func NewPlayback(total, tps, perTick int) *Playback {
	return newPlayback(total, perTick, NewFixedStep(tps))
}

func newPlayback(total, perTick int, clock *FixedStep) *Playback {
	if perTick <= 0 {
		perTick = 1
	}
	return &Playback{clock: clock, total: total, perTick: perTick}
}

// Advance moves playback forward by the elapsed ticks and returns how many
// paths are visible.
func (p *Playback) Advance() int {
	ticks := p.clock.Steps()
	if !p.paused && p.shown < p.total {
		p.shown = min(p.total, p.shown+ticks*p.perTick)
	}
	return p.shown
}

// Shown is the number of visible paths.
func (p *Playback) Shown() int { return p.shown }

// Done reports whether every path is visible.
func (p *Playback) Done() bool { return p.shown >= p.total }

// TogglePause pauses or resumes playback.
func (p *Playback) TogglePause() { p.paused = !p.paused }

// Paused reports whether playback is paused.
func (p *Playback) Paused() bool { return p.paused }

// Restart hides everything and replays a drawing of total paths.
func (p *Playback) Restart(total int) {
	p.total = total
	p.shown = 0
}

// Finish shows every path at once.
func (p *Playback) Finish() { p.shown = p.total }
