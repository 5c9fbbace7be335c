package siggen

import (
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultPacing is the delay between two ticks of a Generator, unless changed with WithPacing.
const DefaultPacing = 20 * time.Millisecond

// Subscriber is called by a Generator once per tick with the whole retained history, oldest
// sample first. The history slice belongs to the Subscriber.
//
// Subscribers run on the generation goroutine and the loop doesn't advance until they return.
// A Subscriber must not call Stop, Close or Reconfigure on g, since those wait for it to return.
type Subscriber func(g *Generator, history []float64)

// Option configures a Generator.
type Option func(g *Generator)

// WithPacing sets the delay between two ticks. Zero or negative means no delay.
func WithPacing(d time.Duration) Option {
	return func(g *Generator) {
		g.pacing = d
	}
}

type state int

const (
	stateIdle           state = iota // no loop
	stateRunning                     // loop generating
	statePauseRequested              // loop finishing its current tick
	statePaused                      // loop suspended in its checkpoint
	stateClosing                     // loop asked to return from Start
)

type subscription struct {
	id int
	fn Subscriber
}

// Generator produces samples of a cosine at a fixed cadence, keeps a rolling history of the
// most recent ones and hands that history to its subscribers every tick.
//
// The generation loop runs in whatever goroutine calls Start. All other methods are safe to
// call from other goroutines. Changing parameters pauses the loop, resets the history and the
// time cursor and resumes the loop if it was running.
//
// The zero value is an unconfigured Generator: Start on it does nothing.
type Generator struct {
	mu    sync.Mutex
	cond  *sync.Cond
	wake  chan struct{}
	state state

	params  Parameters
	history *History
	index   int // ticks since the cursor last wrapped

	pacing time.Duration
	opts   []Option

	subs   []subscription
	nextID int
}

// New creates a Generator with its history allocated for p. The generator is idle until Start.
//
// New returns an error wrapping ErrInvalidParameters if p doesn't validate.
func New(p Parameters, opts ...Option) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return newGenerator(p, opts), nil
}

func newGenerator(p Parameters, opts []Option) *Generator {
	g := &Generator{
		params:  p,
		history: NewHistory(p.Capacity()),
		pacing:  DefaultPacing,
		opts:    opts,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.init()
	return g
}

// init must be called with g.mu held, or before g is shared.
func (g *Generator) init() {
	if g.cond == nil {
		g.cond = sync.NewCond(&g.mu)
		g.wake = make(chan struct{}, 1)
	}
}

// Copy returns a new idle Generator with the same parameters as g. The options g was created
// with, such as its pacing, carry over too. The copy shares no history, subscribers or running
// state with g.
func (g *Generator) Copy() *Generator {
	g.mu.Lock()
	p, opts := g.params, g.opts
	g.mu.Unlock()
	return newGenerator(p, opts)
}

// Subscribe registers s to be called on every tick. Calling cancel removes it again.
func (g *Generator) Subscribe(s Subscriber) (cancel func()) {
	if s == nil {
		return func() {}
	}
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.subs = append(g.subs, subscription{id: id, fn: s})
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			for i := range g.subs {
				if g.subs[i].id == id {
					g.subs = append(g.subs[:i:i], g.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Start runs the generation loop in the calling goroutine until Close. The history is cleared
// first.
//
// If the loop is already running, Start does nothing. If it is stopped, Start resumes it and
// returns immediately. On a Generator without a history, Start does nothing.
func (g *Generator) Start() {
	g.mu.Lock()
	if g.history == nil {
		g.mu.Unlock()
		return
	}
	g.init()
	switch g.state {
	case stateRunning, statePauseRequested, stateClosing:
		g.mu.Unlock()
		return
	case statePaused:
		g.history.Clear()
		g.resumeLocked()
		g.mu.Unlock()
		return
	}
	g.history.Clear()
	g.state = stateRunning
	capacity, pacing := g.history.Cap(), g.pacing
	g.mu.Unlock()

	glog.V(1).Infof("siggen: generation started (capacity %d, pacing %v)", capacity, pacing)
	g.run()
	glog.V(1).Info("siggen: generation loop closed")
}

// Stop pauses the loop after its current tick. It blocks until the tick, subscriber calls
// included, has completed. Stop on a Generator that isn't running does nothing.
func (g *Generator) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pauseLocked()
}

// Close makes the goroutine running Start return, and blocks until it did. The parameters and
// history are kept, and Start may be called again.
func (g *Generator) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == stateIdle {
		return
	}
	g.state = stateClosing
	g.poke()
	g.cond.Broadcast()
	for g.state != stateIdle {
		g.cond.Wait()
	}
}

// Running reports whether the loop is generating samples.
func (g *Generator) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == stateRunning || g.state == statePauseRequested
}

// Reconfigure applies changes as a single update. The loop is paused, the parameters written,
// the history resized (if the duration or sample frequency changed) or cleared, the time cursor
// reset to zero, and the loop resumed if it was running before. A stopped or never started
// Generator is not started by Reconfigure: it stays stopped with the new parameters and an empty
// history until the next Start.
//
// The changed parameters are validated before anything else happens. If they don't validate,
// Reconfigure returns an error wrapping ErrInvalidParameters and g is left untouched.
func (g *Generator) Reconfigure(changes ...Change) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.params
	for _, change := range changes {
		if change != nil {
			change(&p)
		}
	}
	if err := p.Validate(); err != nil {
		return err
	}

	g.init()
	wasRunning := g.state == stateRunning || g.state == statePauseRequested
	g.pauseLocked()

	resize := g.history == nil ||
		p.Duration != g.params.Duration ||
		p.SampleFrequency != g.params.SampleFrequency
	g.params = p
	switch {
	case g.history == nil:
		// zero value Generator, never set up by New
		g.history = NewHistory(p.Capacity())
		g.pacing = DefaultPacing
	case resize:
		g.history.Resize(p.Capacity())
	default:
		g.history.Clear()
	}
	g.index = 0

	glog.V(1).Infof("siggen: reconfigured %+v (capacity %d)", p, g.history.Cap())

	if wasRunning && g.state == statePaused {
		g.resumeLocked()
	}
	return nil
}

// SetPhase changes the phase. See Reconfigure.
func (g *Generator) SetPhase(v float64) error { return g.Reconfigure(Phase(v)) }

// SetAmplitude changes the amplitude. See Reconfigure.
func (g *Generator) SetAmplitude(v float64) error { return g.Reconfigure(Amplitude(v)) }

// SetFrequency changes the oscillator frequency. See Reconfigure.
func (g *Generator) SetFrequency(v float64) error { return g.Reconfigure(Frequency(v)) }

// SetSampleFrequency changes the sample frequency and resizes the history. See Reconfigure.
func (g *Generator) SetSampleFrequency(v float64) error {
	return g.Reconfigure(SampleFrequency(v))
}

// SetDuration changes the history duration and resizes the history. See Reconfigure.
func (g *Generator) SetDuration(v float64) error { return g.Reconfigure(Duration(v)) }

// Parameters returns the last committed parameters.
func (g *Generator) Parameters() Parameters {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.params
}

// Phase returns the last committed phase.
func (g *Generator) Phase() float64 { return g.Parameters().Phase }

// Amplitude returns the last committed amplitude.
func (g *Generator) Amplitude() float64 { return g.Parameters().Amplitude }

// Frequency returns the last committed oscillator frequency.
func (g *Generator) Frequency() float64 { return g.Parameters().Frequency }

// SampleFrequency returns the last committed sample frequency.
func (g *Generator) SampleFrequency() float64 { return g.Parameters().SampleFrequency }

// Duration returns the last committed history duration.
func (g *Generator) Duration() float64 { return g.Parameters().Duration }

// Interval returns the simulated time between two samples, 1 / SampleFrequency.
func (g *Generator) Interval() float64 { return g.Parameters().Interval() }

// Capacity returns the capacity of the history.
func (g *Generator) Capacity() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.history == nil {
		return 0
	}
	return g.history.Cap()
}

// History returns a copy of the retained samples, oldest first.
func (g *Generator) History() []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.history == nil {
		return nil
	}
	return g.history.Snapshot()
}

func (g *Generator) run() {
	for {
		history, subs := g.tick()
		for i, sub := range subs {
			h := history
			if i < len(subs)-1 {
				h = append([]float64(nil), history...)
			}
			sub.fn(g, h)
		}
		g.pace()
		if !g.checkpoint() {
			return
		}
	}
}

// tick computes one sample, pushes it and returns what the subscribers are to be told.
func (g *Generator) tick() ([]float64, []subscription) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := float64(g.index) / g.params.SampleFrequency
	if t > g.params.Duration {
		g.index, t = 0, 0
	}
	x := g.params.At(t)
	g.history.Push(x)
	g.index++

	if glog.V(3) {
		glog.Infof("siggen: t=%v sample=%v", t, x)
	}

	return g.history.Snapshot(), append([]subscription(nil), g.subs...)
}

// pace waits for the pacing delay, or less if a pause or close was requested meanwhile.
func (g *Generator) pace() {
	if g.pacing <= 0 {
		return
	}
	timer := time.NewTimer(g.pacing)
	select {
	case <-timer.C:
	case <-g.wake:
		timer.Stop()
	}
}

// checkpoint honours pause and close requests. It reports whether the loop should go on.
func (g *Generator) checkpoint() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		switch g.state {
		case stateRunning:
			return true
		case statePauseRequested:
			g.state = statePaused
			glog.V(1).Info("siggen: generation paused")
			g.cond.Broadcast()
		case stateClosing, stateIdle:
			g.state = stateIdle
			g.cond.Broadcast()
			return false
		}
		g.cond.Wait()
	}
}

// pauseLocked requests a pause and waits until the loop acknowledges it. A loop that is being
// closed is waited for until it has returned.
func (g *Generator) pauseLocked() {
	if g.state == stateRunning {
		g.state = statePauseRequested
		g.poke()
	}
	for g.state == statePauseRequested || g.state == stateClosing {
		g.cond.Wait()
	}
}

func (g *Generator) resumeLocked() {
	select {
	case <-g.wake:
	default:
	}
	g.state = stateRunning
	g.cond.Broadcast()
}

func (g *Generator) poke() {
	select {
	case g.wake <- struct{}{}:
	default:
	}
}
