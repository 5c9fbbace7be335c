package siggen

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidParameters is returned when a parameter set can't drive a generator.
var ErrInvalidParameters = errors.New("siggen: invalid parameters")

// capacityTolerance absorbs floating point error in duration*sampleFrequency, so that
// products which are integers on paper (0.29*100) don't floor to one less.
const capacityTolerance = 1e-9

// Parameters describe a cosine signal and the window of history kept for it.
type Parameters struct {
	// Phase is added to the oscillator argument, in radians.
	Phase float64

	// Amplitude multiplies the cosine.
	Amplitude float64

	// Frequency is the oscillator frequency in Hz.
	Frequency float64

	// SampleFrequency is the number of samples per second of simulated time. Must be > 0.
	SampleFrequency float64

	// Duration is the number of seconds of history to retain. Must be >= 0.
	Duration float64
}

// Capacity returns the number of samples held by a history of p.Duration seconds.
func (p Parameters) Capacity() int {
	c := p.Duration * p.SampleFrequency
	if c <= 0 || math.IsNaN(c) {
		return 0
	}
	return int(math.Floor(c + capacityTolerance))
}

// Interval returns the simulated time between two samples.
func (p Parameters) Interval() float64 {
	return 1 / p.SampleFrequency
}

// At evaluates the cosine at time t.
func (p Parameters) At(t float64) float64 {
	return p.Amplitude * math.Cos(2*math.Pi*p.Frequency*t+p.Phase)
}

// Validate checks that p can drive a generator. The returned error wraps
// ErrInvalidParameters.
func (p Parameters) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"phase", p.Phase},
		{"amplitude", p.Amplitude},
		{"frequency", p.Frequency},
		{"sample frequency", p.SampleFrequency},
		{"duration", p.Duration},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.Wrapf(ErrInvalidParameters, "%s must be finite: %v", f.name, f.value)
		}
	}
	if p.SampleFrequency <= 0 {
		return errors.Wrapf(ErrInvalidParameters, "sample frequency must be > 0: %v", p.SampleFrequency)
	}
	if p.Duration < 0 {
		return errors.Wrapf(ErrInvalidParameters, "duration must be >= 0: %v", p.Duration)
	}
	return nil
}

// Change modifies a parameter set. Changes are applied by Generator.Reconfigure.
type Change func(p *Parameters)

// Phase returns a Change which sets the phase.
func Phase(v float64) Change {
	return func(p *Parameters) { p.Phase = v }
}

// Amplitude returns a Change which sets the amplitude.
func Amplitude(v float64) Change {
	return func(p *Parameters) { p.Amplitude = v }
}

// Frequency returns a Change which sets the oscillator frequency.
func Frequency(v float64) Change {
	return func(p *Parameters) { p.Frequency = v }
}

// SampleFrequency returns a Change which sets the sample frequency. It resizes the history.
func SampleFrequency(v float64) Change {
	return func(p *Parameters) { p.SampleFrequency = v }
}

// Duration returns a Change which sets the history duration. It resizes the history.
func Duration(v float64) Change {
	return func(p *Parameters) { p.Duration = v }
}
