// Package generators implements pull-based Streamers of synthetic signals.
package generators

import (
	"math"

	"github.com/faiface/siggen"
	"github.com/pkg/errors"
)

type cosineGenerator struct {
	p  siggen.Parameters
	dt float64 // cycles per sample
	t  float64 // position within the current cycle
}

// CosineTone creates a streamer which will produce an infinite cosine with the phase, amplitude
// and frequency of p, sampled at sr. p.SampleFrequency and p.Duration are ignored.
//
// sr must be at least two times greater than the frequency, otherwise CosineTone returns an
// error.
func CosineTone(sr int, p siggen.Parameters) (siggen.Streamer, error) {
	if sr <= 0 {
		return nil, errors.Errorf("generators: cosine tone: invalid sample rate: %d", sr)
	}
	dt := math.Abs(p.Frequency) / float64(sr)
	if dt >= 1.0/2.0 {
		return nil, errors.New("generators: cosine tone: sample rate must be at least 2 times greater than frequency")
	}
	if p.Frequency < 0 {
		dt = -dt
	}
	return &cosineGenerator{p: p, dt: dt}, nil
}

func (g *cosineGenerator) Stream(samples []float64) (n int, ok bool) {
	for i := range samples {
		samples[i] = g.p.Amplitude * math.Cos(2*math.Pi*g.t+g.p.Phase)
		_, g.t = math.Modf(g.t + g.dt)
	}
	return len(samples), true
}

func (*cosineGenerator) Err() error {
	return nil
}
