// Package effects implements Streamers which modify other Streamers.
package effects

import (
	"math"

	"github.com/faiface/siggen"
)

// Volume adjusts the gain of Streamer exponentially: the gain is Base^Volume. With Base 2,
// every step of Volume doubles or halves the level. Silent mutes the Streamer.
type Volume struct {
	Streamer siggen.Streamer
	Base     float64
	Volume   float64
	Silent   bool
}

// Stream streams the wrapped Streamer with the gain applied.
func (v *Volume) Stream(samples []float64) (n int, ok bool) {
	n, ok = v.Streamer.Stream(samples)
	gain := 0.0
	if !v.Silent {
		gain = math.Pow(v.Base, v.Volume)
	}
	for i := range samples[:n] {
		samples[i] *= gain
	}
	return n, ok
}

// Err propagates the wrapped Streamer's errors.
func (v *Volume) Err() error {
	return v.Streamer.Err()
}
