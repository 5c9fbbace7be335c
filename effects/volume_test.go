package effects_test

import (
	"testing"

	"github.com/faiface/siggen"
	"github.com/faiface/siggen/effects"
	"github.com/stretchr/testify/assert"
)

func TestVolume(t *testing.T) {
	samples := []float64{0.5, -0.25, 1}

	v := &effects.Volume{Streamer: siggen.Samples(samples), Base: 2, Volume: -1}
	got := make([]float64, 3)
	n, ok := v.Stream(got)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, []float64{0.25, -0.125, 0.5}, got)
	assert.NoError(t, v.Err())

	v = &effects.Volume{Streamer: siggen.Samples(samples), Base: 2, Silent: true}
	v.Stream(got)
	assert.Equal(t, []float64{0, 0, 0}, got)
}
