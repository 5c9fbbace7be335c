package siggen_test

import (
	"math"
	"testing"

	"github.com/faiface/siggen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParametersCapacity(t *testing.T) {
	cases := []struct {
		Name            string
		Duration        float64
		SampleFrequency float64
		Capacity        int
	}{
		{"Scenario", 0.3, 10, 3},
		{"ZeroDuration", 0, 10, 0},
		{"Fractional", 0.25, 10, 2},
		{"RoundingError", 0.29, 100, 29},
		{"Large", 2, 44100, 88200},
		{"SubSample", 0.05, 10, 0},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			p := siggen.Parameters{Duration: c.Duration, SampleFrequency: c.SampleFrequency}
			assert.Equal(t, c.Capacity, p.Capacity())
		})
	}
}

func TestParametersAt(t *testing.T) {
	p := siggen.Parameters{Phase: math.Pi / 2, Amplitude: 2, Frequency: 1}
	assert.InDelta(t, 0, p.At(0), 1e-12)
	assert.InDelta(t, -2, p.At(0.25), 1e-12)

	p = siggen.Parameters{Amplitude: 1, Frequency: 1}
	assert.InDelta(t, 0.809017, p.At(0.1), 1e-6)
	assert.InDelta(t, 0.309017, p.At(0.2), 1e-6)
	assert.InDelta(t, -0.309017, p.At(0.3), 1e-6)
}

func TestParametersInterval(t *testing.T) {
	p := siggen.Parameters{SampleFrequency: 4}
	assert.Equal(t, 0.25, p.Interval())
}

func TestParametersValidate(t *testing.T) {
	valid := siggen.Parameters{Amplitude: 1, Frequency: 1, SampleFrequency: 10, Duration: 1}
	require.NoError(t, valid.Validate())

	zeroDuration := valid
	zeroDuration.Duration = 0
	require.NoError(t, zeroDuration.Validate())

	for name, change := range map[string]siggen.Change{
		"ZeroSampleFrequency":     siggen.SampleFrequency(0),
		"NegativeSampleFrequency": siggen.SampleFrequency(-10),
		"NegativeDuration":        siggen.Duration(-1),
		"NaNPhase":                siggen.Phase(math.NaN()),
		"InfAmplitude":            siggen.Amplitude(math.Inf(1)),
		"InfFrequency":            siggen.Frequency(math.Inf(-1)),
	} {
		t.Run(name, func(t *testing.T) {
			p := valid
			change(&p)
			require.ErrorIs(t, p.Validate(), siggen.ErrInvalidParameters)
		})
	}
}
