package siggen_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/faiface/siggen"
	"github.com/stretchr/testify/require"
)

func TestFormatEncodeDecode(t *testing.T) {
	for _, numChannels := range []int{1, 2, 3} {
		for _, precision := range []int{1, 2, 3, 4} {
			format := siggen.Format{SampleRate: 44100, NumChannels: numChannels, Precision: precision}
			deviation := 2.0 / (math.Pow(2, float64(format.Precision)*8) - 2)
			tmp := make([]byte, format.Width())

			for i := 0; i < 20; i++ {
				sample := rand.Float64()*2 - 1

				require.Equal(t, format.Width(), format.EncodeSigned(tmp, sample))
				decoded, _ := format.DecodeSigned(tmp)
				require.InDelta(t, sample, decoded, deviation, "signed, format %+v", format)

				format.EncodeUnsigned(tmp, sample)
				decoded, _ = format.DecodeUnsigned(tmp)
				require.InDelta(t, sample, decoded, deviation, "unsigned, format %+v", format)
			}
		}
	}
}

func TestFormatClips(t *testing.T) {
	format := siggen.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	tmp := make([]byte, format.Width())

	format.EncodeSigned(tmp, 3)
	decoded, _ := format.DecodeSigned(tmp)
	require.InDelta(t, 1, decoded, 1e-4)

	format.EncodeSigned(tmp, -3)
	decoded, _ = format.DecodeSigned(tmp)
	require.InDelta(t, -1, decoded, 1e-4)
}
