// Package pcm implements encoding of generated samples as raw signed PCM.
package pcm

import (
	"bufio"
	"io"

	"github.com/faiface/siggen"
	"github.com/pkg/errors"
)

// Encode writes all samples streamed from s to w in raw PCM format.
func Encode(w io.Writer, s siggen.Streamer, format siggen.Format) error {
	if format.NumChannels <= 0 || format.Precision <= 0 {
		return errors.Errorf("pcm: invalid format: %+v", format)
	}
	var (
		bw      = bufio.NewWriter(w)
		samples = make([]float64, 512)
		buffer  = make([]byte, len(samples)*format.Width())
	)
	for {
		n, ok := s.Stream(samples)
		if !ok {
			if err := s.Err(); err != nil {
				return errors.Wrap(err, "pcm: streamer failed")
			}
			return errors.Wrap(bw.Flush(), "pcm")
		}
		var offset int
		for _, sample := range samples[:n] {
			offset += format.EncodeSigned(buffer[offset:], sample)
		}
		if _, err := bw.Write(buffer[:offset]); err != nil {
			return errors.Wrap(err, "pcm")
		}
	}
}
