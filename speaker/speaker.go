// Package speaker implements playback of siggen.Streamer values through physical speakers.
package speaker

import (
	"io"
	"sync"

	"github.com/faiface/siggen"
	"github.com/golang/glog"
	"github.com/hajimehoshi/oto/v2"
	"github.com/pkg/errors"
)

const channelCount = 2
const bitDepthInBytes = 2
const bytesPerSample = bitDepthInBytes * channelCount

var (
	mu       sync.Mutex
	streamer siggen.Streamer
	context  *oto.Context
	player   oto.Player
)

// Init initializes audio playback through speaker. Must be called before using this package.
//
// The bufferSize argument specifies the number of samples of the speaker's buffer. Bigger
// bufferSize means lower CPU usage and more reliable playback. Lower bufferSize means better
// responsiveness and less delay.
func Init(sampleRate int, bufferSize int) error {
	if context != nil {
		return errors.New("speaker: cannot be initialized more than once")
	}

	var err error
	var readyChan chan struct{}
	context, readyChan, err = oto.NewContext(sampleRate, channelCount, bitDepthInBytes)
	if err != nil {
		return errors.Wrap(err, "speaker: failed to initialize")
	}
	<-readyChan

	player = context.NewPlayer(&sampleReader{})
	player.(oto.BufferSizeSetter).SetBufferSize(bufferSize * bytesPerSample)
	player.Play()

	glog.V(1).Infof("speaker: playing at %d Hz, buffer of %d samples", sampleRate, bufferSize)
	return nil
}

// Close stops the playback. The context stays, so Init can't be called again.
func Close() {
	if player != nil {
		player.Close()
		player = nil
		Clear()
	}
}

// Lock locks the speaker. While locked, speaker won't pull new data from the playing Streamer.
// Lock if you want to modify the currently playing Streamer to avoid race conditions.
//
// Always lock speaker for as little time as possible, to avoid playback glitches.
func Lock() {
	mu.Lock()
}

// Unlock unlocks the speaker. Call after modifying the currently playing Streamer.
func Unlock() {
	mu.Unlock()
}

// Play starts playing s through the speaker, replacing whatever was playing.
func Play(s siggen.Streamer) {
	mu.Lock()
	streamer = s
	mu.Unlock()
}

// Clear stops playing the current Streamer. The speaker plays silence until the next Play.
func Clear() {
	mu.Lock()
	streamer = nil
	mu.Unlock()
}

// sampleReader pulls samples from the playing Streamer to implement io.Reader.
type sampleReader struct {
	buf []float64
}

// Read pulls samples from the playing Streamer and fills buf with the encoded samples. Read
// expects the size of buf be divisible by the length of a sample (= channel count * bit depth
// in bytes). When nothing is playing, or the Streamer is drained, Read fills buf with silence.
func (s *sampleReader) Read(buf []byte) (n int, err error) {
	if len(buf)%bytesPerSample != 0 {
		return 0, errors.New("speaker: requested number of bytes do not align with the samples")
	}
	ns := len(buf) / bytesPerSample
	if len(s.buf) < ns {
		s.buf = make([]float64, ns)
	}

	mu.Lock()
	streamed := 0
	if streamer != nil {
		var ok bool
		streamed, ok = streamer.Stream(s.buf[:ns])
		if !ok {
			if err := streamer.Err(); err != nil {
				mu.Unlock()
				return 0, errors.Wrap(err, "speaker: streamer returned error when requesting samples")
			}
			streamer = nil
		}
	}
	mu.Unlock()
	for i := streamed; i < ns; i++ {
		s.buf[i] = 0
	}

	encode(buf, s.buf[:ns])
	return ns * bytesPerSample, nil
}

// encode writes samples to buf as signed 16 bit little endian, duplicated on both channels.
func encode(buf []byte, samples []float64) {
	for i, val := range samples {
		if val < -1 {
			val = -1
		}
		if val > +1 {
			val = +1
		}
		valInt16 := int16(val * (1<<15 - 1))
		low := byte(valInt16)
		high := byte(valInt16 >> 8)
		for c := 0; c < channelCount; c++ {
			buf[i*bytesPerSample+c*bitDepthInBytes+0] = low
			buf[i*bytesPerSample+c*bitDepthInBytes+1] = high
		}
	}
}

var _ io.Reader = (*sampleReader)(nil)
