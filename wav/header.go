package wav

import (
	"encoding/binary"
	"io"

	"github.com/faiface/siggen"
	"github.com/pkg/errors"
)

// headerSize is the size of header in bytes.
const headerSize = 44

type header struct {
	RiffMark      [4]byte
	FileSize      int32
	WaveMark      [4]byte
	FmtMark       [4]byte
	FormatSize    int32
	FormatType    int16
	NumChans      int16
	SampleRate    int32
	ByteRate      int32
	BytesPerFrame int16
	BitsPerSample int16
	DataMark      [4]byte
	DataSize      int32
}

func newHeader(format siggen.Format) header {
	return header{
		RiffMark:      [4]byte{'R', 'I', 'F', 'F'},
		FileSize:      -1, // finalization
		WaveMark:      [4]byte{'W', 'A', 'V', 'E'},
		FmtMark:       [4]byte{'f', 'm', 't', ' '},
		FormatSize:    16,
		FormatType:    1,
		NumChans:      int16(format.NumChannels),
		SampleRate:    int32(format.SampleRate),
		ByteRate:      int32(format.SampleRate * format.NumChannels * format.Precision),
		BytesPerFrame: int16(format.NumChannels * format.Precision),
		BitsPerSample: int16(format.Precision) * 8,
		DataMark:      [4]byte{'d', 'a', 't', 'a'},
		DataSize:      -1, // finalization
	}
}

// ReadHeader reads the header of a PCM WAVE file written by Encode and returns its format and
// the number of bytes of sample data following it.
func ReadHeader(r io.Reader) (format siggen.Format, dataSize int, err error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return siggen.Format{}, 0, errors.Wrap(err, "wav")
	}
	if string(h.RiffMark[:]) != "RIFF" {
		return siggen.Format{}, 0, errors.New("wav: missing RIFF at the beginning")
	}
	if string(h.WaveMark[:]) != "WAVE" {
		return siggen.Format{}, 0, errors.New("wav: unsupported file type")
	}
	if string(h.FmtMark[:]) != "fmt " {
		return siggen.Format{}, 0, errors.New("wav: missing format chunk marker")
	}
	if string(h.DataMark[:]) != "data" {
		return siggen.Format{}, 0, errors.New("wav: missing data chunk marker")
	}
	if h.FormatType != 1 {
		return siggen.Format{}, 0, errors.New("wav: unsupported format type")
	}
	if h.NumChans <= 0 {
		return siggen.Format{}, 0, errors.New("wav: invalid number of channels (less than 1)")
	}
	format = siggen.Format{
		SampleRate:  int(h.SampleRate),
		NumChannels: int(h.NumChans),
		Precision:   int(h.BitsPerSample / 8),
	}
	return format, int(h.DataSize), nil
}
