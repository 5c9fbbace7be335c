package siggen

import "fmt"

// Format is the format of encoded samples.
type Format struct {
	// SampleRate is the number of samples per second.
	SampleRate int

	// NumChannels is the number of channels. A mono sample is written to every channel.
	NumChannels int

	// Precision is the number of bytes used to encode a single sample.
	Precision int
}

// Width returns the number of bytes per one sample (all channels).
//
// This is equal to f.NumChannels * f.Precision.
func (f Format) Width() int {
	return f.NumChannels * f.Precision
}

// EncodeSigned encodes a single sample in f.Width() bytes to p in signed format.
func (f Format) EncodeSigned(p []byte, sample float64) (n int) {
	return f.encode(true, p, sample)
}

// EncodeUnsigned encodes a single sample in f.Width() bytes to p in unsigned format.
func (f Format) EncodeUnsigned(p []byte, sample float64) (n int) {
	return f.encode(false, p, sample)
}

// DecodeSigned decodes a single sample encoded in f.Width() bytes from p in signed format.
// Channels are averaged.
func (f Format) DecodeSigned(p []byte) (sample float64, n int) {
	return f.decode(true, p)
}

// DecodeUnsigned decodes a single sample encoded in f.Width() bytes from p in unsigned format.
// Channels are averaged.
func (f Format) DecodeUnsigned(p []byte) (sample float64, n int) {
	return f.decode(false, p)
}

func (f Format) encode(signed bool, p []byte, sample float64) (n int) {
	if f.NumChannels < 1 {
		panic(fmt.Errorf("format: encode: invalid number of channels: %d", f.NumChannels))
	}
	x := norm(sample)
	for c := 0; c < f.NumChannels; c++ {
		p = p[encodeFloat(signed, p, f.Precision, x):]
	}
	return f.Width()
}

func (f Format) decode(signed bool, p []byte) (sample float64, n int) {
	if f.NumChannels < 1 {
		panic(fmt.Errorf("format: decode: invalid number of channels: %d", f.NumChannels))
	}
	for c := 0; c < f.NumChannels; c++ {
		x, n := decodeFloat(signed, p, f.Precision)
		sample += x
		p = p[n:]
	}
	return sample / float64(f.NumChannels), f.Width()
}

// Samples are little endian.
func encodeFloat(signed bool, p []byte, precision int, x float64) (n int) {
	var xUint64 uint64
	if signed {
		xUint64 = floatToSigned(precision, x)
	} else {
		xUint64 = floatToUnsigned(precision, x)
	}
	for i := 0; i < precision; i++ {
		p[i] = byte(xUint64)
		xUint64 >>= 8
	}
	return precision
}

func decodeFloat(signed bool, p []byte, precision int) (x float64, n int) {
	var xUint64 uint64
	for i := precision - 1; i >= 0; i-- {
		xUint64 <<= 8
		xUint64 += uint64(p[i])
	}
	if signed {
		return signedToFloat(precision, xUint64), precision
	}
	return unsignedToFloat(precision, xUint64), precision
}

func floatToSigned(precision int, x float64) uint64 {
	if x < 0 {
		compl := uint64(-x * float64(uint64(1)<<uint(precision*8-1)-1))
		return uint64(1<<uint(precision*8)) - compl
	}
	return uint64(x * float64(uint64(1)<<uint(precision*8-1)-1))
}

func floatToUnsigned(precision int, x float64) uint64 {
	return uint64((x + 1) / 2 * float64(uint64(1)<<uint(precision*8)-1))
}

func signedToFloat(precision int, xUint64 uint64) float64 {
	if xUint64 >= 1<<uint(precision*8-1) {
		compl := 1<<uint(precision*8) - xUint64
		return -float64(int64(compl)) / float64(uint64(1)<<uint(precision*8-1)-1)
	}
	return float64(int64(xUint64)) / float64(uint64(1)<<uint(precision*8-1)-1)
}

func unsignedToFloat(precision int, xUint64 uint64) float64 {
	return float64(xUint64)/float64(uint(1)<<uint(precision*8)-1)*2 - 1
}

func norm(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > +1 {
		return +1
	}
	return x
}
