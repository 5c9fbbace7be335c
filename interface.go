package siggen

// Streamer is able to stream a finite or infinite sequence of mono samples.
//
// Stream copies at most len(samples) next samples into samples and returns the number of
// streamed samples. When there are no more samples, it returns 0, false. Like io.Reader, a
// Streamer may stream less than len(samples) samples and still be not done.
//
// Err returns an error that occurred during streaming, if any. A Streamer that failed should
// return false from Stream.
type Streamer interface {
	Stream(samples []float64) (n int, ok bool)
	Err() error
}

// StreamerFunc is a Streamer created by simply wrapping a streaming function. Err always
// returns nil.
type StreamerFunc func(samples []float64) (n int, ok bool)

// Stream calls f(samples).
func (f StreamerFunc) Stream(samples []float64) (n int, ok bool) {
	return f(samples)
}

// Err always returns nil.
func (f StreamerFunc) Err() error {
	return nil
}
