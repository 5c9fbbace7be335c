package siggen

// Take returns a Streamer which streams at most n samples from s.
//
// The returned Streamer propagates s's errors through Err.
func Take(n int, s Streamer) Streamer {
	return &take{
		s:          s,
		numSamples: n,
	}
}

type take struct {
	s          Streamer
	currSample int
	numSamples int
}

func (t *take) Stream(samples []float64) (n int, ok bool) {
	if t.currSample >= t.numSamples {
		return 0, false
	}
	toStream := t.numSamples - t.currSample
	if len(samples) < toStream {
		toStream = len(samples)
	}
	n, ok = t.s.Stream(samples[:toStream])
	t.currSample += n
	return n, ok
}

func (t *take) Err() error {
	return t.s.Err()
}

// Samples returns a Streamer which streams the given samples once, e.g. a history snapshot.
func Samples(data []float64) Streamer {
	pos := 0
	return StreamerFunc(func(samples []float64) (n int, ok bool) {
		if pos >= len(data) {
			return 0, false
		}
		n = copy(samples, data[pos:])
		pos += n
		return n, true
	})
}
