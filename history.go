package siggen

// History is a fixed-capacity FIFO of samples. When full, pushing a sample drops the oldest one.
//
// History is not safe for concurrent use. Generator guards its own History.
type History struct {
	buf  []float64
	head int // index of the oldest sample
	n    int // number of samples held
}

// NewHistory creates an empty History holding at most capacity samples. A negative capacity
// is treated as zero.
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{buf: make([]float64, capacity)}
}

// Len returns the number of samples currently held.
func (h *History) Len() int {
	return h.n
}

// Cap returns the maximum number of samples h can hold.
func (h *History) Cap() int {
	return len(h.buf)
}

// Push appends x, first dropping the oldest sample if h is full. With zero capacity, Push
// leaves h empty.
func (h *History) Push(x float64) {
	if len(h.buf) == 0 {
		return
	}
	if h.n == len(h.buf) {
		h.head = (h.head + 1) % len(h.buf)
		h.n--
	}
	h.buf[(h.head+h.n)%len(h.buf)] = x
	h.n++
}

// Clear drops all samples. The capacity is unchanged.
func (h *History) Clear() {
	h.head, h.n = 0, 0
}

// Resize reallocates h to the new capacity and drops all samples.
func (h *History) Resize(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	h.buf = make([]float64, capacity)
	h.Clear()
}

// Snapshot returns a copy of the held samples, oldest first.
func (h *History) Snapshot() []float64 {
	out := make([]float64, h.n)
	if h.n == 0 {
		return out
	}
	tail := h.head + h.n
	if tail <= len(h.buf) {
		copy(out, h.buf[h.head:tail])
	} else {
		k := copy(out, h.buf[h.head:])
		copy(out[k:], h.buf[:tail-len(h.buf)])
	}
	return out
}
