package siggen_test

import (
	"testing"

	"github.com/faiface/siggen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryKeepsNewest(t *testing.T) {
	for capacity := 1; capacity < 8; capacity++ {
		for extra := 1; extra < 12; extra++ {
			h := siggen.NewHistory(capacity)
			var pushed []float64
			for i := 0; i < capacity+extra; i++ {
				h.Push(float64(i))
				pushed = append(pushed, float64(i))
				require.LessOrEqual(t, h.Len(), capacity)
			}
			assert.Equal(t, pushed[len(pushed)-capacity:], h.Snapshot(), "capacity %d, extra %d", capacity, extra)
		}
	}
}

func TestHistoryPartiallyFilled(t *testing.T) {
	h := siggen.NewHistory(4)
	h.Push(1)
	h.Push(2)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 4, h.Cap())
	assert.Equal(t, []float64{1, 2}, h.Snapshot())
}

func TestHistoryZeroCapacity(t *testing.T) {
	h := siggen.NewHistory(0)
	for i := 0; i < 10; i++ {
		h.Push(float64(i))
		assert.Zero(t, h.Len())
	}
	assert.Empty(t, h.Snapshot())

	assert.Zero(t, siggen.NewHistory(-3).Cap())
}

func TestHistoryClear(t *testing.T) {
	h := siggen.NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Push(float64(i))
	}
	h.Clear()
	assert.Zero(t, h.Len())
	assert.Equal(t, 3, h.Cap())

	h.Push(7)
	assert.Equal(t, []float64{7}, h.Snapshot())
}

func TestHistoryResizeDropsSamples(t *testing.T) {
	h := siggen.NewHistory(3)
	h.Push(1)
	h.Push(2)

	h.Resize(5)
	assert.Zero(t, h.Len())
	assert.Equal(t, 5, h.Cap())

	for i := 0; i < 7; i++ {
		h.Push(float64(i))
	}
	assert.Equal(t, []float64{2, 3, 4, 5, 6}, h.Snapshot())

	h.Resize(0)
	h.Push(1)
	assert.Empty(t, h.Snapshot())
}

func TestHistorySnapshotIsCopy(t *testing.T) {
	h := siggen.NewHistory(2)
	h.Push(1)
	h.Push(2)
	s := h.Snapshot()
	s[0] = 100
	assert.Equal(t, []float64{1, 2}, h.Snapshot())
}
