package shared

import (
	"math"
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestSampleWindow(t *testing.T) {
	// Ensure window capacity cannot be negative or zero.
	_, err := NewSampleWindow(-1)
	assert.Error(t, err)

	_, err = NewSampleWindow(0)
	assert.Error(t, err)

	// Ensure capacities beyond the int32 ring indices are rejected.
	oversized := int64(math.MaxInt32) + 1
	_, err = NewSampleWindow(int(oversized))
	assert.Error(t, err)

	// Ensure a sample window can be created.
	capacity := 4
	window, err := NewSampleWindow(capacity)
	assert.NoError(t, err)
	assert.Equal(t, window.Capacity(), capacity)

	// Ensure an empty window has no samples and an empty time range.
	assert.Nil(t, window.Last())
	assert.Equal(t, window.Len(), 0)
	assert.Equal(t, len(window.Samples()), 0)
	start, end := window.Bounds()
	assert.Equal(t, start, int64(0))
	assert.Equal(t, end, int64(0))

	// Ensure the window can be filled to capacity.
	for idx := range capacity {
		window.Add(float64(idx+10), float64(idx+20))
	}

	assert.Equal(t, window.Len(), capacity)
	assert.Equal(t, window.BuyPrices(), []float64{10, 11, 12, 13})
	assert.Equal(t, window.SellPrices(), []float64{20, 21, 22, 23})
	start, end = window.Bounds()
	assert.Equal(t, start, int64(0))
	assert.Equal(t, end, int64(4))

	// Ensure additions at capacity evict the oldest sample and advance the time range.
	window.Add(14, 24)
	assert.Equal(t, window.Len(), capacity)
	assert.Equal(t, window.BuyPrices(), []float64{11, 12, 13, 14})
	assert.Equal(t, window.SellPrices(), []float64{21, 22, 23, 24})
	start, end = window.Bounds()
	assert.Equal(t, start, int64(1))
	assert.Equal(t, end, int64(5))

	last := window.Last()
	assert.NotNil(t, last)
	assert.Equal(t, *last, Sample{Timestamp: 4, Buy: 14, Sell: 24})

	samples := window.Samples()
	assert.Equal(t, samples[0], Sample{Timestamp: 1, Buy: 11, Sell: 21})

	// Ensure resetting the window clears samples and rewinds its clock.
	window.Reset()
	assert.Equal(t, window.Len(), 0)
	assert.Nil(t, window.Last())
	start, end = window.Bounds()
	assert.Equal(t, start, int64(0))
	assert.Equal(t, end, int64(0))

	// Ensure samples added after a reset are stamped from zero.
	window.Add(1, 2)
	assert.Equal(t, window.Samples(), []Sample{{Timestamp: 0, Buy: 1, Sell: 2}})
}

func TestSampleWindowEviction(t *testing.T) {
	capacity := DefaultWindowCapacity
	window, err := NewSampleWindow(capacity)
	assert.NoError(t, err)

	total := capacity*3 + 7
	for adds := 1; adds <= total; adds++ {
		window.Add(float64(adds), float64(-adds))

		// Ensure the window never exceeds its capacity.
		assert.True(t, window.Len() <= capacity)

		// Ensure the time range always spans min(adds, capacity) ticks.
		start, end := window.Bounds()
		assert.Equal(t, end, int64(adds))
		if adds > capacity {
			assert.Equal(t, start, int64(adds-capacity))
		} else {
			assert.Equal(t, start, int64(0))
		}
	}

	// Ensure timestamps are contiguous and start at the window's minimum time.
	start, _ := window.Bounds()
	samples := window.Samples()
	for idx := range samples {
		assert.Equal(t, samples[idx].Timestamp, start+int64(idx))
	}
}
