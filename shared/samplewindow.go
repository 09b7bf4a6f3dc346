package shared

import (
	"errors"
	"math"
	"sync"

	"go.uber.org/atomic"
)

const (
	// DefaultWindowCapacity is the default maximum number of samples retained by a window.
	DefaultWindowCapacity = 200
)

// SampleWindow represents a fixed capacity, time ordered window of price samples.
//
// Samples are stamped by the window itself with a counter that advances once per
// accepted sample. Once the window is at capacity every addition evicts the oldest
// sample and advances the minimum time by one, so the time axis always spans
// min(time, capacity) ticks.
type SampleWindow struct {
	data    []Sample
	dataMtx sync.RWMutex
	start   atomic.Int32
	count   atomic.Int32
	size    atomic.Int32
	time    atomic.Int64
	timeMin atomic.Int64
}

// NewSampleWindow initializes a new sample window.
func NewSampleWindow(capacity int) (*SampleWindow, error) {
	if capacity < 0 {
		return nil, errors.New("window capacity cannot be negative")
	}
	if capacity == 0 {
		return nil, errors.New("window capacity cannot be zero")
	}
	if int64(capacity) > math.MaxInt32 {
		return nil, errors.New("window capacity cannot exceed math.MaxInt32")
	}

	window := &SampleWindow{
		data: make([]Sample, capacity),
	}

	window.size.Store(int32(capacity))
	return window, nil
}

// Add stamps and appends a sample with the provided prices, evicting the oldest
// sample when the window is at capacity.
func (w *SampleWindow) Add(buy float64, sell float64) {
	w.dataMtx.Lock()
	defer w.dataMtx.Unlock()

	start := w.start.Load()
	count := w.count.Load()
	size := w.size.Load()
	end := (start + count) % size

	w.data[end] = Sample{
		Timestamp: w.time.Load(),
		Buy:       buy,
		Sell:      sell,
	}
	w.time.Add(1)

	if count == size {
		// Overwrite the oldest entry when the window is at capacity.
		w.start.Store((start + 1) % size)
		w.timeMin.Add(1)
	} else {
		w.count.Add(1)
	}
}

// Reset clears all samples and rewinds the window's clock.
func (w *SampleWindow) Reset() {
	w.dataMtx.Lock()
	defer w.dataMtx.Unlock()

	clear(w.data)
	w.start.Store(0)
	w.count.Store(0)
	w.time.Store(0)
	w.timeMin.Store(0)
}

// Len returns the number of samples retained.
func (w *SampleWindow) Len() int {
	return int(w.count.Load())
}

// Capacity returns the maximum number of samples the window retains.
func (w *SampleWindow) Capacity() int {
	return int(w.size.Load())
}

// Bounds returns the time axis range of the window, [min, max).
func (w *SampleWindow) Bounds() (int64, int64) {
	w.dataMtx.RLock()
	defer w.dataMtx.RUnlock()

	return w.timeMin.Load(), w.time.Load()
}

// Samples returns the retained samples, oldest first.
func (w *SampleWindow) Samples() []Sample {
	w.dataMtx.RLock()
	defer w.dataMtx.RUnlock()

	start := w.start.Load()
	count := w.count.Load()
	size := w.size.Load()

	set := make([]Sample, count)
	for i := range count {
		set[i] = w.data[(start+i)%size]
	}

	return set
}

// Last returns the most recently added sample, nil if the window is empty.
func (w *SampleWindow) Last() *Sample {
	w.dataMtx.RLock()
	defer w.dataMtx.RUnlock()

	count := w.count.Load()
	if count == 0 {
		return nil
	}

	last := w.data[(w.start.Load()+count-1)%w.size.Load()]
	return &last
}

// BuyPrices returns the buy price series, oldest first.
func (w *SampleWindow) BuyPrices() []float64 {
	samples := w.Samples()
	prices := make([]float64, len(samples))
	for idx := range samples {
		prices[idx] = samples[idx].Buy
	}

	return prices
}

// SellPrices returns the sell price series, oldest first.
func (w *SampleWindow) SellPrices() []float64 {
	samples := w.Samples()
	prices := make([]float64, len(samples))
	for idx := range samples {
		prices[idx] = samples[idx].Sell
	}

	return prices
}
