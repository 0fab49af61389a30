// Package window computes which rows of a long vertical list intersect a
// scrolled viewport. Row heights start as estimates and are replaced by
// measurements as rows render; measurements are cached by row key so they
// survive the list being rebound.
package window

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Defaults applied by New for zero-valued options.
const (
	DefaultEstimate = 120
	DefaultOverscan = 8
	DefaultViewport = 560
)

// ErrIndexOutOfRange is returned when a row index is outside [0, Count).
var ErrIndexOutOfRange = errors.New("row index out of range")

// Options configures a Virtualizer.
type Options struct {
	Count int
	// EstimateSize returns the assumed height of an unmeasured row.
	EstimateSize func(index int) float64
	// Overscan is the number of extra rows rendered on each side of the
	// viewport. Negative disables it; zero selects DefaultOverscan.
	Overscan int
	// Key identifies a row across rebinds. Defaults to the decimal index.
	Key          func(index int) string
	PaddingStart float64
}

// Item is a row placed on the scroll axis.
type Item struct {
	Index int     `json:"index"`
	Key   string  `json:"key"`
	Start float64 `json:"start"`
	Size  float64 `json:"size"`
	End   float64 `json:"end"`
}

// Virtualizer tracks row geometry for one list. It is not safe for
// concurrent use.
type Virtualizer struct {
	opts     Options
	measured map[string]float64
	// starts[i] is the offset of row i; starts[Count] is the total size.
	starts []float64
	dirty  bool
}

// New returns a Virtualizer for opts.
func New(opts Options) *Virtualizer {
	if opts.Count < 0 {
		opts.Count = 0
	}
	if opts.EstimateSize == nil {
		opts.EstimateSize = func(int) float64 { return DefaultEstimate }
	}
	switch {
	case opts.Overscan == 0:
		opts.Overscan = DefaultOverscan
	case opts.Overscan < 0:
		opts.Overscan = 0
	}
	if opts.Key == nil {
		opts.Key = strconv.Itoa
	}
	return &Virtualizer{
		opts:     opts,
		measured: make(map[string]float64),
		dirty:    true,
	}
}

// Count returns the number of rows.
func (v *Virtualizer) Count() int {
	return v.opts.Count
}

// Measured returns the number of rows whose height is known.
func (v *Virtualizer) Measured() int {
	n := 0
	for i := 0; i < v.opts.Count; i++ {
		if _, ok := v.measured[v.opts.Key(i)]; ok {
			n++
		}
	}
	return n
}

// Measure records the rendered height of row index, shifting every later
// row.
func (v *Virtualizer) Measure(index int, size float64) error {
	if index < 0 || index >= v.opts.Count {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if size < 0 {
		return fmt.Errorf("row %d: negative size %v", index, size)
	}
	key := v.opts.Key(index)
	if old, ok := v.measured[key]; ok && old == size {
		return nil
	}
	v.measured[key] = size
	v.dirty = true
	return nil
}

// Reset rebinds the virtualizer to a list of count rows. Measurements are
// kept for keys that still exist. A nil key keeps the current key func.
func (v *Virtualizer) Reset(count int, key func(int) string) {
	if count < 0 {
		count = 0
	}
	v.opts.Count = count
	if key != nil {
		v.opts.Key = key
	}
	live := make(map[string]bool, count)
	for i := 0; i < count; i++ {
		live[v.opts.Key(i)] = true
	}
	for k := range v.measured {
		if !live[k] {
			delete(v.measured, k)
		}
	}
	v.dirty = true
}

func (v *Virtualizer) size(i int) float64 {
	if s, ok := v.measured[v.opts.Key(i)]; ok {
		return s
	}
	return max(0, v.opts.EstimateSize(i))
}

func (v *Virtualizer) layout() {
	if !v.dirty {
		return
	}
	n := v.opts.Count
	if cap(v.starts) < n+1 {
		v.starts = make([]float64, n+1)
	}
	v.starts = v.starts[:n+1]
	v.starts[0] = v.opts.PaddingStart
	for i := 0; i < n; i++ {
		v.starts[i+1] = v.starts[i] + v.size(i)
	}
	v.dirty = false
}

// TotalSize is the height of the whole list, measured rows at their real
// height and the rest at their estimate.
func (v *Virtualizer) TotalSize() float64 {
	v.layout()
	return v.starts[v.opts.Count]
}

func (v *Virtualizer) item(i int) Item {
	return Item{
		Index: i,
		Key:   v.opts.Key(i),
		Start: v.starts[i],
		Size:  v.starts[i+1] - v.starts[i],
		End:   v.starts[i+1],
	}
}

// Item returns the geometry of row index.
func (v *Virtualizer) Item(index int) (Item, error) {
	if index < 0 || index >= v.opts.Count {
		return Item{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	v.layout()
	return v.item(index), nil
}

// clampOffset keeps offset within the scrollable range.
func (v *Virtualizer) clampOffset(offset, viewport float64) float64 {
	maxOffset := max(0, v.TotalSize()-viewport)
	return min(max(0, offset), maxOffset)
}

// Range returns the first and last row intersecting [offset,
// offset+viewport), excluding overscan. ok is false for an empty list.
func (v *Virtualizer) Range(offset, viewport float64) (first, last int, ok bool) {
	n := v.opts.Count
	if n == 0 {
		return 0, 0, false
	}
	if viewport <= 0 {
		viewport = DefaultViewport
	}
	v.layout()
	offset = v.clampOffset(offset, viewport)
	bottom := offset + viewport

	// first row whose end lies past the offset
	first = sort.Search(n, func(i int) bool { return v.starts[i+1] > offset })
	if first == n {
		first = n - 1
	}
	last = first
	for last+1 < n && v.starts[last+1] < bottom {
		last++
	}
	return first, last, true
}

// Items returns the contiguous rows to render for a scroll position,
// including overscan on both sides.
func (v *Virtualizer) Items(offset, viewport float64) []Item {
	first, last, ok := v.Range(offset, viewport)
	if !ok {
		return nil
	}
	lo := max(0, first-v.opts.Overscan)
	hi := min(v.opts.Count-1, last+v.opts.Overscan)
	out := make([]Item, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, v.item(i))
	}
	return out
}

// ScrollToIndex returns the offset that puts row index at the top of the
// viewport, clamped to the scrollable range.
func (v *Virtualizer) ScrollToIndex(index int, viewport float64) (float64, error) {
	it, err := v.Item(index)
	if err != nil {
		return 0, err
	}
	if viewport <= 0 {
		viewport = DefaultViewport
	}
	return v.clampOffset(it.Start, viewport), nil
}
