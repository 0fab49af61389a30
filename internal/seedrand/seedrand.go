package seedrand

import (
	"errors"
	"fmt"
	"time"
)

const (
	fnvOffset32 uint32 = 0x811c9dc5
	fnvPrime32  uint32 = 0x01000193

	// increment is the odd constant added to the state on every draw.
	increment uint32 = 0x6d2b79f5

	twoPow32 = 4294967296.0
)

// ErrEmptyCollection is returned when a selection is attempted from an empty pool.
var ErrEmptyCollection = errors.New("cannot pick from an empty collection")

// Hash returns the 32-bit FNV-1a hash of seed.
func Hash(seed string) uint32 {
	h := fnvOffset32
	for i := 0; i < len(seed); i++ {
		h ^= uint32(seed[i])
		h *= fnvPrime32
	}
	return h
}

// Next performs one mulberry32 step on state. It returns a draw in [0, 1)
// and the advanced state.
func Next(state uint32) (float64, uint32) {
	state += increment
	t := (state ^ (state >> 15)) * (1 | state)
	t ^= t + (t^(t>>7))*(61|t)
	return float64(t^(t>>14)) / twoPow32, state
}

// Source is a deterministic generator owned by a single caller. It is not
// safe for concurrent use.
type Source struct {
	state uint32
}

// New returns a Source whose initial state is the hash of seed.
func New(seed string) *Source {
	return &Source{state: Hash(seed)}
}

// State returns the current internal state.
func (s *Source) State() uint32 {
	return s.state
}

// Float64 returns the next draw in [0, 1).
func (s *Source) Float64() float64 {
	var v float64
	v, s.state = Next(s.state)
	return v
}

// Intn returns floor(Float64()*n). It returns 0 when n <= 0 without
// consuming a draw.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Float64() * float64(n))
}

// Between returns an integer in [lo, hi] drawn uniformly.
func (s *Source) Between(lo, hi int) int {
	return lo + s.Intn(hi-lo+1)
}

// Chance reports whether the next draw is strictly above threshold.
func (s *Source) Chance(threshold float64) bool {
	return s.Float64() > threshold
}

// Symmetric returns a draw uniformly distributed in [-width, width).
func (s *Source) Symmetric(width float64) float64 {
	return (s.Float64()*2 - 1) * width
}

// Read fills p with bytes taken from successive draws. It never fails, which
// makes a Source usable as deterministic entropy.
func (s *Source) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 4 {
		_, s.state = Next(s.state)
		v := s.state
		for j := 0; j < 4 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

// PickOne returns a uniformly chosen element of items.
func PickOne[T any](s *Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyCollection
	}
	return items[s.Intn(len(items))], nil
}

// PickMany samples between lo and hi elements of items without replacement.
// The count is drawn first; each pick then removes a uniformly chosen element
// from the remaining pool. Fewer than the drawn count are returned when the
// pool runs out.
func PickMany[T any](s *Source, items []T, lo, hi int) ([]T, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCollection
	}
	if lo < 0 || hi < lo {
		return nil, fmt.Errorf("invalid pick range [%d, %d]", lo, hi)
	}

	n := s.Between(lo, hi)
	pool := make([]T, len(items))
	copy(pool, items)

	out := make([]T, 0, n)
	for i := 0; i < n && len(pool) > 0; i++ {
		idx := s.Intn(len(pool))
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out, nil
}

// quarterHours are the minute marks a DateOffset lands on.
var quarterHours = []int{0, 15, 30, 45}

// DateOffset maps three draws onto a wall-clock time relative to now: a day
// offset in [minDays, minDays+spanDays), an hour of day, and a quarter-hour
// minute mark. Seconds and sub-seconds are zeroed. The result is expressed in
// now's location.
func DateOffset(s *Source, now time.Time, minDays, spanDays int) time.Time {
	days := s.Intn(spanDays) + minDays
	hour := s.Intn(24)
	minute := quarterHours[s.Intn(len(quarterHours))]
	y, m, d := now.Date()
	return time.Date(y, m, d+days, hour, minute, 0, 0, now.Location())
}
