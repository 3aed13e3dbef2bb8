package date

import (
	"iter"
	"slices"
)

// History is a chronological series of values, at most one per day.
type History[T float32 | float64 | string] struct {
	days   []Date
	values []T
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

func compare(a, b Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// Append records q on day, keeping the series sorted.
//
// A value already recorded on that day is overwritten: later publications
// supersede earlier ones.
func (h *History[T]) Append(on Date, q T) *History[T] {
	i, found := slices.BinarySearchFunc(h.days, on, compare)
	if found {
		h.values[i] = q
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		if h == nil {
			return
		}
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value recorded exactly on day.
// There is no interpolation: a missing day is a missing value.
func (h *History[T]) Get(day Date) (T, bool) {
	var value T
	if h == nil {
		return value, false
	}
	if i, found := slices.BinarySearchFunc(h.days, day, compare); found {
		return h.values[i], true
	}
	return value, false
}
