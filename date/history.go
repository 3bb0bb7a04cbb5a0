package date

import "slices"

// History is a series of values indexed by day, in chronological order.
// The zero value is an empty history.
type History[T any] struct {
	entries []entry[T]
}

type entry[T any] struct {
	on    Date
	value T
}

// search returns the position of day in the history, or where it would be inserted.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.entries, day, func(e entry[T], day Date) int {
		return e.on.Compare(day)
	})
}

// Len returns the number of days in the history.
func (h *History[T]) Len() int { return len(h.entries) }

// Append sets the value of a day, replacing any previous value.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := h.search(on)
	if found {
		h.entries[i].value = v
		return h
	}
	h.entries = slices.Insert(h.entries, i, entry[T]{on, v})
	return h
}

// Get returns the value of day, false if there is none.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.search(day); found {
		return h.entries[i].value, true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value of day or, failing that, of the latest day before it.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	_, v, ok := h.AsOf(day)
	return v, ok
}

// AsOf is like ValueAsOf but also returns the day the value was set on.
func (h *History[T]) AsOf(day Date) (Date, T, bool) {
	i, found := h.search(day)
	if !found {
		i--
	}
	if i < 0 {
		var zero T
		return Date{}, zero, false
	}
	e := h.entries[i]
	return e.on, e.value, true
}

// Latest returns the last day and its value, the zero values if the history is empty.
func (h *History[T]) Latest() (Date, T) {
	if len(h.entries) == 0 {
		var zero T
		return Date{}, zero
	}
	e := h.entries[len(h.entries)-1]
	return e.on, e.value
}
