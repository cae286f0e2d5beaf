// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

// ValueQueue buffers the pending values of one column, in row order.
// Value i of every queue on a Table belongs to row i.
type ValueQueue struct {
	values []any
}

func (q *ValueQueue) Push(values ...any) {
	q.values = append(q.values, values...)
}

// Pop removes and returns the oldest value.
func (q *ValueQueue) Pop() (any, bool) {
	if len(q.values) == 0 {
		return nil, false
	}
	v := q.values[0]
	q.values = q.values[1:]
	return v, true
}

// At returns the value queued for row i.
func (q *ValueQueue) At(i int) any {
	return q.values[i]
}

func (q *ValueQueue) Len() int {
	return len(q.values)
}

// Values returns a copy of the queued values.
func (q *ValueQueue) Values() []any {
	out := make([]any, len(q.values))
	copy(out, q.values)
	return out
}

func (q *ValueQueue) Clear() {
	q.values = nil
}
