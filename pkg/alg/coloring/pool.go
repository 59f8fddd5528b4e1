package coloring

import (
	"container/heap"
)

// holder is a color currently held by an interval ending at end.
type holder struct {
	end   int
	color int
}

// loaded is a free color together with the total weight it already bears.
type loaded struct {
	load  int
	color int
}

// queue is a min-heap over items ordered by less.
type queue[T any] struct {
	items []T
	less  func(a, b T) bool
}

// heap.Interface plumbing.
func (q *queue[T]) Len() int           { return len(q.items) }
func (q *queue[T]) Less(i, j int) bool { return q.less(q.items[i], q.items[j]) }
func (q *queue[T]) Swap(i, j int)      { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *queue[T]) Push(x any)         { q.items = append(q.items, x.(T)) } //nolint:forcetypeassert // only T is pushed.

func (q *queue[T]) Pop() any {
	last := len(q.items) - 1
	item := q.items[last]
	q.items = q.items[:last]

	return item
}

func (q *queue[T]) push(item T) { heap.Push(q, item) }
func (q *queue[T]) pop() T      { return heap.Pop(q).(T) } //nolint:forcetypeassert // only T is pushed.
func (q *queue[T]) peek() T     { return q.items[0] }

func newHolderQueue() *queue[holder] {
	return &queue[holder]{less: func(a, b holder) bool {
		if a.end != b.end {
			return a.end < b.end
		}

		return a.color < b.color
	}}
}

func newLoadQueue() *queue[loaded] {
	return &queue[loaded]{less: func(a, b loaded) bool {
		if a.load != b.load {
			return a.load < b.load
		}

		return a.color < b.color
	}}
}

func newColorQueue() *queue[int] {
	return &queue[int]{less: func(a, b int) bool { return a < b }}
}
