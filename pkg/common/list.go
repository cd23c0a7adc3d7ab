package common

type List[T any] struct {
	items []T
}

func (l *List[T]) Add(item T) {
	l.items = append(l.items, item)
}

func (l *List[T]) Items() []T {
	return l.items
}

// Truncate drops every item from index n onwards.
func (l *List[T]) Truncate(n int) {
	if n < len(l.items) {
		l.items = l.items[:n]
	}
}
