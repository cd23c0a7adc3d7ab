package flow

import "fmt"

// DefaultLabelBase keeps generated names three digits wide for a while,
// which makes listings easier to read. It must be above zero because zero
// is the sentinel on the control-flow stack.
const DefaultLabelBase = 100

// DefaultLabelPrefix is prepended to every generated label name.
const DefaultLabelPrefix = "_L"

// Namer renders a label id as an assembler symbol.
type Namer interface {
	Render(id int) string
}

// Allocator hands out label ids in strictly increasing order.
type Allocator struct {
	base   int
	next   int
	prefix string
}

// NewAllocator creates an allocator whose first id is base.
func NewAllocator(base int, prefix string) (*Allocator, error) {
	if base <= 0 {
		return nil, fmt.Errorf("label base must be positive, got %d", base)
	}
	if prefix == "" {
		prefix = DefaultLabelPrefix
	}
	return &Allocator{base: base, next: base, prefix: prefix}, nil
}

// Next returns a fresh id, greater than every id returned before.
func (a *Allocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Peek returns the id the next call to Next will return.
func (a *Allocator) Peek() int {
	return a.next
}

// Render is injective on positive ids.
func (a *Allocator) Render(id int) string {
	return fmt.Sprintf("%s%d", a.prefix, id)
}

// Reset rewinds the allocator to its base for a new compilation unit.
func (a *Allocator) Reset() {
	a.next = a.base
}
