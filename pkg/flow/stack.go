package flow

import "fmt"

// DefaultStackDepth must exceed the largest number of arms in any CASE.
const DefaultStackDepth = 12

// Sentinel marks the base of a COND or CASE chain. Label ids are never zero.
const Sentinel = 0

// Stack is the bounded control-flow stack of unresolved branch sites.
type Stack struct {
	entries []int
	limit   int
}

func NewStack(limit int) (*Stack, error) {
	if limit < 2 {
		return nil, fmt.Errorf("stack depth must be at least 2, got %d", limit)
	}
	return &Stack{entries: make([]int, 0, limit), limit: limit}, nil
}

func (s *Stack) Push(entry int) error {
	if len(s.entries) >= s.Limit() {
		return fmt.Errorf("%w: limit is %d", ErrStackOverflow, s.Limit())
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *Stack) Pop() (int, error) {
	n := len(s.entries)
	if n == 0 {
		return 0, ErrStackUnderflow
	}
	entry := s.entries[n-1]
	s.entries = s.entries[:n-1]
	return entry, nil
}

// Top returns the most recent entry without removing it.
func (s *Stack) Top() (int, error) {
	n := len(s.entries)
	if n == 0 {
		return 0, ErrStackUnderflow
	}
	return s.entries[n-1], nil
}

// Swap exchanges the two most recent entries, letting a construct reach
// past the newest entry to resolve the one beneath it.
func (s *Stack) Swap() error {
	n := len(s.entries)
	if n < 2 {
		return ErrInvalidSwap
	}
	s.entries[n-1], s.entries[n-2] = s.entries[n-2], s.entries[n-1]
	return nil
}

func (s *Stack) Depth() int {
	return len(s.entries)
}

func (s *Stack) Limit() int {
	return s.limit
}

// CheckBalanced fails unless every opened construct has been closed.
func (s *Stack) CheckBalanced() error {
	if len(s.entries) != 0 {
		return ErrUnbalanced
	}
	return nil
}

// Entries returns a copy of the stack, oldest first.
func (s *Stack) Entries() []int {
	out := make([]int, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Stack) Reset() {
	s.entries = s.entries[:0]
}
