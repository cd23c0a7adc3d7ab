package flow

import (
	"fmt"

	"github.com/spicery/structasm/pkg/common"
)

// Options configures a Compiler. Zero values fall back to the defaults.
type Options struct {
	LabelBase   int
	LabelPrefix string
	StackDepth  int
	// Machine formats the compare, move and decrement instructions of
	// OF_EQ and the counted loops. Those constructs fail without one.
	Machine Machine
	// Emitter receives the output. When nil the compiler writes to its own Stream.
	Emitter Emitter
}

// Compiler turns structured construct invocations into label and branch
// records. One Compiler serves one compilation unit at a time and is not
// safe for concurrent use.
type Compiler struct {
	labels  *Allocator
	stack   *Stack
	stream  *Stream
	out     Emitter
	machine Machine
	failed  error
}

func NewCompiler(opts Options) (*Compiler, error) {
	if opts.LabelBase == 0 {
		opts.LabelBase = DefaultLabelBase
	}
	if opts.StackDepth == 0 {
		opts.StackDepth = DefaultStackDepth
	}
	labels, err := NewAllocator(opts.LabelBase, opts.LabelPrefix)
	if err != nil {
		return nil, err
	}
	stack, err := NewStack(opts.StackDepth)
	if err != nil {
		return nil, err
	}
	c := &Compiler{
		labels:  labels,
		stack:   stack,
		out:     opts.Emitter,
		machine: opts.Machine,
	}
	if c.out == nil {
		c.stream = NewStream(labels)
		c.out = c.stream
	}
	return c, nil
}

// Stream returns the compiler's own record stream, or nil when an external
// Emitter was supplied.
func (c *Compiler) Stream() *Stream {
	return c.stream
}

func (c *Compiler) Labels() *Allocator {
	return c.labels
}

func (c *Compiler) Depth() int {
	return c.stack.Depth()
}

// Err returns the error that aborted the current unit, if any.
func (c *Compiler) Err() error {
	return c.failed
}

// Reset prepares the compiler for a new compilation unit.
func (c *Compiler) Reset() {
	c.labels.Reset()
	c.stack.Reset()
	if c.stream != nil {
		c.stream.Reset()
	}
	c.failed = nil
}

// Check is the checkpoint: it fails unless every construct has been closed.
func (c *Compiler) Check() error {
	return c.run("CHECK", c.stack.CheckBalanced)
}

// run executes one construct. The first failure aborts the unit; every
// later construct reports ErrAborted. Errors carry the depth at entry.
func (c *Compiler) run(construct string, body func() error) error {
	depth := c.stack.Depth()
	if c.failed != nil {
		return &Error{Construct: construct, Depth: depth, Err: fmt.Errorf("%w: %v", ErrAborted, c.failed)}
	}
	if err := body(); err != nil {
		c.failed = &Error{Construct: construct, Depth: depth, Err: err}
		return c.failed
	}
	return nil
}

func checkCondition(cond common.Condition) error {
	if !cond.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCondition, cond)
	}
	return nil
}

// openForward marks a forward branch, taken when cond does not hold.
func (c *Compiler) openForward(cond common.Condition) error {
	if err := checkCondition(cond); err != nil {
		return err
	}
	negated, err := cond.Negate()
	if err != nil {
		return err
	}
	return c.forwardBranch(negated)
}

// forwardBranch marks a forward branch taken when cond holds.
func (c *Compiler) forwardBranch(cond common.Condition) error {
	if err := checkCondition(cond); err != nil {
		return err
	}
	id := c.labels.Next()
	if err := c.stack.Push(id); err != nil {
		return err
	}
	c.out.EmitBranch(cond, id)
	return nil
}

// closeForward resolves the most recent open forward branch.
func (c *Compiler) closeForward() error {
	id, err := c.popLabel()
	if err != nil {
		return err
	}
	c.out.EmitLabel(id)
	return nil
}

// openBackward marks a destination that later branches jump back to.
func (c *Compiler) openBackward() error {
	id := c.labels.Next()
	if err := c.stack.Push(id); err != nil {
		return err
	}
	c.out.EmitLabel(id)
	return nil
}

// closeBackward branches back to the most recent open destination when cond holds.
func (c *Compiler) closeBackward(cond common.Condition) error {
	if err := checkCondition(cond); err != nil {
		return err
	}
	id, err := c.popLabel()
	if err != nil {
		return err
	}
	c.out.EmitBranch(cond, id)
	return nil
}

// popLabel pops an entry that must be a real label id.
func (c *Compiler) popLabel() (int, error) {
	id, err := c.stack.Pop()
	if err != nil {
		return 0, err
	}
	if id == Sentinel {
		return 0, fmt.Errorf("%w: reached the marker of an open COND or CASE", ErrStackUnderflow)
	}
	return id, nil
}

// drainToSentinel resolves forward branches down to and including the
// nearest sentinel.
func (c *Compiler) drainToSentinel() error {
	for {
		top, err := c.stack.Top()
		if err != nil {
			return err
		}
		if top == Sentinel {
			_, err := c.stack.Pop()
			return err
		}
		if err := c.closeForward(); err != nil {
			return err
		}
	}
}

// drainBelowTop is drainToSentinel applied beneath the most recent entry,
// which is left on top of the stack.
func (c *Compiler) drainBelowTop() error {
	for {
		if err := c.stack.Swap(); err != nil {
			return err
		}
		top, err := c.stack.Top()
		if err != nil {
			return err
		}
		if top == Sentinel {
			_, err := c.stack.Pop()
			return err
		}
		if err := c.closeForward(); err != nil {
			return err
		}
	}
}
