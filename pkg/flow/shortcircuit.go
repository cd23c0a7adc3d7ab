package flow

import "github.com/spicery/structasm/pkg/common"

// Short-circuit conditionals.
//
//	COND <t1> AND_IF c1 <t2> AND_IF c2 <then> ENDIFS
//	COND <t1> AND_IF c1 <t2> AND_IF c2 <then> ELSES <else> ENDIF
//	COND <t1> OR_ELSE c1 <t2> OR_IFS c2 <then> ENDIF
//	COND <t1> OR_ELSE c1 <t2> OR_IFS c2 <then> ELSE <else> ENDIF

// Cond opens a short-circuit chain by pushing the sentinel.
func (c *Compiler) Cond() error {
	return c.run("COND", c.pushSentinel)
}

func (c *Compiler) pushSentinel() error {
	return c.stack.Push(Sentinel)
}

// AndIf leaves the chain unless cond holds.
func (c *Compiler) AndIf(cond common.Condition) error {
	return c.run("AND_IF", func() error {
		return c.openForward(cond)
	})
}

// Elses replaces Else after a chain of AndIf: every failed test lands on
// the else-part.
func (c *Compiler) Elses() error {
	return c.run("ELSES", func() error {
		if err := c.elseBranch(); err != nil {
			return err
		}
		return c.drainBelowTop()
	})
}

// EndIfs closes a chain that has no Elses, resolving every pending branch
// back to the Cond.
func (c *Compiler) EndIfs() error {
	return c.run("ENDIFS", c.drainToSentinel)
}

// OrElse jumps straight to the then-part when cond holds.
func (c *Compiler) OrElse(cond common.Condition) error {
	return c.run("OR_ELSE", func() error {
		return c.forwardBranch(cond)
	})
}

// OrIfs is the last test of an OR chain. Failure skips the then-part;
// every earlier OrElse is resolved to land at the start of the then-part.
// The chain is closed by EndIf, or Else ... EndIf.
func (c *Compiler) OrIfs(cond common.Condition) error {
	return c.run("OR_IFS", func() error {
		if err := c.openForward(cond); err != nil {
			return err
		}
		return c.drainBelowTop()
	})
}
