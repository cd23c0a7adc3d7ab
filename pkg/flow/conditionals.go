package flow

import "github.com/spicery/structasm/pkg/common"

// If skips the following code, up to the matching Else or EndIf, unless
// cond holds. With CondAlways the skip is unconditional.
func (c *Compiler) If(cond common.Condition) error {
	return c.run("IF", func() error {
		return c.openForward(cond)
	})
}

// IfNot skips the following code when cond holds.
func (c *Compiler) IfNot(cond common.Condition) error {
	return c.run("IF_NOT", func() error {
		return c.forwardBranch(cond)
	})
}

// Else ends the then-part with a jump past the else-part, and resolves the
// pending If so that its failure lands here.
func (c *Compiler) Else() error {
	return c.run("ELSE", c.elseBranch)
}

func (c *Compiler) elseBranch() error {
	if err := c.forwardBranch(common.CondAlways); err != nil {
		return err
	}
	if err := c.stack.Swap(); err != nil {
		return err
	}
	return c.closeForward()
}

// EndIf resolves the most recent If, Else or While.
func (c *Compiler) EndIf() error {
	return c.run("ENDIF", c.closeForward)
}
