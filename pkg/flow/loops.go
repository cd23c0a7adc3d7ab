package flow

import "github.com/spicery/structasm/pkg/common"

// Do marks the top of a loop.
func (c *Compiler) Do() error {
	return c.run("DO", c.openBackward)
}

// Until closes a post-tested loop: control returns to the matching Do
// while cond does not hold.
func (c *Compiler) Until(cond common.Condition) error {
	return c.run("UNTIL", func() error {
		return c.until(cond)
	})
}

func (c *Compiler) until(cond common.Condition) error {
	if err := checkCondition(cond); err != nil {
		return err
	}
	negated, err := cond.Negate()
	if err != nil {
		return err
	}
	return c.closeBackward(negated)
}

// Again closes an infinite loop.
func (c *Compiler) Again() error {
	return c.run("AGAIN", func() error {
		return c.closeBackward(common.CondAlways)
	})
}

// While leaves the loop when cond does not hold. A loop may have several;
// each one beyond the first must be resolved after the loop by its own
// EndIf, or Else ... EndIf.
func (c *Compiler) While(cond common.Condition) error {
	return c.run("WHILE", func() error {
		if err := c.openForward(cond); err != nil {
			return err
		}
		return c.stack.Swap()
	})
}

// EndW jumps back to the matching Do and resolves the most recent While.
func (c *Compiler) EndW() error {
	return c.run("ENDW", func() error {
		if err := c.closeBackward(common.CondAlways); err != nil {
			return err
		}
		return c.closeForward()
	})
}
