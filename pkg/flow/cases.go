package flow

import "github.com/spicery/structasm/pkg/common"

// Case opens a multi-way dispatch. It is a Cond under another name.
//
//	CASE <t1> OF c1 ... ENDOF <t2> OF c2 ... ENDOF <default> ENDCASE
func (c *Compiler) Case() error {
	return c.run("CASE", c.pushSentinel)
}

// Of guards one arm: the arm runs only when cond holds.
func (c *Compiler) Of(cond common.Condition) error {
	return c.run("OF", func() error {
		return c.openForward(cond)
	})
}

// OfEq compares src with dst and guards an arm on equality.
func (c *Compiler) OfEq(src, dst string) error {
	return c.run("OF_EQ", func() error {
		return c.ofEqual(common.WidthWord, src, dst)
	})
}

// OfEqByte is OfEq with a byte-wide comparison.
func (c *Compiler) OfEqByte(src, dst string) error {
	return c.run("OF_EQ_BYTE", func() error {
		return c.ofEqual(common.WidthByte, src, dst)
	})
}

func (c *Compiler) ofEqual(w common.Width, src, dst string) error {
	if c.machine == nil {
		return ErrNoMachine
	}
	c.out.EmitInstruction(c.machine.Compare(w, src, dst))
	return c.openForward(common.CondEQ)
}

// EndOf ends an arm with a jump out of the whole case and resolves the
// arm's guard so the next test starts here.
func (c *Compiler) EndOf() error {
	return c.run("ENDOF", c.elseBranch)
}

// EndCase resolves every arm's exit jump. It is an EndIfs under another name.
func (c *Compiler) EndCase() error {
	return c.run("ENDCASE", c.drainToSentinel)
}
