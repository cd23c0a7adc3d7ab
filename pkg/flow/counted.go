package flow

import "github.com/spicery/structasm/pkg/common"

// Counted loops are post-tested decrement-and-branch loops:
//
//	FOR src, dst ... NEXT_DEC dst     dst = src down to 1
//	FOR src, dst ... NEXT_DECD dst    dst = src down to 2 in steps of 2, src even
//
// The body always runs at least once. A count of zero wraps, giving 65536
// iterations for words and 256 for bytes.

func (c *Compiler) For(src, dst string) error {
	return c.run("FOR", func() error {
		return c.forLoop(common.WidthWord, src, dst)
	})
}

func (c *Compiler) ForByte(src, dst string) error {
	return c.run("FOR_BYTE", func() error {
		return c.forLoop(common.WidthByte, src, dst)
	})
}

func (c *Compiler) NextDec(dst string) error {
	return c.run("NEXT_DEC", func() error {
		return c.next(common.WidthWord, 1, dst)
	})
}

func (c *Compiler) NextDecD(dst string) error {
	return c.run("NEXT_DECD", func() error {
		return c.next(common.WidthWord, 2, dst)
	})
}

func (c *Compiler) NextDecByte(dst string) error {
	return c.run("NEXT_DEC_BYTE", func() error {
		return c.next(common.WidthByte, 1, dst)
	})
}

func (c *Compiler) NextDecDByte(dst string) error {
	return c.run("NEXT_DECD_BYTE", func() error {
		return c.next(common.WidthByte, 2, dst)
	})
}

func (c *Compiler) forLoop(w common.Width, src, dst string) error {
	if c.machine == nil {
		return ErrNoMachine
	}
	c.out.EmitInstruction(c.machine.Move(w, src, dst))
	return c.openBackward()
}

func (c *Compiler) next(w common.Width, step int, dst string) error {
	if c.machine == nil {
		return ErrNoMachine
	}
	c.out.EmitInstruction(c.machine.Decrement(w, step, dst))
	return c.until(common.CondZ)
}
