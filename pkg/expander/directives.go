package expander

import (
	"fmt"

	"github.com/spicery/structasm/pkg/common"
	"github.com/spicery/structasm/pkg/flow"
)

// directive adapts one compiler method to source operands.
type directive struct {
	operands  int
	condition bool
	run       func(c *flow.Compiler, cond common.Condition, operands []string) error
}

func bare(m func(*flow.Compiler) error) directive {
	return directive{run: func(c *flow.Compiler, _ common.Condition, _ []string) error {
		return m(c)
	}}
}

func conditional(m func(*flow.Compiler, common.Condition) error) directive {
	return directive{condition: true, operands: 1, run: func(c *flow.Compiler, cond common.Condition, _ []string) error {
		return m(c, cond)
	}}
}

func unary(m func(*flow.Compiler, string) error) directive {
	return directive{operands: 1, run: func(c *flow.Compiler, _ common.Condition, operands []string) error {
		return m(c, operands[0])
	}}
}

func binary(m func(*flow.Compiler, string, string) error) directive {
	return directive{operands: 2, run: func(c *flow.Compiler, _ common.Condition, operands []string) error {
		return m(c, operands[0], operands[1])
	}}
}

var directives = map[string]directive{
	"IF":     conditional((*flow.Compiler).If),
	"IF_NOT": conditional((*flow.Compiler).IfNot),
	"ELSE":   bare((*flow.Compiler).Else),
	"ENDIF":  bare((*flow.Compiler).EndIf),

	"DO":    bare((*flow.Compiler).Do),
	"UNTIL": conditional((*flow.Compiler).Until),
	"AGAIN": bare((*flow.Compiler).Again),
	"WHILE": conditional((*flow.Compiler).While),
	"ENDW":  bare((*flow.Compiler).EndW),

	"COND":    bare((*flow.Compiler).Cond),
	"AND_IF":  conditional((*flow.Compiler).AndIf),
	"ELSES":   bare((*flow.Compiler).Elses),
	"ENDIFS":  bare((*flow.Compiler).EndIfs),
	"OR_ELSE": conditional((*flow.Compiler).OrElse),
	"OR_IFS":  conditional((*flow.Compiler).OrIfs),

	"CASE":       bare((*flow.Compiler).Case),
	"OF":         conditional((*flow.Compiler).Of),
	"OF_EQ":      binary((*flow.Compiler).OfEq),
	"OF_EQ_BYTE": binary((*flow.Compiler).OfEqByte),
	"OF_EQ_B":    binary((*flow.Compiler).OfEqByte),
	"ENDOF":      bare((*flow.Compiler).EndOf),
	"ENDCASE":    bare((*flow.Compiler).EndCase),

	"FOR":            binary((*flow.Compiler).For),
	"FOR_BYTE":       binary((*flow.Compiler).ForByte),
	"FOR_B":          binary((*flow.Compiler).ForByte),
	"NEXT_DEC":       unary((*flow.Compiler).NextDec),
	"NEXT_DECD":      unary((*flow.Compiler).NextDecD),
	"NEXT_DEC_BYTE":  unary((*flow.Compiler).NextDecByte),
	"NEXT_DEC_B":     unary((*flow.Compiler).NextDecByte),
	"NEXT_DECD_BYTE": unary((*flow.Compiler).NextDecDByte),
	"NEXT_DECD_B":    unary((*flow.Compiler).NextDecDByte),
}

func (d directive) check(name string, operands []string) error {
	if len(operands) != d.operands {
		return fmt.Errorf("%s takes %d operand(s), got %d", name, d.operands, len(operands))
	}
	return nil
}
