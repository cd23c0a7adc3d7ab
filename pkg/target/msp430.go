package target

import (
	"fmt"

	"github.com/spicery/structasm/pkg/common"
)

// MSP430 renders for the TI MSP430 family, which has JEQ/JZ, JNE/JNZ,
// JC/JHS, JNC/JLO, JN, JGE, JL and JMP but no jump-if-not-negative.
type MSP430 struct{}

func NewMSP430() *MSP430 {
	return &MSP430{}
}

func (m *MSP430) Name() string {
	return "msp430"
}

var msp430Jumps = map[common.Condition]string{
	common.CondZ:      "JZ",
	common.CondNZ:     "JNZ",
	common.CondEQ:     "JEQ",
	common.CondNE:     "JNE",
	common.CondC:      "JC",
	common.CondNC:     "JNC",
	common.CondHS:     "JHS",
	common.CondLO:     "JLO",
	common.CondN:      "JN",
	common.CondL:      "JL",
	common.CondGE:     "JGE",
	common.CondAlways: "JMP",
}

func (m *MSP430) Branch(cond common.Condition, name string) ([]string, error) {
	if cond == common.CondNN {
		// Hop over the unconditional jump when negative.
		return []string{"JN\t$+4", "JMP\t" + name}, nil
	}
	op, ok := msp430Jumps[cond]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownCondition, cond)
	}
	return []string{op + "\t" + name}, nil
}

func (m *MSP430) Label(name string) string {
	return name
}

func suffix(w common.Width) string {
	if w == common.WidthByte {
		return ".b"
	}
	return ""
}

func (m *MSP430) Compare(w common.Width, src, dst string) string {
	return fmt.Sprintf("\t\tcmp%s\t%s, %s", suffix(w), src, dst)
}

func (m *MSP430) Move(w common.Width, src, dst string) string {
	return fmt.Sprintf("\t\tmov%s\t%s, %s", suffix(w), src, dst)
}

func (m *MSP430) Decrement(w common.Width, step int, dst string) string {
	switch step {
	case 1:
		return fmt.Sprintf("\t\tdec%s\t%s", suffix(w), dst)
	case 2:
		return fmt.Sprintf("\t\tdecd%s\t%s", suffix(w), dst)
	default:
		return fmt.Sprintf("\t\tsub%s\t#%d, %s", suffix(w), step, dst)
	}
}
