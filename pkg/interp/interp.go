// Package interp executes record streams on a small flag machine. It
// understands the MSP430 forms produced by the target package plus two
// pseudo-instructions: "probe NAME" loads the flags registered for NAME and
// "mark NAME" records that execution passed that point.
package interp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spicery/structasm/pkg/common"
)

// DefaultStepLimit bounds execution; a word-sized counted loop with a zero
// count runs 65536 times and must fit comfortably.
const DefaultStepLimit = 1 << 20

var ErrStepLimit = errors.New("step limit exceeded")

type Flags struct {
	Z, C, N, V bool
}

// Holds reports whether a branch on cond is taken under f.
func (f Flags) Holds(cond common.Condition) (bool, error) {
	switch cond {
	case common.CondZ, common.CondEQ:
		return f.Z, nil
	case common.CondNZ, common.CondNE:
		return !f.Z, nil
	case common.CondC, common.CondHS:
		return f.C, nil
	case common.CondNC, common.CondLO:
		return !f.C, nil
	case common.CondN:
		return f.N, nil
	case common.CondNN:
		return !f.N, nil
	case common.CondGE:
		return f.N == f.V, nil
	case common.CondL:
		return f.N != f.V, nil
	case common.CondAlways:
		return true, nil
	}
	return false, fmt.Errorf("%w: %s", common.ErrUnknownCondition, cond)
}

type Machine struct {
	Regs      map[string]int
	Flags     Flags
	Probes    map[string]Flags
	Trace     []string
	Steps     int
	StepLimit int
}

func NewMachine() *Machine {
	return &Machine{
		Regs:      make(map[string]int),
		Probes:    make(map[string]Flags),
		StepLimit: DefaultStepLimit,
	}
}

// Run executes the unit from its first record until control falls off the end.
func (m *Machine) Run(unit *common.Unit) error {
	labels := make(map[int]int)
	for i, r := range unit.Records {
		if r.Kind == common.KindLabel {
			labels[r.ID] = i
		}
	}
	pc := 0
	for pc < len(unit.Records) {
		m.Steps++
		if m.StepLimit > 0 && m.Steps > m.StepLimit {
			return fmt.Errorf("%w after %d steps", ErrStepLimit, m.StepLimit)
		}
		r := unit.Records[pc]
		pc++
		switch r.Kind {
		case common.KindLabel:
		case common.KindBranch:
			taken, err := m.Flags.Holds(r.Cond)
			if err != nil {
				return fmt.Errorf("%s: %w", r.Pos, err)
			}
			if !taken {
				continue
			}
			target, ok := labels[r.ID]
			if !ok {
				return fmt.Errorf("%s: branch to undefined label %s", r.Pos, r.Name)
			}
			pc = target
		case common.KindInstruction:
			if err := m.exec(r.Text); err != nil {
				return fmt.Errorf("%s: %w", r.Pos, err)
			}
		}
	}
	return nil
}

func (m *Machine) exec(text string) error {
	if i := strings.Index(text, ";"); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	op, rest := text, ""
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		op, rest = text[:i], text[i+1:]
	}
	var operands []string
	for _, o := range strings.Split(rest, ",") {
		if o = strings.TrimSpace(o); o != "" {
			operands = append(operands, o)
		}
	}

	op = strings.ToLower(op)
	base, width := op, 16
	if strings.HasSuffix(op, ".b") {
		base, width = strings.TrimSuffix(op, ".b"), 8
	}

	switch base {
	case "probe":
		if len(operands) != 1 {
			return fmt.Errorf("probe takes one name")
		}
		f, ok := m.Probes[operands[0]]
		if !ok {
			return fmt.Errorf("no flags registered for probe %s", operands[0])
		}
		m.Flags = f
	case "mark":
		if len(operands) != 1 {
			return fmt.Errorf("mark takes one name")
		}
		m.Trace = append(m.Trace, operands[0])
	case "mov":
		if len(operands) != 2 {
			return fmt.Errorf("%s takes two operands", op)
		}
		v, err := m.value(operands[0])
		if err != nil {
			return err
		}
		m.Regs[operands[1]] = v & mask(width)
	case "dec", "decd":
		if len(operands) != 1 {
			return fmt.Errorf("%s takes one operand", op)
		}
		step := 1
		if base == "decd" {
			step = 2
		}
		m.subtract(step, operands[0], width, true)
	case "sub", "cmp":
		if len(operands) != 2 {
			return fmt.Errorf("%s takes two operands", op)
		}
		v, err := m.value(operands[0])
		if err != nil {
			return err
		}
		m.subtract(v, operands[1], width, base == "sub")
	default:
		return fmt.Errorf("unsupported instruction: %s", text)
	}
	return nil
}

// subtract computes dst - src, setting flags the way the MSP430 does.
func (m *Machine) subtract(src int, dst string, width int, store bool) {
	msk := mask(width)
	sign := 1 << (width - 1)
	a := m.Regs[dst] & msk
	b := src & msk
	result := (a - b) & msk
	m.Flags = Flags{
		Z: result == 0,
		C: a >= b,
		N: result&sign != 0,
		V: (a^b)&sign != 0 && (a^result)&sign != 0,
	}
	if store {
		m.Regs[dst] = result
	}
}

func (m *Machine) value(operand string) (int, error) {
	if strings.HasPrefix(operand, "#") {
		n, err := strconv.ParseInt(operand[1:], 0, 64)
		if err != nil {
			return 0, fmt.Errorf("bad immediate %s: %w", operand, err)
		}
		return int(n), nil
	}
	return m.Regs[operand], nil
}

func mask(width int) int {
	return (1 << width) - 1
}
