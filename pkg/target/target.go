package target

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spicery/structasm/pkg/common"
	"github.com/spicery/structasm/pkg/flow"
)

// Target renders records as assembler source for one instruction set and
// acts as the instruction collaborator for the constructs that need one.
type Target interface {
	flow.Machine
	Name() string
	// Branch renders a branch to name. Some conditions expand to more than
	// one instruction.
	Branch(cond common.Condition, name string) ([]string, error)
	Label(name string) string
}

var targets = map[string]func() Target{
	"msp430": func() Target { return NewMSP430() },
}

// Lookup finds a target by name, ignoring case.
func Lookup(name string) (Target, error) {
	mk, ok := targets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown target: %s (known: %s)", name, strings.Join(Names(), ", "))
	}
	return mk(), nil
}

func Names() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrintASM writes the unit as assembler source for t. Label and branch
// records are indented the way the surrounding source usually is.
func PrintASM(t Target, unit *common.Unit, indentDelta string, output io.Writer) error {
	if indentDelta == "" {
		indentDelta = "\t\t"
	}
	for _, r := range unit.Records {
		switch r.Kind {
		case common.KindLabel:
			if _, err := fmt.Fprintln(output, t.Label(r.Name)); err != nil {
				return err
			}
		case common.KindBranch:
			lines, err := t.Branch(r.Cond, r.Name)
			if err != nil {
				return fmt.Errorf("%s: %w", r.Pos, err)
			}
			for _, line := range lines {
				if _, err := fmt.Fprintf(output, "%s%s\n", indentDelta, line); err != nil {
					return err
				}
			}
		default:
			if _, err := fmt.Fprintln(output, r.Text); err != nil {
				return err
			}
		}
	}
	return nil
}
