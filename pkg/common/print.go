package common

import (
	"fmt"
	"io"
	"strings"
)

// PrintFunc writes a unit to output in one format.
type PrintFunc func(unit *Unit, indentDelta string, output io.Writer, options *PrintOptions) error

// PickPrintFunc selects a writer by format name. The ASM format is target
// specific and provided by the target package.
func PickPrintFunc(format string) (PrintFunc, error) {
	switch strings.ToUpper(format) {
	case "JSON":
		return PrintUnitJSON, nil
	case "YAML":
		return PrintUnitYAML, nil
	case "ASCIITREE":
		return PrintUnitAsciiTree, nil
	case "DOT":
		return PrintUnitDOT, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
