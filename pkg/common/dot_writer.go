package common

import (
	"fmt"
	"io"
	"strings"
)

func PrintUnitDOT(unit *Unit, indentDelta string, output io.Writer, options *PrintOptions) error {
	// Initialize the DOT graph
	fmt.Fprintln(output, `digraph G {`)
	fmt.Fprintln(output, `  bgcolor="transparent";`)
	fmt.Fprintln(output, `  node [shape="box", style="filled", fontname="Ubuntu Mono"];`)

	passthrough := options != nil && options.Passthrough

	// Record index of each label so branches can point at it.
	labelNodes := make(map[int]string)
	for i, r := range unit.Records {
		if r.Kind == KindLabel {
			labelNodes[r.ID] = recordNodeID(i)
		}
	}

	prevID := ""
	prevFallsThrough := false
	for i, r := range unit.Records {
		if r.Kind == KindInstruction && !passthrough {
			continue
		}
		nodeID := recordNodeID(i)
		fillColor := kindColors[r.Kind]
		fmt.Fprintf(output, "  \"%s\" [label=\"%s\", fillcolor=\"%s\"];\n", nodeID, escapeDOTValue(recordLabel(r)), fillColor)

		// Sequential edge, unless control cannot reach this record from the previous one.
		if prevID != "" && prevFallsThrough {
			fmt.Fprintf(output, "  \"%s\" -> \"%s\";\n", prevID, nodeID)
		}
		if r.Kind == KindBranch {
			if target, ok := labelNodes[r.ID]; ok {
				fmt.Fprintf(output, "  \"%s\" -> \"%s\" [style=\"dashed\", label=\"%s\"];\n", nodeID, target, r.Cond)
			}
		}
		prevID = nodeID
		prevFallsThrough = !r.IsUnconditional()
	}

	// Close the graph
	fmt.Fprintln(output, `}`)
	return nil
}

func recordNodeID(index int) string {
	return fmt.Sprintf("r%d", index)
}

func recordLabel(r Record) string {
	switch r.Kind {
	case KindLabel:
		return r.Name + ":"
	case KindBranch:
		return fmt.Sprintf("J%s %s", r.Cond, r.Name)
	default:
		return strings.TrimSpace(r.Text)
	}
}

func escapeDOTValue(value string) string {
	// Escape special characters for DOT format
	return strings.ReplaceAll(value, `"`, `\"`)
}

var kindColors = map[RecordKind]string{
	KindLabel:       "lightgoldenrodyellow",
	KindBranch:      "PaleTurquoise",
	KindInstruction: "lightgray",
}
