package common

import (
	"fmt"
	"io"
	"strings"

	asciitree "github.com/thediveo/go-asciitree"
)

type AsciiNode struct {
	Label    string      `asciitree:"label"`
	Props    []string    `asciitree:"properties"`
	Children []AsciiNode `asciitree:"children"`
}

// convertToTree builds a cross-reference: one child per label, listing the
// branches that target it. With Passthrough the instructions are listed too.
func convertToTree(unit *Unit, options *PrintOptions) AsciiNode {
	includeSpans := options == nil || options.IncludeSpans
	passthrough := options != nil && options.Passthrough

	labelIndex := make(map[int]int)
	definedAt := make(map[int]int)
	var labels []AsciiNode
	for i, r := range unit.Records {
		if r.Kind != KindLabel {
			continue
		}
		definedAt[r.ID] = i
		var props []string
		if includeSpans {
			props = append(props, fmt.Sprintf("line: %d", r.Pos.Line))
		}
		labelIndex[r.ID] = len(labels)
		labels = append(labels, AsciiNode{Label: r.Name, Props: props})
	}

	var dangling []AsciiNode
	for i, r := range unit.Records {
		if r.Kind != KindBranch {
			continue
		}
		direction := "forward"
		if at, ok := definedAt[r.ID]; ok && at < i {
			direction = "backward"
		}
		props := []string{fmt.Sprintf("direction: %s", direction)}
		if includeSpans {
			props = append(props, fmt.Sprintf("line: %d", r.Pos.Line))
		}
		branch := AsciiNode{Label: fmt.Sprintf("branch %s", r.Cond), Props: props}
		if idx, ok := labelIndex[r.ID]; ok {
			labels[idx].Children = append(labels[idx].Children, branch)
		} else {
			branch.Props = append(branch.Props, fmt.Sprintf("target: %s", r.Name))
			dangling = append(dangling, branch)
		}
	}

	root := AsciiNode{Label: "unit", Children: labels}
	if unit.Src != "" {
		root.Props = []string{fmt.Sprintf("src: %s", unit.Src)}
	}
	if len(dangling) > 0 {
		root.Children = append(root.Children, AsciiNode{Label: "unresolved", Children: dangling})
	}
	if passthrough {
		var instructions []AsciiNode
		for _, r := range unit.Records {
			if r.Kind != KindInstruction {
				continue
			}
			node := AsciiNode{Label: strings.TrimSpace(r.Text)}
			if includeSpans {
				node.Props = []string{fmt.Sprintf("line: %d", r.Pos.Line)}
			}
			instructions = append(instructions, node)
		}
		if len(instructions) > 0 {
			root.Children = append(root.Children, AsciiNode{Label: "instructions", Children: instructions})
		}
	}
	return root
}

func PrintUnitAsciiTree(unit *Unit, indentDelta string, output io.Writer, options *PrintOptions) error {
	_, err := fmt.Fprintln(output, asciitree.RenderFancy(convertToTree(unit, options)))
	return err
}
