package expander

import "strings"

// Line is one source line split into its assembler fields.
type Line struct {
	Text     string   // The line as written.
	Label    string   // Leading label including any colon, or "".
	Mnemonic string   // First field after the label.
	Operands []string // Comma separated operands, trimmed.
	Comment  string   // Text after ';', without the ';'.
}

// SplitLine splits a line into label, mnemonic, operands and comment.
// isMnemonic decides, for a field in column one without a colon, whether
// it is a mnemonic or a label.
func SplitLine(text string, isMnemonic func(string) bool) Line {
	line := Line{Text: text}
	code := text
	if i := strings.Index(code, ";"); i >= 0 {
		line.Comment = strings.TrimSpace(code[i+1:])
		code = code[:i]
	}
	fields := strings.Fields(code)
	if len(fields) == 0 {
		return line
	}
	startsInColumnOne := code[0] != ' ' && code[0] != '\t'
	first := fields[0]
	if strings.HasSuffix(first, ":") || (startsInColumnOne && !isMnemonic(first) && len(fields) > 1 && isMnemonic(fields[1])) {
		line.Label = first
		code = strings.TrimSpace(code[strings.Index(code, first)+len(first):])
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return line
	}
	line.Mnemonic = fields[0]
	rest := strings.TrimSpace(code[strings.Index(code, fields[0])+len(fields[0]):])
	for _, operand := range strings.Split(rest, ",") {
		if operand = strings.TrimSpace(operand); operand != "" {
			line.Operands = append(line.Operands, operand)
		}
	}
	return line
}
