package common

import "fmt"

// RecordKind distinguishes the entries of an emitted stream.
type RecordKind string

const (
	KindLabel       RecordKind = "label"
	KindBranch      RecordKind = "branch"
	KindInstruction RecordKind = "instruction"
)

// Width is the operand width used by the instruction collaborator.
type Width int

const (
	WidthWord Width = iota
	WidthByte
)

func (w Width) String() string {
	if w == WidthByte {
		return "byte"
	}
	return "word"
}

// Record is one entry of the output stream. Label and branch records carry a
// label id and its rendered name; instruction records carry opaque text that
// is handed to the assembler untouched.
type Record struct {
	Kind RecordKind `json:"kind" yaml:"kind"`
	Cond Condition  `json:"cond,omitempty" yaml:"cond,omitempty"`
	ID   int        `json:"id,omitempty" yaml:"id,omitempty"`
	Name string     `json:"name,omitempty" yaml:"name,omitempty"`
	Text string     `json:"text,omitempty" yaml:"text,omitempty"`
	Pos  Position   `json:"pos" yaml:"pos"`
}

// Position locates a record in the source it was expanded from.
type Position struct {
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	Line int    `json:"line,omitempty" yaml:"line,omitempty"`
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// IsUnconditional reports whether a branch record is always taken.
func (r *Record) IsUnconditional() bool {
	return r.Kind == KindBranch && r.Cond == CondAlways
}

func (r Record) String() string {
	switch r.Kind {
	case KindLabel:
		return fmt.Sprintf("Label(%s)", r.Name)
	case KindBranch:
		return fmt.Sprintf("Branch(%s, %s)", r.Cond, r.Name)
	default:
		return fmt.Sprintf("Instruction(%q)", r.Text)
	}
}

// Unit is the expansion of one compilation unit.
type Unit struct {
	Src     string   `json:"src,omitempty" yaml:"src,omitempty"`
	Records []Record `json:"records" yaml:"records"`
}

// Labels returns the ids defined in the unit, in stream order.
func (u *Unit) Labels() []int {
	var ids []int
	for _, r := range u.Records {
		if r.Kind == KindLabel {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
