package flow

import "github.com/spicery/structasm/pkg/common"

// Emitter receives the records produced by the construct compiler.
type Emitter interface {
	EmitLabel(id int)
	EmitBranch(cond common.Condition, id int)
	EmitInstruction(text string)
}

// Machine is the instruction collaborator. It formats the few operand-level
// instructions that OF_EQ and the counted loops need; operands are passed
// through untouched.
type Machine interface {
	Compare(w common.Width, src, dst string) string
	Move(w common.Width, src, dst string) string
	Decrement(w common.Width, step int, dst string) string
}

// Stream is an append-only record stream. Records take the position most
// recently set with SetPos.
type Stream struct {
	namer   Namer
	pos     common.Position
	records common.List[common.Record]
}

func NewStream(namer Namer) *Stream {
	return &Stream{namer: namer}
}

// SetPos sets the source position stamped on subsequent records.
func (s *Stream) SetPos(pos common.Position) {
	s.pos = pos
}

func (s *Stream) EmitLabel(id int) {
	s.records.Add(common.Record{Kind: common.KindLabel, ID: id, Name: s.namer.Render(id), Pos: s.pos})
}

func (s *Stream) EmitBranch(cond common.Condition, id int) {
	s.records.Add(common.Record{Kind: common.KindBranch, Cond: cond, ID: id, Name: s.namer.Render(id), Pos: s.pos})
}

func (s *Stream) EmitInstruction(text string) {
	s.records.Add(common.Record{Kind: common.KindInstruction, Text: text, Pos: s.pos})
}

func (s *Stream) Records() []common.Record {
	return s.records.Items()
}

func (s *Stream) Len() int {
	return len(s.records.Items())
}

// Reset discards every record, for reuse on a new compilation unit.
func (s *Stream) Reset() {
	s.records.Truncate(0)
	s.pos = common.Position{}
}
