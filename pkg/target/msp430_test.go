package target

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spicery/structasm/pkg/common"
)

func TestMSP430Branches(t *testing.T) {
	m := NewMSP430()
	tests := []struct {
		cond     common.Condition
		expected []string
	}{
		{common.CondZ, []string{"JZ\t_L100"}},
		{common.CondNE, []string{"JNE\t_L100"}},
		{common.CondHS, []string{"JHS\t_L100"}},
		{common.CondGE, []string{"JGE\t_L100"}},
		{common.CondAlways, []string{"JMP\t_L100"}},
		{common.CondNN, []string{"JN\t$+4", "JMP\t_L100"}},
	}
	for _, tt := range tests {
		got, err := m.Branch(tt.cond, "_L100")
		if err != nil {
			t.Fatalf("Branch(%s) failed: %v", tt.cond, err)
		}
		if diff := cmp.Diff(tt.expected, got); diff != "" {
			t.Errorf("Branch(%s) mismatch (-want +got):\n%s", tt.cond, diff)
		}
	}
	if _, err := m.Branch(common.CondInvalid, "_L100"); !errors.Is(err, common.ErrUnknownCondition) {
		t.Errorf("Expected ErrUnknownCondition, got %v", err)
	}
}

func TestMSP430EveryConditionRenders(t *testing.T) {
	m := NewMSP430()
	for _, c := range append(common.Conditions(), common.CondAlways) {
		if _, err := m.Branch(c, "x"); err != nil {
			t.Errorf("Branch(%s) failed: %v", c, err)
		}
	}
}

func TestMSP430Instructions(t *testing.T) {
	m := NewMSP430()
	got := []string{
		m.Compare(common.WidthWord, "#1", "R5"),
		m.Compare(common.WidthByte, "#1", "R5"),
		m.Move(common.WidthByte, "#0", "&count"),
		m.Decrement(common.WidthWord, 1, "R5"),
		m.Decrement(common.WidthByte, 2, "R5"),
		m.Decrement(common.WidthWord, 4, "R5"),
	}
	expected := []string{
		"\t\tcmp\t#1, R5",
		"\t\tcmp.b\t#1, R5",
		"\t\tmov.b\t#0, &count",
		"\t\tdec\tR5",
		"\t\tdecd.b\tR5",
		"\t\tsub\t#4, R5",
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("instruction mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintASM(t *testing.T) {
	unit := &common.Unit{Records: []common.Record{
		{Kind: common.KindInstruction, Text: "\t\tbit.b\t#1, &P1IN"},
		{Kind: common.KindBranch, Cond: common.CondNN, ID: 100, Name: "_L100"},
		{Kind: common.KindInstruction, Text: "\t\tnop"},
		{Kind: common.KindLabel, ID: 100, Name: "_L100"},
	}}
	var buf bytes.Buffer
	if err := PrintASM(NewMSP430(), unit, "", &buf); err != nil {
		t.Fatalf("PrintASM failed: %v", err)
	}
	expected := "\t\tbit.b\t#1, &P1IN\n\t\tJN\t$+4\n\t\tJMP\t_L100\n\t\tnop\n_L100\n"
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	tgt, err := Lookup("MSP430")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if tgt.Name() != "msp430" {
		t.Errorf("Expected msp430, got %s", tgt.Name())
	}
	if _, err := Lookup("z80"); err == nil {
		t.Error("Expected error for unknown target")
	}
}
