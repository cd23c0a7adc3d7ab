package checker

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/spicery/structasm/pkg/common"
)

func label(id int, line int) common.Record {
	return common.Record{Kind: common.KindLabel, ID: id, Name: "_L" + strconv.Itoa(id), Pos: common.Position{Line: line}}
}

func branch(cond common.Condition, id int, line int) common.Record {
	return common.Record{Kind: common.KindBranch, Cond: cond, ID: id, Name: "_L" + strconv.Itoa(id), Pos: common.Position{Line: line}}
}

func TestCheckSoundUnit(t *testing.T) {
	unit := &common.Unit{Records: []common.Record{
		branch(common.CondNZ, 100, 1),
		{Kind: common.KindInstruction, Text: "nop"},
		label(100, 3),
		branch(common.CondAlways, 100, 4),
	}}
	c := NewChecker()
	if !c.Check(unit) {
		t.Fatalf("Expected unit to be sound, got %v", c.Err())
	}
	if c.Err() != nil {
		t.Errorf("Expected no error, got %v", c.Err())
	}
	if len(c.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", c.Warnings)
	}
}

func TestCheckReportsProblems(t *testing.T) {
	tests := []struct {
		name     string
		records  []common.Record
		bugs     int
		issues   int
		warnings int
	}{
		{"dangling branch", []common.Record{branch(common.CondZ, 101, 1)}, 0, 1, 0},
		{"duplicate label", []common.Record{label(100, 1), label(100, 2), branch(common.CondZ, 100, 3)}, 0, 1, 0},
		{"untargeted label", []common.Record{label(100, 1)}, 0, 0, 1},
		{"zero label", []common.Record{label(0, 1)}, 1, 0, 0},
		{"zero branch", []common.Record{branch(common.CondZ, 0, 1)}, 1, 0, 0},
		{"invalid condition", []common.Record{label(100, 1), branch(common.CondInvalid, 100, 2)}, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker()
			sound := c.Check(&common.Unit{Records: tt.records})
			if len(c.Bugs) != tt.bugs || len(c.Issues) != tt.issues || len(c.Warnings) != tt.warnings {
				t.Fatalf("Expected %d bugs, %d issues, %d warnings; got %v, %v, %v",
					tt.bugs, tt.issues, tt.warnings, c.Bugs, c.Issues, c.Warnings)
			}
			if sound != (tt.bugs == 0 && tt.issues == 0) {
				t.Errorf("Check returned %v", sound)
			}
			if (c.Err() == nil) != sound {
				t.Errorf("Err() = %v disagrees with Check", c.Err())
			}
		})
	}
}

func TestCheckNilUnit(t *testing.T) {
	c := NewChecker()
	if c.Check(nil) {
		t.Error("Expected nil unit to be unsound")
	}
}

func TestReportErrors(t *testing.T) {
	c := NewChecker()
	c.Check(&common.Unit{Records: []common.Record{
		branch(common.CondZ, 101, 7),
		label(0, 8),
	}})

	var buf bytes.Buffer
	c.ReportErrors(&buf)
	expected := "Bug in expander detected; the record stream is faulty:\n" +
		"  [1]. label id 0 is not positive, at line 8\n" +
		"Unresolved control flow:\n" +
		"  [1]. branch to _L101 has no label, at line 7\n"
	if buf.String() != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, buf.String())
	}
}
