package checker

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/spicery/structasm/pkg/common"
)

type Bug struct {
	Message string
	Record  common.Record
}

type Issue struct {
	Message string
	Record  common.Record
}

// Checker validates an emitted record stream: every branch must target
// exactly one label.
type Checker struct {
	Bugs     []Bug   // Malformed records; the emitter is at fault.
	Issues   []Issue // Branch targets that do not resolve.
	Warnings []Issue // Labels nothing branches to.
}

func (c *Checker) ReportErrors(w io.Writer) {
	// First report any bugs and then move onto issues.
	if len(c.Bugs) > 0 {
		fmt.Fprintln(w, "Bug in expander detected; the record stream is faulty:")
		for i, bug := range c.Bugs {
			fmt.Fprintf(w, "  [%d]. %s, at %s\n", i+1, bug.Message, bug.Record.Pos)
		}
	}
	if len(c.Issues) > 0 {
		fmt.Fprintln(w, "Unresolved control flow:")
		for i, issue := range c.Issues {
			fmt.Fprintf(w, "  [%d]. %s, at %s\n", i+1, issue.Message, issue.Record.Pos)
		}
	}
}

// NewChecker creates a new checker instance.
func NewChecker() *Checker {
	return &Checker{
		Bugs:   []Bug{},
		Issues: []Issue{},
	}
}

// Check validates the unit and reports whether it is sound. Warnings do
// not make a unit unsound.
func (c *Checker) Check(unit *common.Unit) bool {
	if unit == nil {
		c.Bugs = append(c.Bugs, Bug{Message: "invalid unit: nil"})
		return false
	}

	defined := make(map[int]common.Record)
	targeted := make(map[int]bool)
	for _, r := range unit.Records {
		switch r.Kind {
		case common.KindLabel:
			if r.ID <= 0 {
				c.addBug(fmt.Sprintf("label id %d is not positive", r.ID), r)
				continue
			}
			if first, ok := defined[r.ID]; ok {
				c.addIssue(fmt.Sprintf("label %s defined twice (first at %s)", r.Name, first.Pos), r)
				continue
			}
			defined[r.ID] = r
		case common.KindBranch:
			if r.ID <= 0 {
				c.addBug(fmt.Sprintf("branch target id %d is not positive", r.ID), r)
				continue
			}
			if !r.Cond.Valid() {
				c.addBug(fmt.Sprintf("branch has invalid condition %s", r.Cond), r)
			}
			targeted[r.ID] = true
		case common.KindInstruction:
		default:
			c.addBug(fmt.Sprintf("unexpected record kind: %s", r.Kind), r)
		}
	}

	for _, r := range unit.Records {
		if r.Kind == common.KindBranch && r.ID > 0 {
			if _, ok := defined[r.ID]; !ok {
				c.addIssue(fmt.Sprintf("branch to %s has no label", r.Name), r)
			}
		}
	}
	for _, r := range unit.Records {
		if r.Kind == common.KindLabel && r.ID > 0 && !targeted[r.ID] {
			c.Warnings = append(c.Warnings, Issue{Message: fmt.Sprintf("label %s is never targeted", r.Name), Record: r})
		}
	}

	return len(c.Issues) == 0 && len(c.Bugs) == 0
}

// Err folds bugs and issues into one error, or returns nil.
func (c *Checker) Err() error {
	var result *multierror.Error
	for _, bug := range c.Bugs {
		result = multierror.Append(result, fmt.Errorf("%s: %s", bug.Record.Pos, bug.Message))
	}
	for _, issue := range c.Issues {
		result = multierror.Append(result, fmt.Errorf("%s: %s", issue.Record.Pos, issue.Message))
	}
	return result.ErrorOrNil()
}

func (c *Checker) addBug(message string, r common.Record) {
	c.Bugs = append(c.Bugs, Bug{Message: message, Record: r})
}

func (c *Checker) addIssue(message string, r common.Record) {
	c.Issues = append(c.Issues, Issue{Message: message, Record: r})
}
