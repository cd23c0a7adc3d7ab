package common

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCondition is returned when a condition token is not in the registry.
var ErrUnknownCondition = errors.New("unknown condition")

// Condition is a branch-taken predicate over the processor flags.
type Condition int

const (
	CondInvalid Condition = iota
	CondZ
	CondNZ
	CondEQ
	CondNE
	CondC
	CondNC
	CondHS
	CondLO
	CondN
	CondNN
	CondL
	CondGE
	// CondAlways is the pseudo-condition of an unconditional branch.
	CondAlways
)

var conditionNames = map[Condition]string{
	CondZ:      "Z",
	CondNZ:     "NZ",
	CondEQ:     "EQ",
	CondNE:     "NE",
	CondC:      "C",
	CondNC:     "NC",
	CondHS:     "HS",
	CondLO:     "LO",
	CondN:      "N",
	CondNN:     "NN",
	CondL:      "L",
	CondGE:     "GE",
	CondAlways: "ALWAYS",
}

var conditionTokens = map[string]Condition{}

// negations is the registry: a total bijection over the real condition codes.
var negations = map[Condition]Condition{
	CondZ:  CondNZ,
	CondNZ: CondZ,
	CondEQ: CondNE,
	CondNE: CondEQ,
	CondC:  CondNC,
	CondNC: CondC,
	CondHS: CondLO,
	CondLO: CondHS,
	CondN:  CondNN,
	CondNN: CondN,
	CondL:  CondGE,
	CondGE: CondL,
}

func init() {
	for c, name := range conditionNames {
		conditionTokens[name] = c
	}
}

// ParseCondition looks up a condition token, ignoring case.
func ParseCondition(token string) (Condition, error) {
	c, ok := conditionTokens[strings.ToUpper(strings.TrimSpace(token))]
	if !ok {
		return CondInvalid, fmt.Errorf("%w: %q", ErrUnknownCondition, token)
	}
	return c, nil
}

// Conditions returns every real condition code, excluding CondAlways.
func Conditions() []Condition {
	return []Condition{CondZ, CondNZ, CondEQ, CondNE, CondC, CondNC, CondHS, CondLO, CondN, CondNN, CondL, CondGE}
}

func (c Condition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Condition(%d)", int(c))
}

// Valid reports whether c is a registered condition, including CondAlways.
func (c Condition) Valid() bool {
	_, ok := conditionNames[c]
	return ok
}

// IsAlways reports whether c is the unconditional pseudo-condition.
func (c Condition) IsAlways() bool {
	return c == CondAlways
}

// Negate returns the logical opposite of c. CondAlways maps to itself,
// since it is only ever emitted as an unconditional branch.
func (c Condition) Negate() (Condition, error) {
	if c == CondAlways {
		return CondAlways, nil
	}
	n, ok := negations[c]
	if !ok {
		return CondInvalid, fmt.Errorf("%w: %s", ErrUnknownCondition, c)
	}
	return n, nil
}

// MarshalText renders the condition token so records serialise readably.
func (c Condition) MarshalText() ([]byte, error) {
	if c == CondInvalid {
		return []byte(""), nil
	}
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCondition, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Condition) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = CondInvalid
		return nil
	}
	parsed, err := ParseCondition(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
