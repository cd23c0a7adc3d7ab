package flow

import (
	"errors"
	"fmt"

	"github.com/spicery/structasm/pkg/common"
)

var (
	ErrStackOverflow    = errors.New("control flow stack overflow")
	ErrStackUnderflow   = errors.New("control flow stack underflow")
	ErrUnbalanced       = errors.New("control flow stack is unbalanced")
	ErrInvalidSwap      = errors.New("control flow stack swap needs two entries")
	ErrUnknownCondition = common.ErrUnknownCondition
	ErrNoMachine        = errors.New("no instruction collaborator configured")
	ErrAborted          = errors.New("unit aborted by an earlier error")
)

// Error reports a failed construct together with the stack depth at the
// moment of failure. It unwraps to one of the sentinel errors above.
type Error struct {
	Construct string
	Depth     int
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v (stack depth %d)", e.Construct, e.Err, e.Depth)
}

func (e *Error) Unwrap() error {
	return e.Err
}
