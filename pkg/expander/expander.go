package expander

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/spicery/structasm/pkg/common"
	"github.com/spicery/structasm/pkg/flow"
	"github.com/spicery/structasm/pkg/target"
)

// Expander is the line-oriented front end: it recognises construct
// invocations in assembler source, hands them to a flow.Compiler and
// passes every other line through unchanged.
type Expander struct {
	config      *Config
	target      target.Target
	compiler    *flow.Compiler
	checkpoints map[string]bool
	constructs  map[string]string
	conditions  map[string]string
	log         zerolog.Logger
}

func New(config *Config, logger zerolog.Logger) (*Expander, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	t, err := target.Lookup(config.Target)
	if err != nil {
		return nil, err
	}
	compiler, err := flow.NewCompiler(flow.Options{
		LabelBase:   config.LabelBase,
		LabelPrefix: config.LabelPrefix,
		StackDepth:  config.StackDepth,
		Machine:     t,
	})
	if err != nil {
		return nil, err
	}
	checkpoints := make(map[string]bool)
	for _, name := range config.Checkpoints {
		checkpoints[strings.ToUpper(name)] = true
	}
	return &Expander{
		config:      config,
		target:      t,
		compiler:    compiler,
		checkpoints: checkpoints,
		constructs:  upperKeys(config.Substitutions.Construct),
		conditions:  upperKeys(config.Substitutions.Condition),
		log:         logger,
	}, nil
}

func (e *Expander) Target() target.Target {
	return e.target
}

// Config returns the options the expander was built with.
func (e *Expander) Config() *Config {
	return e.config
}

// Expand translates one compilation unit. The end of input is a
// checkpoint. On error no unit is returned.
func (e *Expander) Expand(src string, input io.Reader) (*common.Unit, error) {
	e.compiler.Reset()
	stream := e.compiler.Stream()

	scanner := bufio.NewScanner(input)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		stream.SetPos(common.Position{File: src, Line: lineNo})
		if err := e.expandLine(scanner.Text(), lineNo); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", src, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}

	stream.SetPos(common.Position{File: src, Line: lineNo})
	if err := e.compiler.Check(); err != nil {
		return nil, fmt.Errorf("%s: end of input: %w", src, err)
	}

	e.log.Debug().Str("src", src).Int("lines", lineNo).Int("records", stream.Len()).Msg("expanded unit")
	records := make([]common.Record, stream.Len())
	copy(records, stream.Records())
	return &common.Unit{Src: src, Records: records}, nil
}

func (e *Expander) expandLine(text string, lineNo int) error {
	line := SplitLine(text, func(field string) bool {
		_, ok := e.construct(field)
		return ok
	})
	name, ok := e.construct(line.Mnemonic)
	if !ok {
		e.compiler.Stream().EmitInstruction(text)
		return nil
	}
	if line.Label != "" {
		e.compiler.Stream().EmitInstruction(line.Label)
	}

	depth := e.compiler.Depth()
	defer func() {
		e.log.Debug().
			Str("construct", name).
			Strs("operands", line.Operands).
			Int("line", lineNo).
			Int("depth_before", depth).
			Int("depth", e.compiler.Depth()).
			Msg("construct")
	}()

	if e.checkpoints[name] {
		return e.compiler.Check()
	}

	d := directives[name]
	if err := d.check(name, line.Operands); err != nil {
		return err
	}
	var cond common.Condition
	if d.condition {
		var err error
		cond, err = common.ParseCondition(e.substitute(e.conditions, line.Operands[0]))
		if err != nil {
			return &flow.Error{Construct: name, Depth: depth, Err: err}
		}
	}
	return d.run(e.compiler, cond, line.Operands)
}

// construct maps a mnemonic to a directive or checkpoint name.
func (e *Expander) construct(mnemonic string) (string, bool) {
	if mnemonic == "" {
		return "", false
	}
	prefix := e.config.DirectivePrefix
	if len(mnemonic) <= len(prefix) || !strings.EqualFold(mnemonic[:len(prefix)], prefix) {
		return "", false
	}
	name := strings.ToUpper(mnemonic[len(prefix):])
	name = strings.ToUpper(e.substitute(e.constructs, name))
	if e.checkpoints[name] {
		return name, true
	}
	_, ok := directives[name]
	return name, ok
}

func (e *Expander) substitute(table map[string]string, token string) string {
	if replacement, ok := table[strings.ToUpper(token)]; ok {
		return replacement
	}
	return token
}

// upperKeys copies a substitution table with its keys upper-cased, so
// lookups ignore the case the table was written in.
func upperKeys(table map[string]string) map[string]string {
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[strings.ToUpper(k)] = v
	}
	return out
}
