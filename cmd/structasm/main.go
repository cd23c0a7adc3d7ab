package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	pflag "github.com/spf13/pflag"

	"github.com/spicery/structasm/pkg/cli"
	"github.com/spicery/structasm/pkg/common"
	"github.com/spicery/structasm/pkg/expander"
	"github.com/spicery/structasm/pkg/target"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `structasm - structured control flow for branch-only assembly

This tool expands structured construct invocations (_IF, _DO, _COND,
_CASE, _FOR and friends) in assembler source into labels and branches.
Every other line is passed through unchanged. Each file is a separate
compilation unit; with no files, stdin is read.

Usage:
  structasm [options] [file ...]

Options:
`

func main() {
	var showHelp, showVersion, verbose, noSpans, passthrough bool
	var outputFile, format, configFile, targetName, indent string
	var labelBase, stackDepth int

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", usage)
		pflag.PrintDefaults()
	}

	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.BoolVar(&showVersion, "version", false, "Show version")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "Log each construct to stderr")
	pflag.BoolVar(&noSpans, "no-spans", false, "Suppress line information in tree output")
	pflag.BoolVar(&passthrough, "passthrough", false, "Include pass-through instructions in ASCIITREE and DOT output")
	pflag.StringVarP(&outputFile, "output", "o", "", "Output file (defaults to stdout)")
	pflag.StringVarP(&format, "format", "f", "", "Output format (ASM, JSON, YAML, ASCIITREE, DOT)")
	pflag.StringVarP(&configFile, "config", "c", "", "YAML options file")
	pflag.StringVarP(&targetName, "target", "t", "", "Target instruction set")
	pflag.StringVar(&indent, "indent", "", "Indentation for branch lines and structured output")
	pflag.IntVar(&labelBase, "label-base", 0, "First label number")
	pflag.IntVar(&stackDepth, "stack-depth", 0, "Control flow stack depth")

	pflag.Parse()

	if showHelp {
		pflag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("structasm version %s\n", Version)
		os.Exit(0)
	}

	log := cli.NewLogger(verbose)

	config, err := cli.LoadConfig(configFile)
	if err != nil {
		cli.PrintErrors(os.Stderr, fmt.Errorf("failed to load config: %w", err))
		os.Exit(1)
	}
	// Command line flags override the options file.
	if format != "" {
		config.Format = format
	}
	if targetName != "" {
		config.Target = targetName
	}
	if labelBase != 0 {
		config.LabelBase = labelBase
	}
	if stackDepth != 0 {
		config.StackDepth = stackDepth
	}

	e, err := expander.New(config, log)
	if err != nil {
		cli.PrintErrors(os.Stderr, err)
		os.Exit(1)
	}

	var printFunc common.PrintFunc
	if strings.EqualFold(config.Format, "ASM") {
		printFunc = func(unit *common.Unit, indentDelta string, output io.Writer, _ *common.PrintOptions) error {
			return target.PrintASM(e.Target(), unit, indentDelta, output)
		}
	} else {
		printFunc, err = common.PickPrintFunc(config.Format)
		if err != nil {
			cli.PrintErrors(os.Stderr, err)
			os.Exit(1)
		}
	}

	// Expand every unit before writing anything, so a failure leaves no partial output.
	var units []*common.Unit
	var errs *multierror.Error
	if len(pflag.Args()) == 0 {
		unit, err := e.Expand("<stdin>", os.Stdin)
		if err != nil {
			errs = multierror.Append(errs, err)
		} else {
			units = append(units, unit)
		}
	}
	for _, path := range pflag.Args() {
		file, err := os.Open(path) // #nosec G304 - CLI tool reads user-specified input files
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to open input file: %w", err))
			continue
		}
		unit, err := e.Expand(path, file)
		file.Close()
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		units = append(units, unit)
	}
	if errs.ErrorOrNil() != nil {
		cli.PrintErrors(os.Stderr, errs)
		os.Exit(1)
	}

	// Determine output destination.
	var output io.Writer = os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile) // #nosec G304 - CLI tool writes to user-specified output files
		if err != nil {
			cli.PrintErrors(os.Stderr, fmt.Errorf("failed to create output file: %w", err))
			os.Exit(1)
		}
		defer file.Close()
		output = file
	}

	options := &common.PrintOptions{
		Format:       config.Format,
		IncludeSpans: !noSpans,
		Passthrough:  passthrough,
	}
	if indent != "" {
		options.Indent = len(indent)
	}
	for _, unit := range units {
		if err := printFunc(unit, indent, output, options); err != nil {
			cli.PrintErrors(os.Stderr, err)
			os.Exit(1)
		}
	}
}
