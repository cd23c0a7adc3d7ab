package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	pflag "github.com/spf13/pflag"

	"github.com/spicery/structasm/pkg/checker"
	"github.com/spicery/structasm/pkg/cli"
	"github.com/spicery/structasm/pkg/expander"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `structasm-check - structural validation of structured assembly

This tool expands each file and checks that every construct is closed and
that every generated branch has exactly one target label. Nothing is
written on success; failures are listed and the exit status is non-zero.

Usage:
  structasm-check [options] file ...

Options:
`

func main() {
	var showHelp, showVersion, verbose, warnings bool
	var configFile string

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", usage)
		pflag.PrintDefaults()
	}

	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.BoolVar(&showVersion, "version", false, "Show version")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "Log each construct to stderr")
	pflag.BoolVarP(&warnings, "warnings", "w", false, "Also report labels that nothing branches to")
	pflag.StringVarP(&configFile, "config", "c", "", "YAML options file")

	pflag.Parse()

	if showHelp {
		pflag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("structasm-check version %s\n", Version)
		os.Exit(0)
	}

	if len(pflag.Args()) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no input files\n\n")
		pflag.Usage()
		os.Exit(1)
	}

	log := cli.NewLogger(verbose)
	config, err := cli.LoadConfig(configFile)
	if err != nil {
		cli.PrintErrors(os.Stderr, fmt.Errorf("failed to load config: %w", err))
		os.Exit(1)
	}
	e, err := expander.New(config, log)
	if err != nil {
		cli.PrintErrors(os.Stderr, err)
		os.Exit(1)
	}

	var errs *multierror.Error
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

		c := checker.NewChecker()
		if !c.Check(unit) {
			errs = multierror.Append(errs, c.Err())
		}
		if warnings {
			for _, w := range c.Warnings {
				log.Warn().Str("pos", w.Record.Pos.String()).Msg(w.Message)
			}
		}
	}

	if errs.ErrorOrNil() != nil {
		cli.PrintErrors(os.Stderr, errs)
		os.Exit(1)
	}
}
