package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	pflag "github.com/spf13/pflag"

	"github.com/spicery/structasm/pkg/bundler"
	"github.com/spicery/structasm/pkg/cli"
	"github.com/spicery/structasm/pkg/expander"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `structasm-bundler - stores expanded units in a SQLITE bundle

Each file is expanded and its record stream, source and label cross
reference are saved. Files whose contents are unchanged since they were
last bundled are skipped.

Usage:
  structasm-bundler --bundle FILE [options] file ...

Options:
`

func main() {
	var showHelp, showVersion, migrate, verbose bool
	var bundleFile, configFile string

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", usage)
		pflag.PrintDefaults()
	}

	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.BoolVar(&showVersion, "version", false, "Show version")
	pflag.BoolVar(&migrate, "migrate", false, "Perform database migration")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
	pflag.StringVar(&bundleFile, "bundle", "", "Bundle file path (required)")
	pflag.StringVarP(&configFile, "config", "c", "", "YAML options file")

	pflag.Parse()

	if showHelp {
		pflag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("structasm-bundler version %s\n", Version)
		os.Exit(0)
	}

	// Bundle file is mandatory.
	if bundleFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --bundle flag is required\n")
		pflag.Usage()
		os.Exit(1)
	}

	log := cli.NewLogger(verbose)

	// Check if the bundle file exists.
	_, err := os.Stat(bundleFile)
	fileExists := err == nil

	b, err := bundler.NewBundler(bundleFile, log)
	if err != nil {
		cli.PrintErrors(os.Stderr, fmt.Errorf("failed to create bundler: %w", err))
		os.Exit(1)
	}
	defer b.Close()

	upToDate, err := b.CheckMigration()
	if err != nil {
		cli.PrintErrors(os.Stderr, fmt.Errorf("failed to check migration status: %w", err))
		os.Exit(1)
	}
	if !upToDate {
		// A fresh database is migrated automatically; an existing one needs --migrate.
		if fileExists && !migrate {
			fmt.Fprintf(os.Stderr, "Error: database schema is not up to date. Use --migrate to update.\n")
			os.Exit(1)
		}
		if err := b.Migrate(); err != nil {
			cli.PrintErrors(os.Stderr, fmt.Errorf("failed to migrate database: %w", err))
			os.Exit(1)
		}
		log.Info().Str("bundle", bundleFile).Msg("database migrated")
	}

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

	buildID, err := b.BeginBuild(Version)
	if err != nil {
		cli.PrintErrors(os.Stderr, err)
		os.Exit(1)
	}

	var errs *multierror.Error
	stored, skipped := 0, 0
	for _, path := range pflag.Args() {
		contents, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified input files
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to read input file: %w", err))
			continue
		}
		skip, err := b.ProcessSource(path, contents, e)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if skip {
			skipped++
		} else {
			stored++
		}
	}

	if errs.ErrorOrNil() != nil {
		cli.PrintErrors(os.Stderr, errs)
		os.Exit(1)
	}
	log.Info().Str("build", buildID).Int("stored", stored).Int("skipped", skipped).Msg("bundling completed")
}
