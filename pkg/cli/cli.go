// Package cli holds the pieces shared by the command line tools.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/spicery/structasm/pkg/expander"
)

// NewLogger returns a console logger on stderr at debug level when verbose,
// otherwise one that only reports warnings and above.
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !isTerminal(os.Stderr)}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// LoadConfig returns the defaults when path is empty.
func LoadConfig(path string) (*expander.Config, error) {
	if path == "" {
		return expander.DefaultConfig(), nil
	}
	return expander.LoadConfig(path)
}

// PrintErrors writes err to w, one numbered line per accumulated error,
// coloured when w is a terminal.
func PrintErrors(w io.Writer, err error) {
	if err == nil {
		return
	}
	heading := color.New(color.FgRed, color.Bold)
	if f, ok := w.(*os.File); !ok || !isTerminal(f) {
		heading.DisableColor()
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		heading.Fprintf(w, "%d error(s):\n", len(merr.Errors))
		for i, e := range merr.Errors {
			fmt.Fprintf(w, "  [%d]. %s\n", i+1, strings.TrimSpace(e.Error()))
		}
		return
	}
	heading.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
