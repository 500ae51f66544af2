package output

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/spektr-org/projtrend/engine"
)

// Exit code constants
const (
	ExitSuccess      = 0
	ExitGeneral      = 1
	ExitUsageError   = 2
	ExitIOError      = 3
	ExitConfigError  = 4
	ExitParseError   = 5
	ExitTypeError    = 6
	ExitPrecondition = 7
)

// CLIError is a structured error with user-facing context
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
	Err        error
}

// Error implements the error interface, returning the summary
func (e *CLIError) Error() string {
	return e.Summary
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Err
}

// Classify wraps a pipeline error into a CLIError keyed by its engine kind.
// A CLIError passes through unchanged.
func Classify(err error) *CLIError {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	e := &CLIError{Detail: err.Error(), ExitCode: ExitGeneral, Err: err}
	switch {
	case errors.Is(err, engine.ErrIO):
		e.Summary = engine.ErrorKind(err) + ": cannot read input or write output"
		e.Suggestion = "Check that the input file exists and the output directory is writable (--input, --filtered-out, --chart-out)"
		e.ExitCode = ExitIOError
	case errors.Is(err, engine.ErrMissingColumn):
		e.Summary = engine.ErrorKind(err) + ": required column missing"
		e.Suggestion = "The input needs the columns unidade, area_conhecimento_cnpq, palavras_chave, linha_pesquisa and ano"
		e.ExitCode = ExitParseError
	case errors.Is(err, engine.ErrParse):
		e.Summary = engine.ErrorKind(err) + ": malformed input"
		e.Suggestion = "The input must be UTF-8, ';'-separated, with a header row and the same number of fields on every line"
		e.ExitCode = ExitParseError
	case errors.Is(err, engine.ErrType):
		e.Summary = engine.ErrorKind(err) + ": year column is not integer"
		e.ExitCode = ExitTypeError
	case errors.Is(err, engine.ErrPrecondition):
		e.Summary = engine.ErrorKind(err) + ": not enough data to fit a trend"
		e.Suggestion = "The filtered projects must span at least two distinct years"
		e.ExitCode = ExitPrecondition
	default:
		e.Summary = err.Error()
		e.Detail = ""
	}
	return e
}

// FormatError prints a structured error message to stderr
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	}
}
