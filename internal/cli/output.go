package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/valu/internal/codec"
	"github.com/roach88/valu/internal/value"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The input was read but is not a valid value
	ExitCommandError = 2 // Command error (bad flags, unreadable file, unknown extension)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter renders command results as text, JSON or YAML.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the JSON envelope for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // value error code, e.g. "PARSE_ERROR"
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Value writes a kind/value pair. Text output is the kind on one line
// followed by the indented JSON rendering.
func (f *OutputFormatter) Value(v value.Value) error {
	switch f.Format {
	case "json":
		rendered, err := codec.JSON(v, codec.Compact)
		if err != nil {
			return err
		}
		return f.encodeJSON(CLIResponse{
			Status: "ok",
			Data: struct {
				Kind  string          `json:"kind"`
				Value json.RawMessage `json:"value"`
			}{value.KindOf(v).String(), rendered},
		})
	case "yaml":
		doc := value.Obj(
			value.P("kind", value.String(value.KindOf(v).String())),
			value.P("value", v),
		)
		out, err := codec.ToYAML(doc)
		if err != nil {
			return err
		}
		_, err = f.Writer.Write(out)
		return err
	default:
		rendered, err := codec.JSON(v, codec.Indented)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(f.Writer, "%s\n%s\n", value.KindOf(v), rendered)
		return err
	}
}

// Document writes v as a bare document: YAML for the yaml format, JSON
// otherwise (indented, or canonical when requested).
func (f *OutputFormatter) Document(v value.Value, canonical bool) error {
	var (
		out []byte
		err error
	)
	switch {
	case f.Format == "yaml":
		out, err = codec.ToYAML(v)
	case canonical:
		out, err = codec.JSON(v, codec.Canonical)
		out = append(out, '\n')
	default:
		out, err = codec.JSON(v, codec.Indented)
		out = append(out, '\n')
	}
	if err != nil {
		return err
	}
	_, err = f.Writer.Write(out)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encodeJSON(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// It goes to ErrWriter when set so structured output stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

func (f *OutputFormatter) encodeJSON(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}

// reportValueError prints err through the formatter and converts it to an
// ExitError. Value errors exit with ExitFailure and carry their code;
// anything else is a command error.
func reportValueError(f *OutputFormatter, message string, err error) error {
	code := string(value.CodeOf(err))
	exit := ExitFailure
	if code == "" {
		code = "COMMAND_ERROR"
		exit = ExitCommandError
	}
	var details any
	var verr *value.Error
	if errors.As(err, &verr) && verr.Offset >= 0 {
		details = map[string]int{"offset": verr.Offset}
	}
	if outErr := f.Error(code, err.Error(), details); outErr != nil {
		return outErr
	}
	return WrapExitError(exit, message, err)
}
