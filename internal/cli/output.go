package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/taxa/internal/query"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitParseFailure = 1 // the search command did not parse
	ExitCommandError = 2 // command error (bad flags, database not found)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error // underlying error (optional)
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

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Parse failures map
// to ExitParseFailure; anything else unclassified is a command error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if query.IsParseError(err) {
		return ExitParseFailure
	}
	return ExitCommandError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Response is the JSON envelope for CLI output.
type Response struct {
	Status string         `json:"status"` // "ok" or "error"
	Data   any            `json:"data,omitempty"`
	Error  *ResponseError `json:"error,omitempty"`
}

// ResponseError carries a machine-readable failure. Code is the parse
// Reason for parse failures ("UNRECOGNIZED_DATE") or "COMMAND_ERROR".
type ResponseError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Token    string `json:"token,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// Success outputs a successful result. In text mode, data must be a
// fmt.Stringer or a plain string.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs a failure. Parse errors carry their reason, offending
// token, and byte position; other errors become COMMAND_ERROR.
func (f *OutputFormatter) Error(err error) error {
	re := &ResponseError{Code: "COMMAND_ERROR", Message: err.Error()}
	var pe *query.ParseError
	if errors.As(err, &pe) {
		re.Code = string(pe.Reason)
		re.Message = pe.Message
		re.Token = pe.Token
		if pe.Position >= 0 {
			pos := pe.Position
			re.Position = &pos
		}
	}

	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "error", Error: re})
	}
	if re.Token != "" {
		_, werr := fmt.Fprintf(f.Writer, "error [%s]: %s (at %q)\n", re.Code, re.Message, re.Token)
		return werr
	}
	_, werr := fmt.Fprintf(f.Writer, "error [%s]: %s\n", re.Code, re.Message)
	return werr
}
