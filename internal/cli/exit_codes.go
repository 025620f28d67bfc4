package cli

import "fmt"

// Exit codes for the configlint CLI. These support composition in editor
// hooks and CI: 0 means the file is clean, 1 means findings remain.
const (
	// ExitSuccess indicates the file passed both passes.
	ExitSuccess = 0

	// ExitLintFailed indicates error-level findings remain after fixing.
	ExitLintFailed = 1

	// ExitInvalidArguments indicates bad arguments or a missing input file.
	ExitInvalidArguments = 3

	// ExitEnvironment indicates the schema store or rule config could not
	// be loaded.
	ExitEnvironment = 4
)

// exitError carries an exit code, optionally wrapping a cause.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// NewExitError creates a bare exit error. Use it after the command has
// already reported its findings; main exits silently with the code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// WrapExitError attaches an exit code to an error whose message should
// still be printed.
func WrapExitError(code int, err error) error {
	return &exitError{code: code, err: err}
}

// ExitCode returns the exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if e, ok := err.(*exitError); ok {
		return e.code
	}
	return ExitLintFailed
}

// ErrorMessage returns the message main should print, or empty for bare
// exit errors whose findings were already reported.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(*exitError); ok {
		if e.err == nil {
			return ""
		}
		return e.err.Error()
	}
	return err.Error()
}
