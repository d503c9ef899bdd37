package cli

import (
	"errors"
	"fmt"

	schemaErrors "runbeam/harmony-validator/pkg/tomlschema/errors"
)

// Process exit codes.
const (
	ExitOK               = 0
	ExitValidationFailed = 1
	ExitSchemaLoadFailed = 2
	ExitError            = 3
)

// ConfigError represents an error in the tool configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitError carries an exit code for a failure whose details have
// already been written to the output.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// NewExitError wraps err with the exit code ExitCode assigns to it.
func NewExitError(err error) *ExitError {
	return &ExitError{Code: ExitCode(err), Err: err}
}

// ExitCode maps an error to the process exit code:
// nil is 0, a validation failure 1, a schema load failure 2 and
// anything else 3.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var verr *schemaErrors.ValidationError
	if errors.As(err, &verr) {
		return ExitValidationFailed
	}

	var loadErr *schemaErrors.SchemaLoadError
	if errors.As(err, &loadErr) {
		return ExitSchemaLoadFailed
	}

	return ExitError
}

// IsReported returns true if err's details were already written and only
// the exit code remains to be applied.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
