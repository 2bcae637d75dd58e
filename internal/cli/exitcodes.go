package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/sidconv/internal/configloader"
	"github.com/yaklabco/sidconv/pkg/runner"
)

// Exit codes for sidconv.
const (
	// ExitSuccess indicates every file converted.
	ExitSuccess = 0

	// ExitConversionErrors indicates at least one file failed to convert.
	ExitConversionErrors = 1

	// ExitWarnings indicates conversion raised warnings (when strict mode).
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that only carry an exit status. They are not logged.
var (
	// ErrConversionFailed is returned when a file could not be converted.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrWarningsFound is returned in strict mode when warnings were raised.
	ErrWarningsFound = errors.New("conversion raised warnings")

	// ErrInvalidUsage marks argument errors.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitConversionErrors
	}

	if strict && result.HasWarnings() {
		return ExitWarnings
	}

	return ExitSuccess
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError

	switch {
	case errors.Is(err, ErrConversionFailed):
		return ExitConversionErrors
	case errors.Is(err, ErrWarningsFound):
		return ExitWarnings
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err only signals an exit status and needs no log line.
func IsSilent(err error) bool {
	return errors.Is(err, ErrConversionFailed) || errors.Is(err, ErrWarningsFound)
}

// errorForExitCode returns the sentinel matching a result exit code.
func errorForExitCode(code int) error {
	switch code {
	case ExitConversionErrors:
		return ErrConversionFailed
	case ExitWarnings:
		return ErrWarningsFound
	default:
		return nil
	}
}
