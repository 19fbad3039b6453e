package cli

import (
	"context"
	"errors"
	"io"
	"strings"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: 2, Message: err.Error()}
}

// Execute runs the command line in args. Usage mistakes come back as an
// *ExitError with code 2; failures of the command itself are returned as is.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil && isUsageMessage(err.Error()) {
		return usageError(err)
	}
	return err
}

// isUsageMessage recognizes the usage errors cobra reports as plain errors.
func isUsageMessage(msg string) bool {
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "required flag")
}
