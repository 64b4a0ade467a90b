package exit

import (
	"fmt"
	"io"
)

// Process exit codes.
const (
	CodeOK      = 0
	CodeFailure = 1
	CodeUsage   = 2
)

// Result holds the message to print and the code to exit with.
type Result struct {
	ExitCode int
	Message  string
}

// Print writes the message to stdout for successful results and to stderr
// otherwise.
func (r *Result) Print(stdout, stderr io.Writer) {
	w := stderr
	if r.ExitCode == CodeOK {
		w = stdout
	}
	fmt.Fprint(w, r.Message)
}

// Success creates a result with exit code 0.
func Success(message string) *Result {
	return &Result{ExitCode: CodeOK, Message: message}
}

// Failure creates a result for runtime errors such as unreadable input.
func Failure(message string) *Result {
	return &Result{ExitCode: CodeFailure, Message: message}
}

// Failuref creates a failure result with a formatted message.
func Failuref(format string, a ...any) *Result {
	return Failure(fmt.Sprintf(format, a...))
}

// Usage creates a result for invalid flags or selector syntax errors.
func Usage(message string) *Result {
	return &Result{ExitCode: CodeUsage, Message: message}
}

// Usagef creates a usage result with a formatted message.
func Usagef(format string, a ...any) *Result {
	return Usage(fmt.Sprintf(format, a...))
}
