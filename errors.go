package concierge

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a mistake in how the command surface was
// declared: a bad pattern, colliding option names, or more than one default
// command. Registration methods panic with it; Check returns it.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// UsageError reports bad user input: malformed or unknown options, an
// unmatched command, missing or excess arguments, or a validation failure.
// Run renders it through the usage printer and returns it; Main maps it to
// exit status 1.
type UsageError struct {
	// Command is the best-known selected command at the time of the error,
	// or nil when no command had been selected yet.
	Command *Command

	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usagef(cmd *Command, format string, args ...any) *UsageError {
	return &UsageError{Command: cmd, Message: fmt.Sprintf(format, args...)}
}

// RunError wraps a failure raised by a hook or a command handler.
type RunError struct {
	Cmd *Command
	Err error
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func (e *RunError) Error() string {
	return fmt.Sprintf("running command %q: %+v", e.Cmd.FullName(), e.Err)
}

// oxfordJoin joins parts into a single clause: "a", "a and b",
// "a, b, and c".
func oxfordJoin(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}
