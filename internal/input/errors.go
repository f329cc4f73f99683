package input

import "fmt"

// ConfigError reports an invalid combination of input flags: zero or
// multiple source files, or a flag used with a format it does not apply
// to. It is raised before any I/O happens.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// ValidationError reports invalid input discovered during setup: a
// malformed region, an unknown sample name, an empty source file, or a
// missing required annotation field. Option names the flag whose value
// failed, when one applies.
type ValidationError struct {
	Option  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Option == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Option, e.Message)
}
