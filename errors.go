// FILE: appconf/errors.go
package appconf

import (
	"errors"
	"fmt"
)

// ErrNotFound is reported when no configuration file exists along the
// search path. Use errors.Is to detect it through a *LoadError.
var ErrNotFound = errors.New("config file not found")

// ConfigError reports a structurally invalid application setup: a
// malformed flag table, an alias pointing at an unknown or
// non-configurable setting, or conflicting re-initialization of the
// application singleton. These are fatal at construction time.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// ParseError reports a command-line token that is neither a known flag
// nor a key=value assignment.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized argument %q", e.Token)
}

// UnknownSettingError reports a path or alias that does not resolve to
// an externally configurable setting on an exposed component.
type UnknownSettingError struct {
	Path string
}

func (e *UnknownSettingError) Error() string {
	return fmt.Sprintf("unknown setting %q", e.Path)
}

// ValueParseError reports a command-line value that could not be
// evaluated as a literal, or that failed the target trait's validator.
type ValueParseError struct {
	Token string
	Err   error
}

func (e *ValueParseError) Error() string {
	return fmt.Sprintf("invalid value in %q: %v", e.Token, e.Err)
}

func (e *ValueParseError) Unwrap() error { return e.Err }

// LoadError reports that a loader could not produce its fragment. It
// carries the source identity (file path or "argv") and the cause.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load configuration from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
