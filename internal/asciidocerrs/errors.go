// Package asciidocerrs holds the small set of custom error types that
// cross the core parser's boundary into the CLI: job-config failures and
// strict-mode parse failures. Each is its own struct with Error() and
// Unwrap(), rather than a bare fmt.Errorf string, so callers can
// errors.As() to the specific failure kind.
package asciidocerrs

import (
	"fmt"

	"github.com/connerohnesorge/asciidork/internal/asciidoc"
)

// ConfigError indicates a job configuration file failed to load or
// validate.
type ConfigError struct {
	Path string // Config file path, empty if none was found
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid configuration in %s: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseFailedError wraps a strict-mode parse failure: the first
// error-severity diagnostic plus every diagnostic collected before it.
type ParseFailedError struct {
	Path        string
	Diagnostics []asciidoc.Diagnostic
	Err         error
}

func (e *ParseFailedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("failed to parse: %v", e.Err)
}

func (e *ParseFailedError) Unwrap() error { return e.Err }

// WatchError indicates the --watch file-change loop could not continue.
type WatchError struct {
	Path string
	Err  error
}

func (e *WatchError) Error() string {
	return fmt.Sprintf("watch failed for %s: %v", e.Path, e.Err)
}

func (e *WatchError) Unwrap() error { return e.Err }
