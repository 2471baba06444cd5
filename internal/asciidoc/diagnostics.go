package asciidoc

import "fmt"

// Severity classifies a Diagnostic.
type Severity uint8

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}

	return "warning"
}

// Diagnostic is one issue raised during parsing, attributable to a
// specific source span. In non-strict mode (the default) diagnostics are
// collected and the parse still produces a document; in strict mode the
// first error-severity diagnostic aborts the parse and is returned as
// result.Err.
type Diagnostic struct {
	Severity Severity
	Message  string
	Location MultiSourceLocation
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// diagnosticSink accumulates Diagnostics during one parse and knows
// whether strict mode should convert the next error into an abort.
type diagnosticSink struct {
	strict      bool
	diagnostics []Diagnostic
	fatal       *Diagnostic
}

func newDiagnosticSink(strict bool) *diagnosticSink {
	return &diagnosticSink{strict: strict}
}

// warn records a non-fatal diagnostic regardless of strict mode.
func (s *diagnosticSink) warn(loc MultiSourceLocation, format string, args ...any) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	})
}

// err records an error-severity diagnostic. In strict mode, only the
// first such call latches s.fatal; callers must check Fatal() after
// calling err and unwind the parse if it is set.
func (s *diagnosticSink) err(loc MultiSourceLocation, format string, args ...any) {
	d := Diagnostic{
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
	s.diagnostics = append(s.diagnostics, d)
	if s.strict && s.fatal == nil {
		s.fatal = &d
	}
}

// Fatal reports whether strict mode has latched a fatal error.
func (s *diagnosticSink) Fatal() bool {
	return s.fatal != nil
}
