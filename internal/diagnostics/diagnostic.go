package diagnostics

import (
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
)

// Severity is the severity level of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a single compiler diagnostic: one location, one message,
// and an optional one-line hint.
type Diagnostic struct {
	Severity Severity
	Code     string // error code like "T0001"
	Message  string
	Location *source.Location
	Hint     string
}

// NewError creates an error diagnostic.
func NewError(message string) *Diagnostic {
	return &Diagnostic{Severity: Error, Message: message}
}

// NewWarning creates a warning diagnostic.
func NewWarning(message string) *Diagnostic {
	return &Diagnostic{Severity: Warning, Message: message}
}

// WithCode sets the error code.
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithLocation attaches the source span the diagnostic points at.
func (d *Diagnostic) WithLocation(loc *source.Location) *Diagnostic {
	d.Location = loc
	return d
}

// WithHint sets a one-line suggestion printed after the caret line.
func (d *Diagnostic) WithHint(hint string) *Diagnostic {
	d.Hint = hint
	return d
}
