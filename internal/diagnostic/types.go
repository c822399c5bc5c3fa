package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"format-generator/internal/common"
	"format-generator/internal/stream"
	"format-generator/internal/typedmap"
	"format-generator/internal/validate"
)

// Codes for failures of the composition core.
const (
	CodeDuplicateKey          = "duplicate_key"
	CodeUnresolvedKey         = "unresolved_key"
	CodeArgumentCountMismatch = "argument_count_mismatch"
	CodeArgumentTypeMismatch  = "argument_type_mismatch"
	CodeFinalizedStateReuse   = "finalized_state_reuse"
	CodeUnsupportedDirective  = "unsupported_directive"
	CodeInternal              = "internal"
)

// Diagnostics holds all diagnostic information from resolution.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Call identifies which call site this relates to (if any).
	Call string
	// Location points inside the call site, e.g. "stream[3]" or "args[1]".
	Location string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, call, location string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Call:     call,
		Location: location,
	})
}

// AddErrorWithSuggestions adds an error diagnostic offering alternatives.
func (d *Diagnostics) AddErrorWithSuggestions(code, message, call, location string, suggestions []string) {
	d.AddError(code, message, call, location)

	if len(suggestions) > 0 {
		d.Errors[len(d.Errors)-1].Suggestions = suggestions
	}
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, call, location string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Call:     call,
		Location: location,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, call, location string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Call:     call,
		Location: location,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Call != "" {
		prefix = append(prefix, "["+d.Call+"]")
	}

	if d.Location != "" {
		prefix = append(prefix, d.Location)
	}

	msg := d.Message
	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Code returns the diagnostic code for an error of the composition core, or
// CodeInternal when err matches none of them.
func Code(err error) string {
	switch {
	case errors.Is(err, typedmap.ErrDuplicateKey):
		return CodeDuplicateKey
	case errors.Is(err, typedmap.ErrUnresolvedKey):
		return CodeUnresolvedKey
	case errors.Is(err, validate.ErrArgumentCountMismatch):
		return CodeArgumentCountMismatch
	case errors.Is(err, validate.ErrArgumentTypeMismatch):
		return CodeArgumentTypeMismatch
	case errors.Is(err, stream.ErrFinalizedStateReuse):
		return CodeFinalizedStateReuse
	case errors.Is(err, validate.ErrUnsupportedDirective):
		return CodeUnsupportedDirective
	default:
		return CodeInternal
	}
}

// AddFromError records err as one error diagnostic per joined cause.
func (d *Diagnostics) AddFromError(err error, call, location string) {
	if err == nil {
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			d.AddFromError(e, call, location)
		}

		return
	}

	d.AddError(Code(err), err.Error(), call, location)
}
