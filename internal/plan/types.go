package plan

import (
	"format-generator/internal/common"
	"format-generator/internal/diagnostic"
	"format-generator/internal/kind"
)

// Plan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type Plan struct {
	// Package is the name of the generated package.
	Package string
	// Source is the path of the call-site file, if it was loaded from disk.
	Source string
	// Fingerprint is the hash of the call-site file contents.
	Fingerprint uint64
	// Imports are the packages the generated code refers to, sorted by path.
	Imports []Import
	// FileImports are the imports entries of the call-site file.
	FileImports map[string]string
	// Packages are the package patterns the call-site file loads.
	Packages []string
	// Formats and Specifiers are the tables the calls were resolved against.
	Formats    *kind.Formats
	Specifiers *kind.Specifiers
	// Calls is the list of resolved calls, in file order.
	Calls []ResolvedCall
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Import is a package imported by the generated code.
type Import struct {
	// Alias is set when the qualifier differs from the package's default name.
	Alias string
	Path  string
}

// Mode tells how a call's format string was obtained.
type Mode int

const (
	// ModeStream - assembled from a token stream.
	ModeStream Mode = iota
	// ModeFormat - given literally and checked against its arguments.
	ModeFormat
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeFormat:
		return "format"
	default:
		return common.UnknownStr
	}
}

// ResolvedCall is a generated function wrapping one validated sink call.
type ResolvedCall struct {
	// Name of the generated function.
	Name string
	// Doc is the user-supplied doc text.
	Doc string
	// Mode records where Format came from.
	Mode Mode
	// Sink is the qualified sink expression, e.g. "fmt.Printf".
	Sink string
	// Lead are the expressions passed before the format string.
	Lead []string
	// Params are the generated function's parameters.
	Params []ResolvedParam
	// Returns are the result types of the sink.
	Returns []string
	// Format is the final format string passed to the sink.
	Format string
	// Args are the values passed after the format string, in order.
	Args []ResolvedArg
}

// HasReturns reports whether the generated function returns the sink's results.
func (c *ResolvedCall) HasReturns() bool {
	return len(c.Returns) > 0
}

// ResolvedParam is a function parameter with its classification key.
type ResolvedParam struct {
	Name string
	Type string
	Key  kind.Key
}

// ResolvedArg is one value handed to the sink.
type ResolvedArg struct {
	// Expr is the Go expression emitted in the call.
	Expr string
	// Key is the classification key the argument was checked with.
	Key kind.Key
	// Param is the referenced parameter name, empty for constants.
	Param string
	// Value and Type describe a constant operand.
	Value string
	Type  string
}

// IsParam reports whether the argument references a parameter.
func (a ResolvedArg) IsParam() bool {
	return a.Param != ""
}

// String returns the emitted expression.
func (a ResolvedArg) String() string {
	return a.Expr
}
